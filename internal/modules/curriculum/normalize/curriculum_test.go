package normalize

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCurriculumIsTotal(t *testing.T) {
	inputs := []any{
		nil,
		"garbage",
		42.0,
		[]any{1, 2},
		map[string]any{},
		map[string]any{"overall_learning_path": "nope", "canonical_sources": map[string]any{}},
		map[string]any{"overall_learning_path": []any{nil, "x", map[string]any{"topics": []any{nil, 3}}}},
	}
	for _, in := range inputs {
		got := Curriculum(in, "java", fixedNow)
		if got.Language != "java" {
			t.Fatalf("language default: %q for %#v", got.Language, in)
		}
		if got.GeneratedAt != "2024-03-01T12:00:00Z" {
			t.Fatalf("generated_at default: %q", got.GeneratedAt)
		}
		if got.OverallLearningPath == nil || got.CanonicalSources == nil || got.CoreSources == nil ||
			got.SupplementalSources == nil || got.PracticeProjects == nil {
			t.Fatalf("nil slice in %+v for input %#v", got, in)
		}
		for _, l := range got.OverallLearningPath {
			for _, tp := range l.Topics {
				assertCompleteTopic(t, tp)
			}
		}
	}
}

func assertCompleteTopic(t *testing.T, tp types.Topic) {
	t.Helper()
	if tp.ID == "" {
		t.Fatalf("topic without id")
	}
	if tp.Prerequisites == nil || tp.Outcomes == nil || tp.ExampleExercises == nil || tp.HelpfulReferences == nil ||
		tp.Explainability == nil || tp.Subtopics == nil || tp.LearningResources == nil {
		t.Fatalf("topic with nil slice: %+v", tp)
	}
	for _, st := range tp.Subtopics {
		assertCompleteTopic(t, st)
	}
}

func TestCurriculumAcceptsCamelCase(t *testing.T) {
	raw := map[string]any{
		"language":    "Java",
		"generatedAt": "2023-10-27T10:00:00",
		"overallLearningPath": []any{map[string]any{
			"level":          "Beginner",
			"estimatedHours": "12",
			"topics": []any{map[string]any{
				"id":                "t1",
				"title":             "Classes",
				"order":             2,
				"estimatedHours":    4.5,
				"outcomes":          []any{"Write a class", map[string]any{"id": "o1", "title": "Use fields", "successCriteria": "compiles"}},
				"exampleExercises":  []any{"Build a Point"},
				"helpfulReferences": []any{map[string]any{"source_id": "jls", "url": "https://docs", "shortEvidence": "ch8"}},
			}},
		}},
		"canonicalSources": []any{map[string]any{"id": "jls", "confidence": 0.9, "shortSummary": "language reference"}},
		"practiceProjects": []any{map[string]any{"title": "CLI", "estimatedHours": 3, "outcomes": []any{"io"}}},
		"coreSources":      []any{"jls"},
		"modelVersion":     "m1",
	}
	got := Curriculum(raw, "java", fixedNow)

	order := 2.0
	want := types.Curriculum{
		Language:    "Java",
		GeneratedAt: "2023-10-27T10:00:00",
		CanonicalSources: []types.CanonicalSource{
			{ID: "jls", Confidence: 0.9, ShortSummary: "language reference"},
		},
		OverallLearningPath: []types.LearningLevel{{
			Level:          "Beginner",
			EstimatedHours: 12,
			Topics: []types.Topic{{
				ID:             "t1",
				Title:          "Classes",
				Order:          &order,
				EstimatedHours: 4.5,
				Prerequisites:  []string{},
				Outcomes: []types.Outcome{
					types.TextOutcome("Write a class"),
					types.NewStructuredOutcome(types.StructuredOutcome{ID: "o1", Title: "Use fields", SuccessCriteria: "compiles"}),
				},
				ExampleExercises:  []string{"Build a Point"},
				HelpfulReferences: []types.SourceReference{{SourceID: "jls", URL: "https://docs", ShortEvidence: "ch8"}},
				Explainability:    []string{},
				Subtopics:         []types.Topic{},
				LearningResources: []types.LearningResource{},
			}},
		}},
		CoreSources:         []string{"jls"},
		SupplementalSources: []string{},
		PracticeProjects:    []types.PracticeProject{{Title: "CLI", EstimatedHours: 3, Outcomes: []string{"io"}}},
		ModelVersion:        "m1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Curriculum mismatch (-want +got):\n%s", diff)
	}
}

func TestTopicDefaults(t *testing.T) {
	prev := NewID
	NewID = func() string { return "generated-id" }
	defer func() { NewID = prev }()

	got := Topic(map[string]any{"id": 12, "order": "soon", "estimated_hours": "x"})
	if got.ID != "generated-id" {
		t.Fatalf("id=%q", got.ID)
	}
	if got.Order != nil {
		t.Fatalf("unparseable order should be nil, got %v", *got.Order)
	}
	if got.EstimatedHours != 0 {
		t.Fatalf("hours=%v", got.EstimatedHours)
	}
}

func TestLearningResourceFallbacks(t *testing.T) {
	got := LearningResource(map[string]any{
		"title":          "Tour",
		"authorityScore": 0.7,
		"reason":         "official",
		"tierId":         "t1",
		"asset_type":     "doc",
	})
	want := types.LearningResource{
		Title:          "Tour",
		AuthorityScore: 0.7,
		FinalScore:     0.7,
		TierID:         "t1",
		AssetType:      "doc",
		Rationale:      "official",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("LearningResource mismatch (-want +got):\n%s", diff)
	}

	scored := LearningResource(map[string]any{"authority_score": 0.4, "final_score": 0.9, "rationale": "r", "reason": "ignored"})
	if scored.FinalScore != 0.9 || scored.Rationale != "r" {
		t.Fatalf("explicit fields should win: %+v", scored)
	}
}

func TestSubtopicsReplyShapes(t *testing.T) {
	one := []any{map[string]any{"id": "s1", "title": "Fields"}}
	cases := []any{
		map[string]any{"subtopics": one},
		map[string]any{"topic": map[string]any{"subtopics": one}},
		map[string]any{"items": one},
		one,
	}
	for _, c := range cases {
		got := Subtopics(c)
		if len(got) != 1 || got[0].ID != "s1" {
			t.Fatalf("Subtopics(%#v)=%+v", c, got)
		}
	}
	if got := Subtopics(map[string]any{"subtopics": "none"}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}
