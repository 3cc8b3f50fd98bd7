package export

import (
	"strings"
	"testing"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

func order(v float64) *float64 { return &v }

func TestTopicHoursAggregation(t *testing.T) {
	topic := types.Topic{Subtopics: []types.Topic{{EstimatedHours: 2}, {EstimatedHours: 3}}}
	if got := TopicHours(topic); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	topic.EstimatedHours = 10
	if got := TopicHours(topic); got != 10 {
		t.Fatalf("expected own hours to win, got %v", got)
	}
	level := types.LearningLevel{Topics: []types.Topic{topic, {Subtopics: []types.Topic{{EstimatedHours: 1.5}}}}}
	if got := LevelHours(level); got != 11.5 {
		t.Fatalf("expected 11.5, got %v", got)
	}
}

func TestFindTopicNested(t *testing.T) {
	cur := &types.Curriculum{OverallLearningPath: []types.LearningLevel{
		{Topics: []types.Topic{{ID: "a", Subtopics: []types.Topic{{ID: "a1", Title: "Deep"}}}}},
	}}
	tp, ok := FindTopic(cur, "a1")
	if !ok || tp.Title != "Deep" {
		t.Fatalf("expected nested topic, got %+v %v", tp, ok)
	}
	if _, ok := FindTopic(cur, "missing"); ok {
		t.Fatalf("expected miss")
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{0: "", 4: "4 hrs", 2.26: "2.3 hrs", 7.5: "7.5 hrs"}
	for in, want := range cases {
		if got := FormatHours(in); got != want {
			t.Fatalf("FormatHours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	cur := &types.Curriculum{
		Language:    "Java",
		GeneratedAt: "2024-01-01T00:00:00Z",
		OverallLearningPath: []types.LearningLevel{
			{Level: "Beginner", Topics: []types.Topic{
				{Title: "Syntax", Order: order(2), EstimatedHours: 3},
				{Title: "Setup", Description: "JDK install", Order: order(1), Subtopics: []types.Topic{{Title: "PATH", EstimatedHours: 1}}},
			}},
			{Level: "Expert"},
		},
	}
	got := Markdown(cur, "")
	want := strings.Join([]string{
		"# Java Curriculum Export",
		"Generated: 2024-01-01T00:00:00Z",
		"",
		"## Subject Overview",
		"No description available.",
		"",
		"## Main Topics & Subtopics",
		"",
		"### Beginner (4 hrs)",
		"- Setup - JDK install",
		"  - PATH",
		"- Syntax",
		"",
		"### Expert",
		"- No topics found for this level.",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected markdown:\n%s\n--- want ---\n%s", got, want)
	}
}
