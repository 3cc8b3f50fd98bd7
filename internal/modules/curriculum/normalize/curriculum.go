// Package normalize converts untyped model output into curriculum values. Every function is
// total: malformed input yields a value with default fields, never an error.
package normalize

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

// NewID generates ids for topics that arrive without one.
var NewID = uuid.NewString

func Curriculum(raw any, fallbackSlug string, now time.Time) types.Curriculum {
	r := asRaw(raw)

	language, ok := r["language"].(string)
	if !ok {
		language = fallbackSlug
	}
	generatedAt, ok := r.LookupString("generated_at", "generatedAt")
	if !ok {
		generatedAt = now.UTC().Format(time.RFC3339)
	}

	sources := r.Slice("canonical_sources", "canonicalSources")
	canonical := make([]types.CanonicalSource, 0, len(sources))
	for _, s := range sources {
		canonical = append(canonical, CanonicalSource(s))
	}

	path := r.Slice("overall_learning_path", "overallLearningPath")
	levels := make([]types.LearningLevel, 0, len(path))
	for _, l := range path {
		levels = append(levels, LearningLevel(l))
	}

	projectsRaw := r.Slice("practice_projects", "practiceProjects")
	projects := make([]types.PracticeProject, 0, len(projectsRaw))
	for _, p := range projectsRaw {
		projects = append(projects, PracticeProject(p))
	}

	return types.Curriculum{
		Language:            language,
		GeneratedAt:         generatedAt,
		CanonicalSources:    CanonicalSources(canonical),
		OverallLearningPath: levels,
		CoreSources:         r.Strings("core_sources", "coreSources"),
		SupplementalSources: r.Strings("supplemental_sources", "supplementalSources"),
		PracticeProjects:    projects,
		Explanation:         r.String("explanation"),
		ModelVersion:        r.String("model_version", "modelVersion"),
	}
}

func LearningLevel(raw any) types.LearningLevel {
	r := asRaw(raw)
	return types.LearningLevel{
		Level:          r.String("level"),
		EstimatedHours: r.Number("estimated_hours", "estimatedHours"),
		Topics:         Topics(r.Slice("topics")),
	}
}

// Topics normalizes a list of topic payloads into curriculum order. Never nil.
func Topics(items []any) []types.Topic {
	out := make([]types.Topic, 0, len(items))
	for _, t := range items {
		out = append(out, Topic(t))
	}
	return SortTopics(out)
}

func Topic(raw any) types.Topic {
	r := asRaw(raw)

	id, ok := r["id"].(string)
	if !ok {
		id = NewID()
	}

	refsRaw := r.Slice("helpful_references", "helpfulReferences")
	refs := make([]types.SourceReference, 0, len(refsRaw))
	for _, ref := range refsRaw {
		refs = append(refs, SourceReference(ref))
	}

	return types.Topic{
		ID:                id,
		Title:             r.String("title"),
		Description:       r.String("description"),
		Order:             r.OptionalNumber("order"),
		EstimatedHours:    r.Number("estimated_hours", "estimatedHours"),
		Prerequisites:     r.Strings("prerequisites"),
		Outcomes:          Outcomes(r.Slice("outcomes")),
		ExampleExercises:  r.Strings("example_exercises", "exampleExercises"),
		HelpfulReferences: refs,
		Explainability:    r.Strings("explainability"),
		Subtopics:         Topics(r.Slice("subtopics")),
		LearningResources: LearningResources(r.Slice("learning_resources", "learningResources")),
	}
}

// Outcomes accepts bare strings and structured objects; null entries are dropped.
func Outcomes(items []any) []types.Outcome {
	out := make([]types.Outcome, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case nil:
			continue
		case string:
			out = append(out, types.TextOutcome(t))
		case map[string]any:
			r := Raw(t)
			out = append(out, types.NewStructuredOutcome(types.StructuredOutcome{
				ID:              r.String("id"),
				Title:           r.String("title"),
				Description:     r.String("description"),
				SuccessCriteria: r.String("success_criteria", "successCriteria"),
				AssessmentIdea:  r.String("assessment_idea", "assessmentIdea"),
			}))
		case []any:
			continue
		default:
			out = append(out, types.TextOutcome(fmt.Sprint(t)))
		}
	}
	return out
}

func CanonicalSource(raw any) types.CanonicalSource {
	r := asRaw(raw)
	return types.CanonicalSource{
		ID:           r.String("id"),
		Title:        r.String("title"),
		URL:          r.String("url"),
		Steward:      r.String("steward"),
		Type:         r.String("type"),
		Confidence:   r.Number("confidence"),
		ShortSummary: r.String("short_summary", "shortSummary"),
	}
}

func SourceReference(raw any) types.SourceReference {
	r := asRaw(raw)
	return types.SourceReference{
		SourceID:      r.String("sourceId", "source_id"),
		URL:           r.String("url"),
		Snippet:       r.String("snippet"),
		ShortEvidence: r.String("short_evidence", "shortEvidence"),
	}
}

// LearningResources normalizes a list of resource payloads. Never nil.
func LearningResources(items []any) []types.LearningResource {
	out := make([]types.LearningResource, 0, len(items))
	for _, item := range items {
		out = append(out, LearningResource(item))
	}
	return out
}

func LearningResource(raw any) types.LearningResource {
	r := asRaw(raw)
	return types.LearningResource{
		Title:          r.String("title"),
		URL:            r.String("url"),
		Type:           r.String("type"),
		AuthorityScore: r.Number("authority_score", "authorityScore"),
		FinalScore:     r.Number("final_score", "finalScore", "authority_score", "authorityScore"),
		TierID:         r.String("tier_id", "tierId"),
		AssetType:      r.String("asset_type", "assetType"),
		Rationale:      r.String("rationale", "reason"),
		ShortSummary:   r.String("short_summary", "shortSummary"),
	}
}

func PracticeProject(raw any) types.PracticeProject {
	r := asRaw(raw)
	return types.PracticeProject{
		Title:          r.String("title"),
		Description:    r.String("description"),
		Difficulty:     r.String("difficulty"),
		EstimatedHours: r.Number("estimated_hours", "estimatedHours"),
		Outcomes:       r.Strings("outcomes"),
	}
}

// Subtopics reads a subtopic-expansion reply: subtopics, topic.subtopics or items, or a
// bare array.
func Subtopics(raw any) []types.Topic {
	if arr, ok := raw.([]any); ok {
		return Topics(arr)
	}
	r := asRaw(raw)
	if v, ok := r.first("subtopics"); ok {
		arr, _ := v.([]any)
		return Topics(arr)
	}
	if v, ok := r.Object("topic").first("subtopics"); ok {
		arr, _ := v.([]any)
		return Topics(arr)
	}
	return Topics(r.Slice("items"))
}

// Resources reads a resource-generation reply: resources, learning_resources or items,
// or a bare array.
func Resources(raw any) []types.LearningResource {
	if arr, ok := raw.([]any); ok {
		return LearningResources(arr)
	}
	return LearningResources(asRaw(raw).Slice("resources", "learning_resources", "learningResources", "items"))
}
