package curriculum

// Curriculum is the generated artifact for one subject. Slices are never nil once the
// value has passed through the normalizer.
type Curriculum struct {
	Language            string            `json:"language"`
	GeneratedAt         string            `json:"generated_at"`
	CanonicalSources    []CanonicalSource `json:"canonical_sources"`
	OverallLearningPath []LearningLevel   `json:"overall_learning_path"`
	CoreSources         []string          `json:"core_sources"`
	SupplementalSources []string          `json:"supplemental_sources"`
	PracticeProjects    []PracticeProject `json:"practice_projects"`
	Explanation         string            `json:"explanation"`
	ModelVersion        string            `json:"model_version"`

	// DegradedTopics lists top-level topic ids whose subtopic expansion failed.
	DegradedTopics []string `json:"degraded_topics,omitempty"`
}

type LearningLevel struct {
	Level          string  `json:"level"`
	EstimatedHours float64 `json:"estimated_hours"`
	Topics         []Topic `json:"topics"`
}

// Topic is a recursive curriculum node. Order is nil when the model did not provide one.
type Topic struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Order             *float64           `json:"order,omitempty"`
	EstimatedHours    float64            `json:"estimated_hours"`
	Prerequisites     []string           `json:"prerequisites"`
	Outcomes          []Outcome          `json:"outcomes"`
	ExampleExercises  []string           `json:"example_exercises"`
	HelpfulReferences []SourceReference  `json:"helpful_references"`
	Explainability    []string           `json:"explainability"`
	Subtopics         []Topic            `json:"subtopics"`
	LearningResources []LearningResource `json:"learning_resources"`
}

func (t Topic) IsLeaf() bool { return len(t.Subtopics) == 0 }

// OutcomeLabels returns the display text of every outcome.
func (t Topic) OutcomeLabels() []string {
	out := make([]string, 0, len(t.Outcomes))
	for _, o := range t.Outcomes {
		if l := o.Label(); l != "" {
			out = append(out, l)
		}
	}
	return out
}

type SourceReference struct {
	SourceID      string `json:"source_id"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet,omitempty"`
	ShortEvidence string `json:"short_evidence,omitempty"`
}

type CanonicalSource struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Steward      string  `json:"steward"`
	Type         string  `json:"type"`
	Confidence   float64 `json:"confidence"`
	ShortSummary string  `json:"short_summary"`
}

type LearningResource struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Type           string  `json:"type"`
	AuthorityScore float64 `json:"authority_score"`
	ShortSummary   string  `json:"short_summary"`
	TierID         string  `json:"tier_id,omitempty"`
	AssetType      string  `json:"asset_type,omitempty"`
	FinalScore     float64 `json:"final_score"`
	Rationale      string  `json:"rationale,omitempty"`
}

type PracticeProject struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	EstimatedHours float64  `json:"estimated_hours"`
	Outcomes       []string `json:"outcomes"`
}

type LanguageOption struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

type CacheMetadata struct {
	LanguageSlug string `json:"language_slug"`
	UpdatedAt    string `json:"updated_at"`
	ConfigHash   string `json:"config_hash"`
}
