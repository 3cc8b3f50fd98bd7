package curriculum

import (
	"encoding/json"
	"time"
)

type AssetType string

const (
	AssetSummaryArticle AssetType = "summary_article"
	AssetAudioLesson    AssetType = "audio_lesson"
	AssetQuiz           AssetType = "quiz"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetSummaryArticle, AssetAudioLesson, AssetQuiz:
		return true
	}
	return false
}

// GeneratedAsset is on-demand content for one topic. Content holds one of the
// *Content shapes below, encoded as JSON.
type GeneratedAsset struct {
	ID           string          `json:"id"`
	LanguageSlug string          `json:"language_slug"`
	TopicID      string          `json:"topic_id"`
	AssetType    AssetType       `json:"asset_type"`
	ConfigHash   string          `json:"config_hash"`
	Content      json.RawMessage `json:"content"`
	AudioURL     string          `json:"audio_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type SummarySection struct {
	Heading    string   `json:"heading"`
	Paragraphs []string `json:"paragraphs"`
}

type SummaryArticleContent struct {
	Title                   string           `json:"title"`
	Sections                []SummarySection `json:"sections"`
	EstimatedReadingMinutes float64          `json:"estimated_reading_minutes"`
}

type AudioLessonContent struct {
	Title                    string  `json:"title"`
	Script                   string  `json:"script"`
	EstimatedDurationMinutes float64 `json:"estimated_duration_minutes"`
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type QuizContent struct {
	Title                    string         `json:"title"`
	Questions                []QuizQuestion `json:"questions"`
	EstimatedDurationMinutes float64        `json:"estimated_duration_minutes"`
}
