package domain

import (
	"github.com/yungbote/sotfinder-backend/internal/domain/caching"
	"github.com/yungbote/sotfinder-backend/internal/domain/curriculum"
	"github.com/yungbote/sotfinder-backend/internal/domain/feedback"
)

type Curriculum = curriculum.Curriculum
type LearningLevel = curriculum.LearningLevel
type Topic = curriculum.Topic
type SourceReference = curriculum.SourceReference
type CanonicalSource = curriculum.CanonicalSource
type LearningResource = curriculum.LearningResource
type PracticeProject = curriculum.PracticeProject
type LanguageOption = curriculum.LanguageOption
type CacheMetadata = curriculum.CacheMetadata
type TopicConfig = curriculum.TopicConfig

type Outcome = curriculum.Outcome
type OutcomeKind = curriculum.OutcomeKind
type StructuredOutcome = curriculum.StructuredOutcome

const (
	OutcomeText       = curriculum.OutcomeText
	OutcomeStructured = curriculum.OutcomeStructured
)

func TextOutcome(s string) Outcome { return curriculum.TextOutcome(s) }

func NewStructuredOutcome(s StructuredOutcome) Outcome { return curriculum.NewStructuredOutcome(s) }

type AssetType = curriculum.AssetType
type GeneratedAsset = curriculum.GeneratedAsset
type SummarySection = curriculum.SummarySection
type SummaryArticleContent = curriculum.SummaryArticleContent
type AudioLessonContent = curriculum.AudioLessonContent
type QuizQuestion = curriculum.QuizQuestion
type QuizContent = curriculum.QuizContent

const (
	AssetSummaryArticle = curriculum.AssetSummaryArticle
	AssetAudioLesson    = curriculum.AssetAudioLesson
	AssetQuiz           = curriculum.AssetQuiz
)

type CurriculumCacheEntry = caching.CurriculumCacheEntry
type GeneratedAssetEntry = caching.GeneratedAssetEntry
type LocalCacheEntry = caching.LocalCacheEntry

type Feedback = feedback.Feedback
type FeedbackCategory = feedback.Category
