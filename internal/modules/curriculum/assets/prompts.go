package assets

import (
	"fmt"
	"strings"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

const summaryPromptTemplate = `You are an expert technical educator. Write a concise learning article for the topic below.

Return a JSON object with:
{
  "title": "string",
  "sections": [{ "heading": "string", "paragraphs": ["string"] }],
  "estimated_reading_minutes": number
}

Keep it beginner/intermediate friendly, actionable, and tied to the topic context.

%s`

const audioPromptTemplate = `You are an engaging instructor. Write a script for an audio lesson for the topic below.

Return a JSON object with:
{
  "title": "string",
  "script": "full narration text suitable to be read aloud",
  "estimated_duration_minutes": number
}

Use friendly, clear language and add light signposting between sections.

%s`

const quizPromptTemplate = `You are creating a short formative quiz for the topic below.

Return a JSON object with:
{
  "title": "string",
  "questions": [
    {
      "question": "string",
      "choices": ["string"],
      "correct_answer": "string",
      "explanation": "string"
    }
  ],
  "estimated_duration_minutes": number
}

Keep questions lightweight and focused on key concepts. Give every question at least two choices.

%s`

var promptTemplates = map[types.AssetType]string{
	types.AssetSummaryArticle: summaryPromptTemplate,
	types.AssetAudioLesson:    audioPromptTemplate,
	types.AssetQuiz:           quizPromptTemplate,
}

func topicContext(t types.Topic) string {
	lines := []string{
		"Topic: " + t.Title,
		"Description: " + t.Description,
	}
	if outcomes := t.OutcomeLabels(); len(outcomes) > 0 {
		lines = append(lines, "Outcomes: "+strings.Join(outcomes, "; "))
	}
	if len(t.LearningResources) > 0 {
		res := make([]string, 0, len(t.LearningResources))
		for _, r := range t.LearningResources {
			res = append(res, fmt.Sprintf("- %s (%s): %s", r.Title, r.Type, r.URL))
		}
		lines = append(lines, "Existing resources:\n"+strings.Join(res, "\n"))
	}
	return strings.Join(lines, "\n")
}

func assetPrompt(assetType types.AssetType, t types.Topic) string {
	return fmt.Sprintf(promptTemplates[assetType], topicContext(t))
}
