package normalize

import (
	"fmt"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

const defaultAssetMinutes = 5

func SummaryArticle(raw any, topicTitle string) types.SummaryArticleContent {
	r := asRaw(raw)
	sectionsRaw := r.Slice("sections")
	sections := make([]types.SummarySection, 0, len(sectionsRaw))
	for _, s := range sectionsRaw {
		sr := asRaw(s)
		paragraphs := make([]string, 0)
		for _, p := range sr.Slice("paragraphs") {
			paragraphs = append(paragraphs, fmt.Sprint(p))
		}
		sections = append(sections, types.SummarySection{
			Heading:    sr.String("heading"),
			Paragraphs: paragraphs,
		})
	}
	title, ok := r.LookupString("title")
	if !ok {
		title = topicTitle
	}
	return types.SummaryArticleContent{
		Title:                   title,
		Sections:                sections,
		EstimatedReadingMinutes: minutesOr(r, defaultAssetMinutes, "estimated_reading_minutes", "estimatedReadingMinutes"),
	}
}

func AudioLesson(raw any, topicTitle string) types.AudioLessonContent {
	r := asRaw(raw)
	title, ok := r.LookupString("title")
	if !ok {
		title = topicTitle
	}
	return types.AudioLessonContent{
		Title:                    title,
		Script:                   r.String("script"),
		EstimatedDurationMinutes: minutesOr(r, defaultAssetMinutes, "estimated_duration_minutes", "estimatedDurationMinutes"),
	}
}

// Quiz keeps only questions that have a question, a correct answer and at least two choices.
func Quiz(raw any, topicTitle string) types.QuizContent {
	r := asRaw(raw)
	questionsRaw := r.Slice("questions")
	questions := make([]types.QuizQuestion, 0, len(questionsRaw))
	for _, q := range questionsRaw {
		qr := asRaw(q)
		choices := make([]string, 0)
		for _, c := range qr.Slice("choices", "options") {
			if c == nil {
				continue
			}
			choices = append(choices, fmt.Sprint(c))
		}
		question := types.QuizQuestion{
			Question:      qr.String("question", "prompt"),
			Choices:       choices,
			CorrectAnswer: qr.String("correct_answer", "correctAnswer", "answer"),
			Explanation:   qr.String("explanation", "explanationText"),
		}
		if question.Question == "" || question.CorrectAnswer == "" || len(question.Choices) < 2 {
			continue
		}
		questions = append(questions, question)
	}
	title, ok := r.LookupString("title")
	if !ok {
		title = topicTitle + " Quiz"
	}
	return types.QuizContent{
		Title:                    title,
		Questions:                questions,
		EstimatedDurationMinutes: minutesOr(r, defaultAssetMinutes, "estimated_duration_minutes", "estimatedDurationMinutes"),
	}
}

func minutesOr(r Raw, def float64, keys ...string) float64 {
	if v := r.OptionalNumber(keys...); v != nil {
		return *v
	}
	return def
}
