// Package export renders curricula for download and computes hour rollups.
package export

import (
	"strconv"
	"strings"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/normalize"
)

// TopicHours is the topic's own estimate when nonzero, otherwise the sum over its subtopics.
func TopicHours(t types.Topic) float64 {
	if t.EstimatedHours != 0 {
		return t.EstimatedHours
	}
	var sum float64
	for _, sub := range t.Subtopics {
		sum += TopicHours(sub)
	}
	return sum
}

// LevelHours is the level's stated estimate when nonzero, otherwise the sum of its topics.
func LevelHours(l types.LearningLevel) float64 {
	if l.EstimatedHours != 0 {
		return l.EstimatedHours
	}
	var sum float64
	for _, t := range l.Topics {
		sum += TopicHours(t)
	}
	return sum
}

// FindTopic searches every level depth-first for the topic with the given id.
func FindTopic(cur *types.Curriculum, id string) (*types.Topic, bool) {
	if cur == nil || id == "" {
		return nil, false
	}
	for li := range cur.OverallLearningPath {
		if t, ok := findIn(cur.OverallLearningPath[li].Topics, id); ok {
			return t, true
		}
	}
	return nil, false
}

func findIn(topics []types.Topic, id string) (*types.Topic, bool) {
	for i := range topics {
		if topics[i].ID == id {
			return &topics[i], true
		}
		if t, ok := findIn(topics[i].Subtopics, id); ok {
			return t, true
		}
	}
	return nil, false
}

// FormatHours renders "N hrs" with at most one decimal, or "" for zero.
func FormatHours(h float64) string {
	if h <= 0 {
		return ""
	}
	if h == float64(int64(h)) {
		return strconv.FormatInt(int64(h), 10) + " hrs"
	}
	return strconv.FormatFloat(h, 'f', 1, 64) + " hrs"
}

// Markdown renders cur as an outline document titled with label.
func Markdown(cur *types.Curriculum, label string) string {
	if label == "" {
		label = cur.Language
	}
	var b strings.Builder
	b.WriteString("# " + label + " Curriculum Export\n")
	b.WriteString("Generated: " + cur.GeneratedAt + "\n\n")
	b.WriteString("## Subject Overview\n")
	if cur.Explanation != "" {
		b.WriteString(cur.Explanation + "\n")
	} else {
		b.WriteString("No description available.\n")
	}
	b.WriteString("\n## Main Topics & Subtopics\n")

	for _, level := range cur.OverallLearningPath {
		b.WriteString("\n### " + level.Level)
		if hrs := FormatHours(LevelHours(level)); hrs != "" {
			b.WriteString(" (" + hrs + ")")
		}
		b.WriteString("\n")
		if len(level.Topics) == 0 {
			b.WriteString("- No topics found for this level.\n")
			continue
		}
		for _, t := range normalize.SortTopics(level.Topics) {
			writeTopic(&b, t, 0)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeTopic(b *strings.Builder, t types.Topic, depth int) {
	b.WriteString(strings.Repeat("  ", depth) + "- " + t.Title)
	if t.Description != "" {
		b.WriteString(" - " + t.Description)
	}
	b.WriteString("\n")
	for _, sub := range normalize.SortTopics(t.Subtopics) {
		writeTopic(b, sub, depth+1)
	}
}
