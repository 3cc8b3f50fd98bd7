package generator

import (
	"encoding/json"
	"strings"
)

const topicsPromptTemplate = `You are an expert curriculum designer and software engineer. Build a structured curriculum for the programming language or technology described by the JSON data below.

This is phase 1: produce the main topics only. Do not produce subtopics; every topic must have "subtopics": []. Outcomes must be structured objects because subtopics are derived from them in a later call.

Reply with a single JSON object of this shape. Every field must be present; use [] or null when empty.

` + "```json" + `
{
  "language": "string",
  "generated_at": "ISO 8601 timestamp",
  "overall_learning_path": [
    {
      "level": "Beginner | Intermediate | Advanced | Expert",
      "estimated_hours": 0,
      "topics": [
        {
          "id": "string, unique",
          "title": "string",
          "description": "string",
          "order": 0,
          "estimated_hours": 0,
          "prerequisites": ["topic id"],
          "outcomes": [
            {
              "id": "string",
              "title": "short learner-facing statement",
              "description": "1-3 sentences",
              "success_criteria": "how to verify it (optional)",
              "assessment_idea": "quick check or exercise (optional)"
            }
          ],
          "example_exercises": ["string"],
          "helpful_references": [
            {"source_id": "canonical source id", "url": "string", "snippet": "string", "short_evidence": "string"}
          ],
          "explainability": ["which inputs influenced this topic"],
          "subtopics": []
        }
      ]
    }
  ],
  "canonical_sources": [
    {"id": "string", "title": "string", "url": "string", "steward": "publisher", "type": "Official Docs | Tutorial | API Reference", "confidence": 0, "short_summary": "string"}
  ],
  "core_sources": ["string"],
  "supplemental_sources": ["string"],
  "practice_projects": [
    {"title": "string", "description": "string", "difficulty": "string", "estimated_hours": 0, "outcomes": ["string"]}
  ],
  "explanation": "how sources were consolidated and ordering decided",
  "model_version": "string"
}
` + "```" + `

JSON data:
{curriculumData}`

const subtopicsPromptTemplate = `You are an expert curriculum designer. Given one main topic and its outcomes, produce only that topic's subtopics.

Rules:
- Derive subtopics from the topic's outcomes; each outcome maps to one or more subtopics.
- Titles are short (2-6 words), concrete and learner-friendly.
- Descriptions are 1-3 sentences on scope and expectations.
- Give each subtopic structured outcomes in the same shape as the topic's.
- No resources, practice projects or deeper levels.

Reply with JSON:
{
  "topic_id": "string",
  "subtopics": [
    {
      "id": "string",
      "title": "string",
      "description": "string",
      "order": 0,
      "estimated_hours": 0,
      "prerequisites": ["string"],
      "outcomes": [{"id": "string", "title": "string", "description": "string", "success_criteria": "string", "assessment_idea": "string"}],
      "example_exercises": ["string"],
      "helpful_references": [{"source_id": "string", "url": "string", "snippet": "string", "short_evidence": "string"}],
      "explainability": ["string"],
      "subtopics": []
    }
  ]
}

Language: {language}
Topic JSON:
{topicData}`

const resourcesPromptTemplate = `You curate learning resources. Recommend authoritative resources for the leaf topic below, ranked using the trust profiles and asset scoring rules.

Reply with JSON:
{
  "resources": [
    {
      "title": "string",
      "url": "string",
      "type": "documentation | video | article | github | book | tutorial | other",
      "authority_score": 0,
      "final_score": 0,
      "tier_id": "string",
      "asset_type": "string",
      "rationale": "why this resource",
      "short_summary": "string"
    }
  ]
}

Language: {language}
Topic path: {topicPath}
Trust profiles:
{trustProfiles}
Asset scoring:
{assetScoring}`

func topicsPrompt(outline any) string {
	return strings.Replace(topicsPromptTemplate, "{curriculumData}", indentJSON(outline), 1)
}

func subtopicsPrompt(language string, topicData any) string {
	return strings.NewReplacer(
		"{language}", language,
		"{topicData}", indentJSON(topicData),
	).Replace(subtopicsPromptTemplate)
}

func resourcesPrompt(req ResourceRequest) string {
	return strings.NewReplacer(
		"{language}", req.Language,
		"{topicPath}", strings.Join(req.TopicPath, " > "),
		"{trustProfiles}", indentJSON(req.TrustProfiles),
		"{assetScoring}", indentJSON(req.AssetScoring),
	).Replace(resourcesPromptTemplate)
}

func indentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(b)
}
