// Package jsonx recovers JSON values from model output that is not guaranteed to be strict JSON.
package jsonx

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	leadingFenceRE  = regexp.MustCompile("(?i)^```json")
	trailingFenceRE = regexp.MustCompile("```$")
)

// Extract returns the best-effort parsed JSON value of s. Attempts, first success wins:
// the trimmed text, the text with a surrounding code fence removed, the outermost {...}
// span, then the outermost [...] span. It never fails; an empty object is returned when
// nothing parses.
func Extract(s string) any {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return map[string]any{}
	}
	if v, ok := parse(cleaned); ok {
		return v
	}

	stripped := StripFence(cleaned)
	if v, ok := parse(stripped); ok {
		return v
	}

	if v, ok := parseSpan(stripped, "{", "}"); ok {
		return v
	}
	if v, ok := parseSpan(stripped, "[", "]"); ok {
		return v
	}
	return map[string]any{}
}

// StripFence removes one leading ```json / ``` marker and one trailing ``` marker.
func StripFence(s string) string {
	out := leadingFenceRE.ReplaceAllString(s, "")
	out = strings.TrimPrefix(out, "```")
	out = trailingFenceRE.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

func parseSpan(s, open, close string) (any, bool) {
	start := strings.Index(s, open)
	end := strings.LastIndex(s, close)
	if start == -1 || end <= start {
		return nil, false
	}
	return parse(s[start : end+1])
}

func parse(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}
