package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"OPENAI_API_KEY", "sk-123", "slug", "java", "dangling"})
	if len(got) != 5 {
		t.Fatalf("len=%d want 5", len(got))
	}
	if got[1] != "[REDACTED]" {
		t.Fatalf("api key not redacted: %v", got[1])
	}
	if got[3] != "java" {
		t.Fatalf("slug changed: %v", got[3])
	}
	if got[4] != "dangling" {
		t.Fatalf("dangling key dropped: %v", got)
	}
}
