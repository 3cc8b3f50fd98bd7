package curriculum

import (
	"encoding/json"
	"testing"
)

func TestOutcomeAcceptsBothShapes(t *testing.T) {
	var got []Outcome
	in := `["Write a class", {"id":"o1","title":"Use generics","description":"d"}, null, 3]`
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].Kind != OutcomeText || got[0].Label() != "Write a class" {
		t.Fatalf("text outcome: %+v", got[0])
	}
	if got[1].Kind != OutcomeStructured || got[1].Label() != "Use generics" {
		t.Fatalf("structured outcome: %+v", got[1])
	}
	if got[2].Label() != "" || got[3].Label() != "3" {
		t.Fatalf("null/number outcomes: %q %q", got[2].Label(), got[3].Label())
	}

	out, err := json.Marshal(got[:2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["Write a class",{"id":"o1","title":"Use generics","description":"d"}]`
	if string(out) != want {
		t.Fatalf("marshal=%s want %s", out, want)
	}
}

func TestOutcomeLabelFallsBackToDescription(t *testing.T) {
	o := NewStructuredOutcome(StructuredOutcome{Description: "  explain closures "})
	if o.Label() != "explain closures" {
		t.Fatalf("label=%q", o.Label())
	}
}

func TestTopicConfigAccessors(t *testing.T) {
	cfg := TopicConfig{
		"name":          " Java ",
		"topics":        map[string]any{"topics": []any{"a"}},
		"trustProfiles": map[string]any{"trustProfiles": map[string]any{"oracle": 1.0}},
	}
	if cfg.Name() != "Java" {
		t.Fatalf("name=%q", cfg.Name())
	}
	if topics, ok := cfg.Topics().([]any); !ok || len(topics) != 1 {
		t.Fatalf("topics=%#v", cfg.Topics())
	}
	if _, ok := cfg.TrustProfiles()["oracle"]; !ok {
		t.Fatalf("trust profiles not unwrapped: %#v", cfg.TrustProfiles())
	}
	if cfg.AssetScoring() != nil {
		t.Fatalf("asset scoring should be nil")
	}

	bare := TopicConfig{"name": "Go"}
	if bare.Topics() != nil {
		t.Fatalf("expected nil topics")
	}
	if m, ok := bare.Outline().(map[string]any); !ok || m["name"] != "Go" {
		t.Fatalf("outline should fall back to the whole config: %#v", bare.Outline())
	}
}
