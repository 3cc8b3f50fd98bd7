package curriculum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type OutcomeKind int

const (
	OutcomeText OutcomeKind = iota
	OutcomeStructured
)

type StructuredOutcome struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	SuccessCriteria string `json:"success_criteria,omitempty"`
	AssessmentIdea  string `json:"assessment_idea,omitempty"`
}

// Outcome is either a bare statement or a structured outcome object. It marshals back to
// the same shape it was read from.
type Outcome struct {
	Kind       OutcomeKind
	Text       string
	Structured *StructuredOutcome
}

func TextOutcome(s string) Outcome { return Outcome{Kind: OutcomeText, Text: s} }

func NewStructuredOutcome(s StructuredOutcome) Outcome {
	return Outcome{Kind: OutcomeStructured, Structured: &s}
}

// Label is the human-readable form used in prompts and exports.
func (o Outcome) Label() string {
	if o.Kind == OutcomeStructured && o.Structured != nil {
		for _, s := range []string{o.Structured.Title, o.Structured.Description, o.Structured.ID} {
			if v := strings.TrimSpace(s); v != "" {
				return v
			}
		}
		return ""
	}
	return strings.TrimSpace(o.Text)
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Kind == OutcomeStructured && o.Structured != nil {
		return json.Marshal(o.Structured)
	}
	return json.Marshal(o.Text)
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = TextOutcome("")
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = TextOutcome(s)
	case '{':
		var s StructuredOutcome
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = NewStructuredOutcome(s)
	default:
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*o = TextOutcome(fmt.Sprint(v))
	}
	return nil
}
