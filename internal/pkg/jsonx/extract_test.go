package jsonx

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{name: "direct", in: ` {"a":1} `, want: map[string]any{"a": float64(1)}},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: map[string]any{"a": float64(1)}},
		{name: "bare fence", in: "```\n[1,2]\n```", want: []any{float64(1), float64(2)}},
		{name: "prose around object", in: `prefix {"a":1} suffix`, want: map[string]any{"a": float64(1)}},
		{name: "prose around array", in: `here: [1, 2] done`, want: []any{float64(1), float64(2)}},
		{name: "garbage", in: "garbage", want: map[string]any{}},
		{name: "empty", in: "   ", want: map[string]any{}},
		{name: "broken object falls back to array", in: `x {"a": [1] y`, want: []any{float64(1)}},
		{name: "scalar", in: `42`, want: float64(42)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract(%q)=%#v want %#v", tc.in, got, tc.want)
			}
		})
	}
}
