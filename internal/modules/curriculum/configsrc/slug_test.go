package configsrc

import (
	"testing"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"Java Developer Path":       "java",
		"Java":                      "java",
		"  C++ Basics ":             "c++",
		"Frontend Engineer Path":    "",
		"Backend Developer (Go)":    "go",
		"Rust Learning Path":        "rust",
		"Node.js Fullstack":         "node-js",
		"Data---Science__Engineer!": "data-science",
		"Frontbackendend":           "",
		"DevEngineereloper":         "",
		"Go Frontbackendend":        "go",
		"Learning  Path":            "learning-path",
	}
	for in, want := range cases {
		got := NormalizeSlug(in)
		if got != want {
			t.Fatalf("NormalizeSlug(%q)=%q want %q", in, got, want)
		}
		if again := NormalizeSlug(got); again != got {
			t.Fatalf("NormalizeSlug not idempotent for %q: %q then %q", in, got, again)
		}
	}
}

func TestIdentityPriority(t *testing.T) {
	cases := []struct {
		cfg  types.TopicConfig
		want string
	}{
		{cfg: types.TopicConfig{"name": "Java Path", "slug": "java-se", "language_slug": "java"}, want: "java"},
		{cfg: types.TopicConfig{"name": "Java Path", "subject": "Java SE", "id": "x"}, want: "Java SE"},
		{cfg: types.TopicConfig{"name": "  Go  ", "language": "   "}, want: "Go"},
		{cfg: types.TopicConfig{"id": 7, "name": "Kotlin"}, want: "Kotlin"},
		{cfg: types.TopicConfig{"topics": []any{}}, want: ""},
	}
	for _, tc := range cases {
		if got := Identity(tc.cfg); got != tc.want {
			t.Fatalf("Identity(%v)=%q want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestBuildSlugIndexDeduplicates(t *testing.T) {
	configs := []types.TopicConfig{
		{"name": "Java"},
		{"name": "Java"},
		{"name": "Java"},
		{"name": "Python Developer"},
		{"name": "Developer"},
		{"description": "no identity"},
	}
	ix := BuildSlugIndex(configs)
	want := []string{"java", "java-1dbuq", "java-10ktg8", "python"}
	got := ix.Slugs()
	if len(got) != len(want) {
		t.Fatalf("slugs=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slugs=%v want %v", got, want)
		}
	}
	for _, slug := range got {
		if _, ok := ix.Lookup(slug); !ok {
			t.Fatalf("missing %q", slug)
		}
	}
	if _, ok := ix.Lookup("developer"); ok {
		t.Fatalf("identity that normalizes to nothing must be skipped")
	}
}
