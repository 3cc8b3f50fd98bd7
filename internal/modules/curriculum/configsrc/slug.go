package configsrc

import (
	"regexp"
	"strconv"
	"strings"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/keys"
)

// Stripped in order, repeatedly, until none remain.
var noisePhrases = []string{
	"developer path",
	"engineer path",
	"developer",
	"engineer",
	"frontend",
	"backend",
	"fullstack",
	"basics",
	"learning path",
}

var nonSlugRE = regexp.MustCompile(`[^a-z0-9+]+`)

// NormalizeSlug maps a display name or identity to its canonical slug. It is idempotent:
// removing one phrase can join the halves of another, so stripping repeats to a fixed point.
// NormalizeSlug("Java Developer Path") == "java".
func NormalizeSlug(raw string) string {
	s := strings.ToLower(raw)
	for {
		prev := s
		for _, p := range noisePhrases {
			s = strings.ReplaceAll(s, p, "")
		}
		if s == prev {
			break
		}
	}
	s = nonSlugRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// identityField extracts one candidate identity from a config.
type identityField struct {
	name    string
	extract func(types.TopicConfig) string
}

func stringField(key string) identityField {
	return identityField{
		name: key,
		extract: func(c types.TopicConfig) string {
			s, _ := c[key].(string)
			return strings.TrimSpace(s)
		},
	}
}

// identityFields is tried in order; the first non-empty value wins.
var identityFields = []identityField{
	stringField("language_slug"),
	stringField("language"),
	stringField("subject"),
	stringField("slug"),
	stringField("id"),
	stringField("name"),
}

// Identity returns the identity string used to derive a config's slug, or "".
func Identity(c types.TopicConfig) string {
	for _, f := range identityFields {
		if v := f.extract(c); v != "" {
			return v
		}
	}
	return ""
}

// SlugIndex maps slugs to configs; Slugs keeps first-seen order for listings.
type SlugIndex struct {
	slugs  []string
	bySlug map[string]types.TopicConfig
}

// BuildSlugIndex assigns each config a unique slug. Entries without a usable identity are
// skipped; collisions get a short suffix derived from the identity.
func BuildSlugIndex(configs []types.TopicConfig) *SlugIndex {
	ix := &SlugIndex{bySlug: make(map[string]types.TopicConfig, len(configs))}
	for _, cfg := range configs {
		identity := Identity(cfg)
		if identity == "" {
			continue
		}
		base := NormalizeSlug(identity)
		if base == "" {
			continue
		}
		slug := base
		if _, taken := ix.bySlug[slug]; taken {
			slug = base + "-" + keys.SlugSuffix(identity)
			for n := 1; ix.has(slug) || NormalizeSlug(slug) != slug; n++ {
				slug = base + "-" + keys.SlugSuffix(identity+"-"+strconv.Itoa(n))
			}
		}
		ix.slugs = append(ix.slugs, slug)
		ix.bySlug[slug] = cfg
	}
	return ix
}

func (ix *SlugIndex) has(slug string) bool {
	_, ok := ix.bySlug[slug]
	return ok
}

func (ix *SlugIndex) Lookup(slug string) (types.TopicConfig, bool) {
	if ix == nil {
		return nil, false
	}
	cfg, ok := ix.bySlug[slug]
	return cfg, ok
}

func (ix *SlugIndex) Slugs() []string {
	if ix == nil {
		return nil
	}
	return append([]string(nil), ix.slugs...)
}

func (ix *SlugIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.slugs)
}
