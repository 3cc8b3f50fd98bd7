package normalize

import (
	"net/url"
	"strings"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

// CanonicalSources drops sources whose URL repeats an earlier one by host and path; query,
// fragment and a trailing slash are ignored. Sources without a parseable URL are kept.
// A missing id is derived from the URL.
func CanonicalSources(sources []types.CanonicalSource) []types.CanonicalSource {
	out := make([]types.CanonicalSource, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		host, path, ok := hostPath(s.URL)
		if !ok {
			out = append(out, s)
			continue
		}
		key := host + path
		if seen[key] {
			continue
		}
		seen[key] = true
		if s.ID == "" {
			s.ID = sourceID(host, path)
		}
		out = append(out, s)
	}
	return out
}

func hostPath(raw string) (string, string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", "", false
	}
	return strings.ToLower(u.Hostname()), strings.TrimSuffix(u.Path, "/"), true
}

// sourceID turns docs.oracle.com/javase/tutorial into docs-oracle-com-javase-tutorial.
func sourceID(host, path string) string {
	p := strings.Trim(path, "/")
	if p == "" {
		p = "root"
	}
	return strings.ToLower(strings.ReplaceAll(host, ".", "-") + "-" + strings.ReplaceAll(p, "/", "-"))
}

var stewardDomains = []string{
	"oracle.com",
	"openjdk.org",
	"developer.mozilla.org",
	"ecma-international.org",
}

// ScoreAuthority fills a zero authority score from URL and text heuristics, and a zero
// final score from the authority score. Scores the model supplied are left alone.
func ScoreAuthority(r types.LearningResource) types.LearningResource {
	if r.AuthorityScore == 0 {
		var score float64
		var reasons []string
		if host, _, ok := hostPath(r.URL); ok && isStewardHost(host) {
			score += 10
			reasons = append(reasons, "Official steward domain.")
		}
		title := strings.ToLower(r.Title)
		if strings.Contains(title, "specification") || strings.Contains(title, "reference") {
			score += 5
			reasons = append(reasons, "Title names a specification or reference.")
		}
		if strings.Contains(strings.ToLower(r.ShortSummary), "official") {
			score += 3
			reasons = append(reasons, "Summary says official.")
		}
		r.AuthorityScore = score
		if r.Rationale == "" && len(reasons) > 0 {
			r.Rationale = strings.Join(reasons, " ")
		}
	}
	if r.FinalScore == 0 {
		r.FinalScore = r.AuthorityScore
	}
	return r
}

func isStewardHost(host string) bool {
	for _, d := range stewardDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
