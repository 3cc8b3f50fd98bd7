package normalize

import (
	"sort"

	types "github.com/yungbote/sotfinder-backend/internal/domain"
)

// SortTopics returns a copy of topics ordered by Order ascending. Topics without an
// order sort last; ties break on title.
func SortTopics(topics []types.Topic) []types.Topic {
	out := make([]types.Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Order, out[j].Order
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return out[i].Title < out[j].Title
	})
	return out
}
