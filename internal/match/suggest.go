package match

import (
	"slices"
	"strings"
)

// MinSimilarity is the lowest similarity Suggest reports.
const MinSimilarity = 0.6

// Suggest returns up to limit candidates resembling name, most similar
// first. Equal scores keep candidate order; duplicates and name itself are
// skipped.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := Normalize(name)
	seen := make(map[string]bool)

	var ranked []scored

	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		if s := Similarity(norm, Normalize(c)); s >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}

// Hint renders suggestions as "did you mean a, b or c?", or "" when there
// are none.
func Hint(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean " + suggestions[0] + "?"
	default:
		last := len(suggestions) - 1
		return "did you mean " + strings.Join(suggestions[:last], ", ") + " or " + suggestions[last] + "?"
	}
}
