package mood

import (
	"sort"
	"strings"
)

// tieOrder fixes the tie-break priority for dominant-expression selection.
// Categories not listed rank after these, in lexical order.
var tieOrder = []string{"happy", "neutral", "sad", "angry", "surprised"}

// GenreFor maps an expression category to a genre. The mapping is total:
// any category outside the table falls back to Romantic.
func GenreFor(expression string) string {
	switch strings.ToLower(expression) {
	case "happy", "neutral":
		return "Romantic"
	case "sad":
		return "Classical"
	case "angry":
		return "Rock"
	case "surprised":
		return "Hip-hop"
	default:
		return "Romantic"
	}
}

// Dominant picks the highest-scoring expression. Equal scores resolve by
// tieOrder so the result never depends on map iteration order. Empty
// scores yield the empty string.
func Dominant(scores Scores) string {
	if len(scores) == 0 {
		return ""
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return rank(names[i]) < rank(names[j]) })

	best := names[0]
	for _, name := range names[1:] {
		if scores[name] > scores[best] {
			best = name
		}
	}
	return best
}

// rank orders a category by tieOrder, with unlisted categories sorted
// lexically after the listed ones.
func rank(name string) string {
	for i, cat := range tieOrder {
		if cat == strings.ToLower(name) {
			return string(rune('0' + i))
		}
	}
	return "z" + strings.ToLower(name)
}
