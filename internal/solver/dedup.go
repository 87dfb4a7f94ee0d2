package solver

import (
	"fmt"
	"sort"

	"github.com/jacksmith/kex/internal/graph"
)

// Dedup keeps one cycle per donor set, the one with the highest score.
// On equal scores the first one wins. Sequences are keyed by their exact
// donor order, since the order decides which transplants happen, so only
// repeated identical sequences are dropped. Output keeps the order in which
// keys were first seen.
func Dedup(paths []graph.PathWithScore) []graph.PathWithScore {
	index := make(map[string]int, len(paths))
	var out []graph.PathWithScore

	for _, p := range paths {
		key := dedupKey(p.Path)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, p)
			continue
		}
		if p.Score > out[i].Score {
			out[i] = p
		}
	}
	return out
}

func dedupKey(p graph.Path) string {
	if !p.IsCycle() {
		return "s" + fmt.Sprint([]int(p))
	}
	donors := p.Donors()
	sort.Ints(donors)
	return "c" + fmt.Sprint(donors)
}
