package graph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/topo"
)

// TooComplicatedError is returned when candidate enumeration would exceed
// its configured ceiling.
type TooComplicatedError struct {
	What  string // "cycles" or "sequences"
	Limit int
}

func (e *TooComplicatedError) Error() string {
	return fmt.Sprintf("too many %s to enumerate (more than %d); use a shorter maximum round length or the ilp solver",
		e.What, e.Limit)
}

// CycleOptions bounds cycle enumeration. Zero values disable a bound.
type CycleOptions struct {
	// MaxLength is the longest cycle kept, in transplants.
	MaxLength int
	// MaxCountries is the largest number of distinct countries in a cycle.
	MaxCountries int
	// MaxCount aborts enumeration with TooComplicatedError once exceeded.
	MaxCount int
}

// FindCycles enumerates the elementary cycles among paired donors using
// Johnson's algorithm. Each cycle starts at its smallest donor index and
// repeats it at the end. Cycles in which a recipient would receive twice
// are never returned.
//
// Example: with donor edges 0 → 1 → 2 → 0 and 1 → 0, FindCycles returns
// [0 1 0] and [0 1 2 0].
func (g *Graph) FindCycles(opts CycleOptions) ([]Path, error) {
	j := &johnson{
		g:       g,
		opts:    opts,
		blocked: make(map[int]bool),
		blist:   make(map[int]map[int]bool),
	}

	for _, s := range g.PairedDonors() {
		// Restrict the search to the strongly connected component of s in
		// the subgraph of paired donors with index >= s.
		start := s
		sub := g.Digraph(func(d int) bool { return d >= start && !g.IsBridge(d) })
		j.members = nil
		for _, comp := range topo.TarjanSCC(sub) {
			for _, n := range comp {
				if int(n.ID()) == s {
					j.members = make(map[int]bool, len(comp))
					for _, m := range comp {
						j.members[int(m.ID())] = true
					}
				}
			}
		}
		if len(j.members) < 2 {
			continue
		}

		clear(j.blocked)
		clear(j.blist)
		j.stack = j.stack[:0]
		if _, err := j.circuit(s, s); err != nil {
			return nil, err
		}
	}

	return j.cycles, nil
}

// johnson holds the search state of one FindCycles call.
type johnson struct {
	g    *Graph
	opts CycleOptions

	members map[int]bool
	blocked map[int]bool
	blist   map[int]map[int]bool
	stack   []int

	found  int
	cycles []Path
}

// circuit explores from v looking for cycles back to s. It reports whether
// v may lie on a cycle, in which case v is unblocked on return. Branches
// cut by the length bound also count as possible cycles so that blocking
// never hides a shorter route found later.
func (j *johnson) circuit(v, s int) (bool, error) {
	possible := false
	j.stack = append(j.stack, v)
	j.blocked[v] = true

	atLimit := j.opts.MaxLength > 0 && len(j.stack) >= j.opts.MaxLength
	for _, w := range j.g.donorAdj[v] {
		if !j.members[w] {
			continue
		}
		if w == s {
			if err := j.record(s); err != nil {
				return false, err
			}
			possible = true
			continue
		}
		if j.blocked[w] {
			continue
		}
		if atLimit {
			possible = true
			continue
		}
		ok, err := j.circuit(w, s)
		if err != nil {
			return false, err
		}
		if ok {
			possible = true
		}
	}

	if possible {
		j.unblock(v)
	} else {
		for _, w := range j.g.donorAdj[v] {
			if !j.members[w] {
				continue
			}
			if j.blist[w] == nil {
				j.blist[w] = make(map[int]bool)
			}
			j.blist[w][v] = true
		}
	}

	j.stack = j.stack[:len(j.stack)-1]
	return possible, nil
}

func (j *johnson) unblock(u int) {
	j.blocked[u] = false
	for w := range j.blist[u] {
		delete(j.blist[u], w)
		if j.blocked[w] {
			j.unblock(w)
		}
	}
}

// record stores the cycle on the current stack if it passes the filters.
func (j *johnson) record(s int) error {
	j.found++
	if j.opts.MaxCount > 0 && j.found > j.opts.MaxCount {
		return &TooComplicatedError{What: "cycles", Limit: j.opts.MaxCount}
	}

	p := make(Path, 0, len(j.stack)+1)
	p = append(p, j.stack...)
	p = append(p, s)

	if j.g.repeatsRecipient(p) {
		return nil
	}
	if j.opts.MaxCountries > 0 && j.g.countries(j.g.Pairs(p)) > j.opts.MaxCountries {
		return nil
	}
	j.cycles = append(j.cycles, p)
	return nil
}
