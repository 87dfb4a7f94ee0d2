package solver

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/jacksmith/kex/internal/graph"
	"github.com/jacksmith/kex/internal/ilp"
	"github.com/jacksmith/kex/internal/log"
	"github.com/jacksmith/kex/internal/model"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// edge is one ILP variable: donor From gives to the own recipient of
// donor To.
type edge struct {
	From, To int
}

// optimizer holds the flow model of one Optimize call.
type optimizer struct {
	g      *graph.Graph
	limits model.Limits

	model *ilp.Model
	edges []edge
	// out and in list the variables leaving and entering each donor.
	out, in map[int][]int

	cuts int
}

// Optimize finds the matchings with the most transplants, and among those
// the highest score, using an integer program over donor edges.
//
// Rounds that break the length or country limits are forbidden lazily:
// after each solve the selected edges are split into cycles and sequences
// and every offending round gets a constraint. Once a solution is clean it
// is produced and excluded with a no-good constraint, up to
// MaxMatchingsInILPSolver matchings. A solution with no transplants ends
// the sequence.
//
// Each matching is a fresh solve, so an UnboundedRoundsError or
// ilp.ErrNodeLimit can follow matchings already produced. Callers must
// drop those matchings when the sequence ends in an error.
func Optimize(g *graph.Graph, limits model.Limits) iter.Seq2[model.Matching, error] {
	return func(yield func(model.Matching, error) bool) {
		o := newOptimizer(g, limits)
		if len(o.edges) == 0 {
			return
		}
		log.Debugf("ilp: %d edge variables, %d constraints", o.model.NumVars(), o.model.NumConstraints())

		for k := 0; k < limits.MaxMatchingsInILPSolver; k++ {
			selected, err := o.solve()
			if errors.Is(err, ilp.ErrInfeasible) {
				return
			}
			if err != nil {
				yield(model.Matching{}, err)
				return
			}
			if len(selected) == 0 {
				return
			}
			if !yield(o.matching(selected), nil) {
				return
			}
			if !o.exclude(selected) {
				return
			}
		}
	}
}

func newOptimizer(g *graph.Graph, limits model.Limits) *optimizer {
	o := &optimizer{
		g:      g,
		limits: limits,
		model:  ilp.New(),
		out:    make(map[int][]int),
		in:     make(map[int][]int),
	}
	o.model.MaxNodes = limits.MaxBranchAndBoundNodes

	multiplier := (g.MaxScore() + 1) * float64(g.NumDonors()+1)
	for d := 0; d < g.NumDonors(); d++ {
		for _, next := range g.CompatibleDonors(d) {
			r, _ := g.OwnRecipient(next)
			s, _ := g.Score(d, r)
			v := o.model.AddVar(multiplier + s)
			o.edges = append(o.edges, edge{From: d, To: next})
			o.out[d] = append(o.out[d], v)
			o.in[next] = append(o.in[next], v)
		}
	}

	for d := 0; d < g.NumDonors(); d++ {
		outflow := terms(o.out[d], 1)
		if g.IsBridge(d) {
			if len(outflow) > 0 {
				o.model.AddConstraint(outflow, ilp.LessEqual, 1)
			}
			continue
		}
		inflow := terms(o.in[d], 1)
		if len(outflow) > 0 {
			o.model.AddConstraint(append(outflow, terms(o.in[d], -1)...), ilp.LessEqual, 0)
		}
		if len(inflow) > 0 {
			o.model.AddConstraint(inflow, ilp.LessEqual, 1)
		}
	}

	// A recipient with several donors still receives once.
	for r := 0; r < g.NumRecipients(); r++ {
		related := g.RelatedDonors(r)
		if len(related) < 2 {
			continue
		}
		var inflow []ilp.Term
		for _, d := range related {
			inflow = append(inflow, terms(o.in[d], 1)...)
		}
		if len(inflow) > 1 {
			o.model.AddConstraint(inflow, ilp.LessEqual, 1)
		}
	}

	o.addDebtConstraints()
	return o
}

func terms(vars []int, coef float64) []ilp.Term {
	out := make([]ilp.Term, len(vars))
	for i, v := range vars {
		out[i] = ilp.Term{Var: v, Coef: coef}
	}
	return out
}

// addDebtConstraints bounds, for every country, kidneys given to other
// countries minus kidneys received from them.
func (o *optimizer) addDebtConstraints() {
	countries := make(map[model.Country]bool)
	for d := 0; d < o.g.NumDonors(); d++ {
		countries[o.g.DonorCountry(d)] = true
	}
	for r := 0; r < o.g.NumRecipients(); r++ {
		countries[o.g.RecipientCountry(r)] = true
	}
	sorted := make([]model.Country, 0, len(countries))
	for c := range countries {
		sorted = append(sorted, c)
	}
	slices.Sort(sorted)

	for _, c := range sorted {
		o.addBalance(c, o.limits.MaxDebtForCountry, func(int) bool { return true })
		o.addBalance(c, o.limits.MaxDebtForCountryBloodGroupZero, func(d int) bool {
			return o.g.DonorBloodGroup(d) == model.BloodGroupZero
		})
	}
}

func (o *optimizer) addBalance(c model.Country, limit int, counts func(donor int) bool) {
	var balance []ilp.Term
	for v, e := range o.edges {
		if !counts(e.From) {
			continue
		}
		r, _ := o.g.OwnRecipient(e.To)
		from, to := o.g.DonorCountry(e.From), o.g.RecipientCountry(r)
		switch {
		case from == to:
		case from == c:
			balance = append(balance, ilp.Term{Var: v, Coef: 1})
		case to == c:
			balance = append(balance, ilp.Term{Var: v, Coef: -1})
		}
	}
	if len(balance) == 0 {
		return
	}
	o.model.AddConstraint(balance, ilp.LessEqual, float64(limit))
	o.model.AddConstraint(balance, ilp.GreaterEqual, float64(-limit))
}

// solve runs the lazy loop until the selected rounds respect the limits.
func (o *optimizer) solve() ([]int, error) {
	for {
		sol, err := o.model.Solve()
		if err != nil {
			if errors.Is(err, ilp.ErrInfeasible) {
				return nil, err
			}
			return nil, fmt.Errorf("ilp solve: %w", err)
		}
		selected := sol.Selected()

		added := 0
		for _, round := range o.rounds(selected) {
			cut, ok := o.violation(round)
			if !ok {
				continue
			}
			o.cuts++
			if o.cuts > o.limits.MaxDynamicConstraintsInILPSolver {
				return nil, &UnboundedRoundsError{Limit: o.limits.MaxDynamicConstraintsInILPSolver}
			}
			o.model.AddConstraint(terms(cut, 1), ilp.LessEqual, float64(len(cut)-1))
			added++
		}
		log.Debugf("ilp: %d edges selected after %d nodes, %d rounds cut", len(selected), sol.Nodes, added)
		if added == 0 {
			return selected, nil
		}
	}
}

// round is one weakly connected component of the selected edges, as a
// path and the variables along it in order.
type round struct {
	path graph.Path
	vars []int
}

// rounds splits the selected edges into cycles and sequences. A component
// with as many edges as nodes is a cycle, any other is a sequence.
func (o *optimizer) rounds(selected []int) []round {
	ug := simple.NewUndirectedGraph()
	next := make(map[int]int)
	varOf := make(map[int]int)
	hasIn := make(map[int]bool)
	for _, v := range selected {
		e := o.edges[v]
		ug.SetEdge(simple.Edge{F: simple.Node(e.From), T: simple.Node(e.To)})
		next[e.From] = e.To
		varOf[e.From] = v
		hasIn[e.To] = true
	}

	var out []round
	for _, comp := range topo.ConnectedComponents(ug) {
		ids := make([]int, len(comp))
		for i, n := range comp {
			ids[i] = int(n.ID())
		}
		slices.Sort(ids)

		edges := 0
		for _, d := range ids {
			if _, ok := next[d]; ok {
				edges++
			}
		}

		start := ids[0]
		if edges != len(ids) {
			for _, d := range ids {
				if !hasIn[d] {
					start = d
					break
				}
			}
		}

		r := round{path: graph.Path{start}}
		for d := start; ; {
			n, ok := next[d]
			if !ok {
				break
			}
			r.vars = append(r.vars, varOf[d])
			r.path = append(r.path, n)
			if n == start {
				break
			}
			d = n
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b round) int { return a.path[0] - b.path[0] })
	return out
}

// violation returns the variables to cut when the round breaks a limit.
// A cycle is cut whole. A sequence is cut at its shortest prefix that
// breaks a limit, which forbids every sequence starting the same way.
func (o *optimizer) violation(r round) ([]int, bool) {
	if r.path.IsCycle() {
		if r.path.Len() > o.limits.MaxCycleLength || o.g.Describe(r.path).Countries > o.limits.MaxCountriesInRound {
			return r.vars, true
		}
		return nil, false
	}
	for k := 1; k <= r.path.Len(); k++ {
		if k > o.limits.MaxSequenceLength || o.g.Describe(r.path[:k+1]).Countries > o.limits.MaxCountriesInRound {
			return r.vars[:k], true
		}
	}
	return nil, false
}

// exclude forbids the current edge selection and its subsets. It reports
// false when every edge is already in use.
func (o *optimizer) exclude(selected []int) bool {
	used := make(map[int]bool, len(selected))
	for _, v := range selected {
		used[v] = true
	}
	var unused []ilp.Term
	for v := range o.edges {
		if !used[v] {
			unused = append(unused, ilp.Term{Var: v, Coef: 1})
		}
	}
	if len(unused) == 0 {
		return false
	}
	o.model.AddConstraint(unused, ilp.GreaterEqual, 1)
	return true
}

func (o *optimizer) matching(selected []int) model.Matching {
	var m model.Matching
	for _, v := range selected {
		e := o.edges[v]
		r, _ := o.g.OwnRecipient(e.To)
		s, _ := o.g.Score(e.From, r)
		m.Pairs = append(m.Pairs, model.Pair{Donor: e.From, Recipient: r})
		m.Score += s
	}
	return m
}
