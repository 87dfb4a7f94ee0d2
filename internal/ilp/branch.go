package ilp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	simplexTol  = 1e-10
	integralTol = 1e-6
	feasibleTol = 1e-9
	pruneTol    = 1e-9
)

const (
	free int8 = -1
	zero int8 = 0
	one  int8 = 1
)

// Solve returns an assignment maximizing the objective.
//
// The search is depth-first. At every node the variables fixed so far are
// substituted into the constraints and the LP relaxation of the rest is
// solved with the simplex method. A node is pruned when its bound cannot
// beat the incumbent.
func (m *Model) Solve() (Solution, error) {
	s := &search{
		m:     m,
		fixed: make([]int8, len(m.objective)),
	}
	for i := range s.fixed {
		s.fixed[i] = free
	}

	if err := s.branch(); err != nil {
		return Solution{Nodes: s.nodes}, err
	}
	if s.best == nil {
		return Solution{Nodes: s.nodes}, ErrInfeasible
	}
	return Solution{
		Objective: s.bestObjective,
		Values:    s.best,
		Nodes:     s.nodes,
	}, nil
}

type search struct {
	m     *Model
	fixed []int8
	nodes int

	best          []bool
	bestObjective float64
}

func (s *search) branch() error {
	s.nodes++
	if s.m.MaxNodes > 0 && s.nodes > s.m.MaxNodes {
		return ErrNodeLimit
	}

	bound, x, err := s.relax()
	if errors.Is(err, lp.ErrInfeasible) {
		return nil
	}
	if err != nil {
		// Numerical trouble in the relaxation. Keep searching without a bound.
		bound, x = math.Inf(1), nil
	}
	if s.best != nil && bound <= s.bestObjective+pruneTol {
		return nil
	}

	j := s.pickBranch(x)
	if j < 0 {
		values := s.round(x)
		if !s.feasible(values) {
			j = s.firstFree()
			if j < 0 {
				return nil
			}
		} else {
			s.offer(values)
			return nil
		}
	}

	for _, v := range [2]int8{one, zero} {
		s.fixed[j] = v
		err := s.branch()
		s.fixed[j] = free
		if err != nil {
			return err
		}
	}
	return nil
}

// pickBranch returns the free variable whose relaxed value is furthest from
// an integer, or -1 when all are integral. With no relaxation it returns the
// first free variable.
func (s *search) pickBranch(x []float64) int {
	if x == nil {
		return s.firstFree()
	}
	best, worst := -1, integralTol
	for i, v := range x {
		if s.fixed[i] != free {
			continue
		}
		if f := math.Abs(v - math.Round(v)); f > worst {
			best, worst = i, f
		}
	}
	return best
}

func (s *search) firstFree() int {
	for i, f := range s.fixed {
		if f == free {
			return i
		}
	}
	return -1
}

func (s *search) round(x []float64) []bool {
	values := make([]bool, len(s.fixed))
	for i, f := range s.fixed {
		switch f {
		case one:
			values[i] = true
		case free:
			values[i] = x != nil && x[i] > 0.5
		}
	}
	return values
}

func (s *search) feasible(values []bool) bool {
	for _, r := range s.m.rows {
		sum := 0.0
		for _, t := range r.terms {
			if values[t.Var] {
				sum += t.Coef
			}
		}
		if sum > r.rhs+feasibleTol {
			return false
		}
	}
	return true
}

func (s *search) offer(values []bool) {
	obj := 0.0
	for i, v := range values {
		if v {
			obj += s.m.objective[i]
		}
	}
	if s.best == nil || obj > s.bestObjective+pruneTol {
		s.best = values
		s.bestObjective = obj
	}
}

// relax solves the LP relaxation under the current fixings. It returns the
// objective bound and a value for every variable; fixed variables carry
// their fixed value.
func (s *search) relax() (float64, []float64, error) {
	n := len(s.fixed)
	x := make([]float64, n)
	bound := 0.0

	col := make(map[int]int)
	var cols []int
	for i, f := range s.fixed {
		switch f {
		case one:
			x[i] = 1
			bound += s.m.objective[i]
		case free:
			col[i] = len(cols)
			cols = append(cols, i)
		}
	}

	type reduced struct {
		terms []Term
		rhs   float64
	}
	var rows []reduced
	for _, r := range s.m.rows {
		red := reduced{rhs: r.rhs}
		for _, t := range r.terms {
			switch s.fixed[t.Var] {
			case one:
				red.rhs -= t.Coef
			case free:
				red.terms = append(red.terms, Term{Var: col[t.Var], Coef: t.Coef})
			}
		}
		if len(red.terms) == 0 {
			if red.rhs < -feasibleTol {
				return 0, nil, lp.ErrInfeasible
			}
			continue
		}
		rows = append(rows, red)
	}

	if len(cols) == 0 {
		return bound, x, nil
	}

	// x_j <= 1 for every free variable.
	for k := range cols {
		rows = append(rows, reduced{terms: []Term{{Var: k, Coef: 1}}, rhs: 1})
	}

	// Standard form [G | I] [x; slack] = rhs.
	nr, nc := len(rows), len(cols)
	a := mat.NewDense(nr, nc+nr, nil)
	b := make([]float64, nr)
	basic := make([]int, nr)
	feasibleStart := true
	for i, r := range rows {
		for _, t := range r.terms {
			a.Set(i, t.Var, a.At(i, t.Var)+t.Coef)
		}
		a.Set(i, nc+i, 1)
		b[i] = r.rhs
		basic[i] = nc + i
		if r.rhs < 0 {
			feasibleStart = false
		}
	}
	if !feasibleStart {
		basic = nil
	}

	c := make([]float64, nc+nr)
	for k, v := range cols {
		c[k] = -s.m.objective[v]
	}

	opt, sol, err := lp.Simplex(c, a, b, simplexTol, basic)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range cols {
		x[v] = math.Min(1, math.Max(0, sol[k]))
	}
	return bound - opt, x, nil
}
