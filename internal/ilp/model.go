// Package ilp solves small binary integer programs by branch-and-bound over
// LP relaxations.
package ilp

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInfeasible is returned when no 0/1 assignment satisfies the constraints.
	ErrInfeasible = errors.New("ilp: problem is infeasible")
	// ErrNodeLimit is returned when the search visits more nodes than allowed.
	ErrNodeLimit = errors.New("ilp: branch-and-bound node limit reached")
)

// Sense is the direction of a constraint.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
)

func (s Sense) String() string {
	if s == GreaterEqual {
		return ">="
	}
	return "<="
}

// Term is one coefficient of a linear expression.
type Term struct {
	Var  int
	Coef float64
}

// row is a constraint normalized to sum(terms) <= rhs.
type row struct {
	terms []Term
	rhs   float64
}

// Model is a maximization problem over binary variables.
// The zero value is an empty model ready for use.
type Model struct {
	objective []float64
	rows      []row

	// MaxNodes bounds the number of branch-and-bound nodes. 0 means no bound.
	MaxNodes int
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// AddVar adds a binary variable with the given objective coefficient and
// returns its index.
func (m *Model) AddVar(objective float64) int {
	m.objective = append(m.objective, objective)
	return len(m.objective) - 1
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int {
	return len(m.objective)
}

// NumConstraints returns the number of constraints added so far.
func (m *Model) NumConstraints() int {
	return len(m.rows)
}

// AddConstraint adds sum(terms) <sense> rhs. Terms on the same variable are
// summed. Panics on an unknown variable.
func (m *Model) AddConstraint(terms []Term, sense Sense, rhs float64) {
	merged := make(map[int]float64, len(terms))
	order := make([]int, 0, len(terms))
	for _, t := range terms {
		if t.Var < 0 || t.Var >= len(m.objective) {
			panic(fmt.Sprintf("ilp: constraint uses unknown variable %d", t.Var))
		}
		if _, ok := merged[t.Var]; !ok {
			order = append(order, t.Var)
		}
		merged[t.Var] += t.Coef
	}

	r := row{rhs: rhs}
	for _, v := range order {
		c := merged[v]
		if c == 0 {
			continue
		}
		if sense == GreaterEqual {
			c = -c
		}
		r.terms = append(r.terms, Term{Var: v, Coef: c})
	}
	if sense == GreaterEqual {
		r.rhs = -rhs
	}
	m.rows = append(m.rows, r)
}

// Solution is an optimal 0/1 assignment.
type Solution struct {
	Objective float64
	Values    []bool
	// Nodes is the number of branch-and-bound nodes visited.
	Nodes int
}

// Selected returns the indices of the variables set to 1.
func (s Solution) Selected() []int {
	var out []int
	for i, v := range s.Values {
		if v {
			out = append(out, i)
		}
	}
	return out
}

// String renders the model in a readable form, one constraint per line.
func (m *Model) String() string {
	var b strings.Builder
	b.WriteString("max")
	for i, c := range m.objective {
		fmt.Fprintf(&b, " %+g*x%d", c, i)
	}
	b.WriteString("\n")
	for _, r := range m.rows {
		for _, t := range r.terms {
			fmt.Fprintf(&b, " %+g*x%d", t.Coef, t.Var)
		}
		fmt.Fprintf(&b, " <= %g\n", r.rhs)
	}
	return b.String()
}
