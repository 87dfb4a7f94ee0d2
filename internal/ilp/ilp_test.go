package ilp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_Knapsack(t *testing.T) {
	m := New()
	x0 := m.AddVar(5)
	x1 := m.AddVar(4)
	x2 := m.AddVar(3)
	m.AddConstraint([]Term{{x0, 2}, {x1, 3}, {x2, 1}}, LessEqual, 4)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 8, sol.Objective, 1e-9)
	assert.Equal(t, []bool{true, false, true}, sol.Values)
	assert.Equal(t, []int{0, 2}, sol.Selected())
}

func TestSolve_FractionalRelaxation(t *testing.T) {
	// The LP optimum is 1.5 with every variable at one half.
	m := New()
	for i := 0; i < 3; i++ {
		m.AddVar(1)
	}
	m.AddConstraint([]Term{{0, 1}, {1, 1}}, LessEqual, 1)
	m.AddConstraint([]Term{{1, 1}, {2, 1}}, LessEqual, 1)
	m.AddConstraint([]Term{{0, 1}, {2, 1}}, LessEqual, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 1, sol.Objective, 1e-9)
	assert.Len(t, sol.Selected(), 1)
	assert.Greater(t, sol.Nodes, 1)
}

func TestSolve_GreaterEqual(t *testing.T) {
	m := New()
	m.AddVar(-1)
	m.AddVar(-2)
	m.AddConstraint([]Term{{0, 1}, {1, 1}}, GreaterEqual, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.InDelta(t, -1, sol.Objective, 1e-9)
	assert.Equal(t, []int{0}, sol.Selected())
}

func TestSolve_Equality(t *testing.T) {
	m := New()
	m.AddVar(2)
	m.AddVar(3)
	terms := []Term{{0, 1}, {1, 1}}
	m.AddConstraint(terms, LessEqual, 1)
	m.AddConstraint(terms, GreaterEqual, 1)

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sol.Selected())
}

func TestSolve_Infeasible(t *testing.T) {
	m := New()
	m.AddVar(1)
	m.AddVar(1)
	m.AddConstraint([]Term{{0, 1}, {1, 1}}, GreaterEqual, 3)

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolve_Empty(t *testing.T) {
	sol, err := New().Solve()
	require.NoError(t, err)
	assert.Zero(t, sol.Objective)
	assert.Empty(t, sol.Selected())
}

func TestSolve_NodeLimit(t *testing.T) {
	m := New()
	for i := 0; i < 3; i++ {
		m.AddVar(1)
	}
	m.AddConstraint([]Term{{0, 1}, {1, 1}}, LessEqual, 1)
	m.AddConstraint([]Term{{1, 1}, {2, 1}}, LessEqual, 1)
	m.AddConstraint([]Term{{0, 1}, {2, 1}}, LessEqual, 1)
	m.MaxNodes = 1

	_, err := m.Solve()
	assert.ErrorIs(t, err, ErrNodeLimit)
}

func TestAddConstraint_MergesTerms(t *testing.T) {
	m := New()
	m.AddVar(1)
	m.AddConstraint([]Term{{0, 1}, {0, 1}}, LessEqual, 1)
	assert.Equal(t, 1, m.NumConstraints())

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.Empty(t, sol.Selected())
}

func TestAddConstraint_UnknownVariable(t *testing.T) {
	m := New()
	m.AddVar(1)
	assert.Panics(t, func() {
		m.AddConstraint([]Term{{3, 1}}, LessEqual, 1)
	})
}

func TestModel_String(t *testing.T) {
	m := New()
	m.AddVar(2)
	m.AddVar(-1)
	m.AddConstraint([]Term{{0, 1}, {1, 1}}, GreaterEqual, 1)

	assert.Equal(t, "max +2*x0 -1*x1\n -1*x0 -1*x1 <= -1\n", m.String())
	assert.Equal(t, ">=", GreaterEqual.String())
}

// TestSolve_MatchesBruteForce compares the search against exhaustive
// enumeration on random small programs.
func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 30; trial++ {
		n := 3 + rng.Intn(5)
		m := New()
		obj := make([]float64, n)
		for i := range obj {
			obj[i] = float64(rng.Intn(21) - 5)
			m.AddVar(obj[i])
		}

		type constraint struct {
			coef []float64
			rhs  float64
		}
		var cons []constraint
		for k := 0; k < 1+rng.Intn(4); k++ {
			c := constraint{coef: make([]float64, n), rhs: float64(rng.Intn(6) - 1)}
			var terms []Term
			for i := range c.coef {
				c.coef[i] = float64(rng.Intn(7) - 2)
				terms = append(terms, Term{Var: i, Coef: c.coef[i]})
			}
			cons = append(cons, c)
			m.AddConstraint(terms, LessEqual, c.rhs)
		}

		bestObj, found := 0.0, false
		for mask := 0; mask < 1<<n; mask++ {
			ok := true
			for _, c := range cons {
				sum := 0.0
				for i := 0; i < n; i++ {
					if mask&(1<<i) != 0 {
						sum += c.coef[i]
					}
				}
				if sum > c.rhs {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			v := 0.0
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					v += obj[i]
				}
			}
			if !found || v > bestObj {
				bestObj, found = v, true
			}
		}

		sol, err := m.Solve()
		if !found {
			assert.ErrorIs(t, err, ErrInfeasible, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		assert.InDelta(t, bestObj, sol.Objective, 1e-6, "trial %d", trial)
	}
}
