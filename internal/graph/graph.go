// Package graph provides the compatibility graph view and candidate round
// enumeration for kex.
package graph

import (
	"fmt"
	"sort"

	"github.com/jacksmith/kex/internal/model"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a read-only view over one score matrix.
// Donors are rows and recipients are columns. Edges in the donor
// direction go from a donor to every paired donor whose recipient it can
// give to (d -> d' iff d is compatible with the own recipient of d').
type Graph struct {
	scores [][]float64
	// ownRecipient maps a paired donor to its recipient
	ownRecipient map[int]int
	// relatedDonors maps a recipient to its paired donors (sorted)
	relatedDonors map[int][]int
	// compatible maps a donor to the recipients it can give to (sorted)
	compatible [][]int
	// donorAdj maps a donor to the paired donors it can feed (sorted)
	donorAdj [][]int

	donorCountries     []model.Country
	recipientCountries []model.Country
	donorBloodGroups   []model.BloodGroup
}

// Attributes carries the per-participant labels the solver needs.
// Missing slices are treated as all-empty labels.
type Attributes struct {
	DonorCountries     []model.Country
	RecipientCountries []model.Country
	DonorBloodGroups   []model.BloodGroup
}

// Build constructs a Graph from a dense score matrix.
// A score >= 0 is a feasible transplant and model.OwnPairScore marks the
// donor's own recipient. Ragged matrices and donors with more than one own
// recipient violate the input contract and panic.
func Build(scores [][]float64, attrs Attributes) *Graph {
	nDonors := len(scores)
	nRecipients := 0
	if nDonors > 0 {
		nRecipients = len(scores[0])
	}

	g := &Graph{
		scores:             make([][]float64, nDonors),
		ownRecipient:       make(map[int]int),
		relatedDonors:      make(map[int][]int),
		compatible:         make([][]int, nDonors),
		donorAdj:           make([][]int, nDonors),
		donorCountries:     padCountries(attrs.DonorCountries, nDonors),
		recipientCountries: padCountries(attrs.RecipientCountries, nRecipients),
		donorBloodGroups:   padBloodGroups(attrs.DonorBloodGroups, nDonors),
	}

	for d, row := range scores {
		if len(row) != nRecipients {
			panic(fmt.Sprintf("graph: score row %d has %d columns, want %d", d, len(row), nRecipients))
		}
		g.scores[d] = append([]float64(nil), row...)
		for r, s := range row {
			switch {
			case s == model.OwnPairScore:
				if prev, ok := g.ownRecipient[d]; ok {
					panic(fmt.Sprintf("graph: donor %d has two own recipients %d and %d", d, prev, r))
				}
				g.ownRecipient[d] = r
				g.relatedDonors[r] = append(g.relatedDonors[r], d)
			case model.IsFeasibleScore(s):
				g.compatible[d] = append(g.compatible[d], r)
			}
		}
	}

	for d := range scores {
		for _, r := range g.compatible[d] {
			for _, next := range g.relatedDonors[r] {
				if next != d {
					g.donorAdj[d] = append(g.donorAdj[d], next)
				}
			}
		}
		sort.Ints(g.donorAdj[d])
	}

	return g
}

// FromProblem builds the Graph of a problem file.
func FromProblem(p *model.Problem) *Graph {
	return Build(p.Scores, Attributes{
		DonorCountries:     p.DonorCountries(),
		RecipientCountries: p.RecipientCountries(),
		DonorBloodGroups:   p.DonorBloodGroups(),
	})
}

func padCountries(in []model.Country, n int) []model.Country {
	out := make([]model.Country, n)
	copy(out, in)
	return out
}

func padBloodGroups(in []model.BloodGroup, n int) []model.BloodGroup {
	out := make([]model.BloodGroup, n)
	copy(out, in)
	return out
}

// NumDonors returns the number of donors (matrix rows).
func (g *Graph) NumDonors() int {
	return len(g.scores)
}

// NumRecipients returns the number of recipients (matrix columns).
func (g *Graph) NumRecipients() int {
	return len(g.recipientCountries)
}

// OwnRecipient returns the recipient paired with donor d.
// ok is false for non-directed and bridge donors.
func (g *Graph) OwnRecipient(d int) (r int, ok bool) {
	r, ok = g.ownRecipient[d]
	return r, ok
}

// OwnRecipients returns a copy of the donor to own recipient mapping.
func (g *Graph) OwnRecipients() map[int]int {
	out := make(map[int]int, len(g.ownRecipient))
	for d, r := range g.ownRecipient {
		out[d] = r
	}
	return out
}

// RelatedDonors returns the donors paired with recipient r.
// Returns empty slice if r has no paired donor.
func (g *Graph) RelatedDonors(r int) []int {
	return copyInts(g.relatedDonors[r])
}

// Score returns the score of donor d giving to recipient r.
// ok is false when the transplant is not feasible.
func (g *Graph) Score(d, r int) (float64, bool) {
	if d < 0 || d >= len(g.scores) || r < 0 || r >= len(g.scores[d]) {
		return 0, false
	}
	s := g.scores[d][r]
	return s, model.IsFeasibleScore(s)
}

// MaxScore returns the largest feasible score, or 0 if there is none.
func (g *Graph) MaxScore() float64 {
	best := 0.0
	for d, rs := range g.compatible {
		for _, r := range rs {
			if s := g.scores[d][r]; s > best {
				best = s
			}
		}
	}
	return best
}

// CompatibleRecipients returns the recipients donor d can give to.
func (g *Graph) CompatibleRecipients(d int) []int {
	return copyInts(g.compatible[d])
}

// CompatibleDonors returns the paired donors whose recipient donor d can
// give to, sorted.
func (g *Graph) CompatibleDonors(d int) []int {
	return copyInts(g.donorAdj[d])
}

// IsBridge reports whether donor d has no own recipient and can only
// start sequences.
func (g *Graph) IsBridge(d int) bool {
	_, ok := g.ownRecipient[d]
	return !ok
}

// BridgeDonors returns the donors without an own recipient, sorted.
func (g *Graph) BridgeDonors() []int {
	var out []int
	for d := range g.scores {
		if g.IsBridge(d) {
			out = append(out, d)
		}
	}
	return out
}

// PairedDonors returns the donors with an own recipient, sorted.
func (g *Graph) PairedDonors() []int {
	var out []int
	for d := range g.scores {
		if !g.IsBridge(d) {
			out = append(out, d)
		}
	}
	return out
}

// DonorCountry returns the country label of donor d.
func (g *Graph) DonorCountry(d int) model.Country {
	return g.donorCountries[d]
}

// RecipientCountry returns the country label of recipient r.
func (g *Graph) RecipientCountry(r int) model.Country {
	return g.recipientCountries[r]
}

// DonorBloodGroup returns the blood group of donor d.
func (g *Graph) DonorBloodGroup(d int) model.BloodGroup {
	return g.donorBloodGroups[d]
}

// Digraph returns the donor adjacency as a gonum directed graph over the
// donors accepted by keep. Node IDs are donor indices.
func (g *Graph) Digraph(keep func(d int) bool) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for d := range g.scores {
		if keep(d) {
			dg.AddNode(simple.Node(d))
		}
	}
	for d := range g.scores {
		if !keep(d) {
			continue
		}
		for _, next := range g.donorAdj[d] {
			if keep(next) {
				dg.SetEdge(simple.Edge{F: simple.Node(d), T: simple.Node(next)})
			}
		}
	}
	return dg
}

func copyInts(in []int) []int {
	if in == nil {
		return []int{}
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}
