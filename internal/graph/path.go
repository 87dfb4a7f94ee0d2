package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacksmith/kex/internal/model"
)

// Path is an ordered list of donor indices. A cycle repeats its first donor
// at the end; a sequence starts at a bridge donor and ends at the donor
// whose recipient receives last.
type Path []int

// IsCycle reports whether the path closes on itself.
func (p Path) IsCycle() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Len returns the number of transplants along the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Donors returns each donor on the path once, in path order.
func (p Path) Donors() []int {
	if p.IsCycle() {
		return append([]int(nil), p[:len(p)-1]...)
	}
	return append([]int(nil), p...)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, " -> ")
}

// PathWithScore is a candidate round with the metadata the solvers need.
type PathWithScore struct {
	Path      Path
	Score     float64
	Length    int
	Countries int
	// Debt is kidneys donated minus kidneys received, per country.
	Debt map[model.Country]int
	// DebtBloodGroupZero counts only kidneys from blood group 0 donors.
	DebtBloodGroupZero map[model.Country]int
}

// Pairs returns the transplants of the path: every donor except the last
// gives to the own recipient of the next donor.
func (g *Graph) Pairs(p Path) []model.Pair {
	if len(p) < 2 {
		return nil
	}
	pairs := make([]model.Pair, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		r, ok := g.ownRecipient[p[i+1]]
		if !ok {
			panic(fmt.Sprintf("graph: path %v enters donor %d without own recipient", p, p[i+1]))
		}
		pairs = append(pairs, model.Pair{Donor: p[i], Recipient: r})
	}
	return pairs
}

// Describe computes score, length, country count and debt for a path.
func (g *Graph) Describe(p Path) PathWithScore {
	pairs := g.Pairs(p)
	pws := PathWithScore{
		Path:               append(Path(nil), p...),
		Length:             p.Len(),
		Countries:          g.countries(pairs),
		Debt:               make(map[model.Country]int),
		DebtBloodGroupZero: make(map[model.Country]int),
	}
	for _, pair := range pairs {
		s, ok := g.Score(pair.Donor, pair.Recipient)
		if !ok {
			panic(fmt.Sprintf("graph: path %v uses infeasible transplant %d -> %d", p, pair.Donor, pair.Recipient))
		}
		pws.Score += s

		from, to := g.donorCountries[pair.Donor], g.recipientCountries[pair.Recipient]
		addDebt(pws.Debt, from, to)
		if g.donorBloodGroups[pair.Donor] == model.BloodGroupZero {
			addDebt(pws.DebtBloodGroupZero, from, to)
		}
	}
	return pws
}

func addDebt(debt map[model.Country]int, from, to model.Country) {
	if from == to {
		return
	}
	debt[from]++
	debt[to]--
}

// countries counts the distinct countries of the donors and recipients
// taking part in a transplant of the path. The last donor of a sequence
// gives nothing and is not counted.
func (g *Graph) countries(pairs []model.Pair) int {
	seen := make(map[model.Country]bool)
	for _, pair := range pairs {
		seen[g.donorCountries[pair.Donor]] = true
		seen[g.recipientCountries[pair.Recipient]] = true
	}
	return len(seen)
}

// repeatsRecipient reports whether two donors on the path share an own
// recipient, which would make that recipient receive twice.
func (g *Graph) repeatsRecipient(p Path) bool {
	seen := make(map[int]bool, len(p))
	for _, d := range p.Donors() {
		r, ok := g.ownRecipient[d]
		if !ok {
			continue
		}
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

// AddDebt accumulates src into dst.
func AddDebt(dst, src map[model.Country]int) {
	for c, v := range src {
		dst[c] += v
	}
}

// DebtWithin reports whether every country's absolute debt is at most limit.
func DebtWithin(debt map[model.Country]int, limit int) bool {
	for _, v := range debt {
		if v > limit || -v > limit {
			return false
		}
	}
	return true
}
