package model

import (
	"fmt"
	"sort"
)

// Pair is a single transplant: donor index gives to recipient index.
type Pair struct {
	Donor     int
	Recipient int
}

// Matching is a set of transplants in which no donor and no recipient
// appears twice.
type Matching struct {
	Pairs []Pair
	Score float64
}

// Len returns the number of transplants.
func (m Matching) Len() int {
	return len(m.Pairs)
}

// Overlaps reports whether any donor or recipient index is used by more
// than one pair.
func (m Matching) Overlaps() bool {
	donors := make(map[int]bool, len(m.Pairs))
	recipients := make(map[int]bool, len(m.Pairs))
	for _, p := range m.Pairs {
		if donors[p.Donor] || recipients[p.Recipient] {
			return true
		}
		donors[p.Donor] = true
		recipients[p.Recipient] = true
	}
	return false
}

// Key returns a canonical string for the pair set, independent of order.
func (m Matching) Key() string {
	pairs := make([]Pair, len(m.Pairs))
	copy(pairs, m.Pairs)
	sortPairs(pairs)
	return fmt.Sprint(pairs)
}

// RoundKind distinguishes closed cycles from open sequences.
type RoundKind int

const (
	RoundCycle RoundKind = iota
	RoundSequence
)

func (k RoundKind) String() string {
	switch k {
	case RoundCycle:
		return "cycle"
	case RoundSequence:
		return "sequence"
	default:
		return fmt.Sprintf("RoundKind(%d)", int(k))
	}
}

// Round is a cycle or a sequence of transplants in order.
type Round struct {
	Kind  RoundKind
	Pairs []Pair
}

// Len returns the number of transplants in the round.
func (r Round) Len() int {
	return len(r.Pairs)
}

// Rounds decomposes the matching into cycles and sequences by following
// each recipient to the donor related to it. ownRecipient maps a donor to
// its paired recipient; donors without an entry start sequences.
//
// Rounds are ordered by their first donor index. A recipient with more
// than one donating related donor, or a cycle that fails to close, panics:
// both mean the matching was not built from the same donor mapping.
func (m Matching) Rounds(ownRecipient map[int]int) []Round {
	byDonor := make(map[int]Pair, len(m.Pairs))
	receives := make(map[int]bool, len(m.Pairs))
	for _, p := range m.Pairs {
		byDonor[p.Donor] = p
		receives[p.Recipient] = true
	}

	// donatingRelated maps a recipient to the related donor that gives in
	// this matching.
	donatingRelated := make(map[int]int)
	for d, r := range ownRecipient {
		if _, ok := byDonor[d]; !ok {
			continue
		}
		if prev, ok := donatingRelated[r]; ok {
			panic(fmt.Sprintf("model: recipient %d has two donating related donors %d and %d", r, prev, d))
		}
		donatingRelated[r] = d
	}

	next := func(p Pair) (Pair, bool) {
		d, ok := donatingRelated[p.Recipient]
		if !ok {
			return Pair{}, false
		}
		return byDonor[d], true
	}

	donors := make([]int, 0, len(byDonor))
	for d := range byDonor {
		donors = append(donors, d)
	}
	sort.Ints(donors)

	visited := make(map[int]bool, len(donors))
	var rounds []Round

	// Sequences start at donors whose own recipient receives nothing here.
	for _, d := range donors {
		if r, ok := ownRecipient[d]; ok && receives[r] {
			continue
		}
		round := Round{Kind: RoundSequence}
		p, ok := byDonor[d], true
		for ok && !visited[p.Donor] {
			visited[p.Donor] = true
			round.Pairs = append(round.Pairs, p)
			p, ok = next(p)
		}
		rounds = append(rounds, round)
	}

	for _, d := range donors {
		if visited[d] {
			continue
		}
		round := Round{Kind: RoundCycle}
		p := byDonor[d]
		for !visited[p.Donor] {
			visited[p.Donor] = true
			round.Pairs = append(round.Pairs, p)
			var ok bool
			if p, ok = next(p); !ok {
				panic(fmt.Sprintf("model: cycle starting at donor %d does not close", d))
			}
		}
		if p.Donor != d {
			panic(fmt.Sprintf("model: cycle starting at donor %d closes at donor %d", d, p.Donor))
		}
		rounds = append(rounds, round)
	}

	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].Pairs[0].Donor < rounds[j].Pairs[0].Donor
	})
	return rounds
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Donor != pairs[j].Donor {
			return pairs[i].Donor < pairs[j].Donor
		}
		return pairs[i].Recipient < pairs[j].Recipient
	})
}
