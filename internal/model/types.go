// Package model defines the core data structures for kex.
package model

import "time"

// DonorType describes how a donor entered the exchange.
type DonorType string

const (
	// DonorTypeDonor is a living donor paired with an incompatible recipient.
	DonorTypeDonor DonorType = "donor"
	// DonorTypeNonDirected is an altruistic donor without a paired recipient.
	DonorTypeNonDirected DonorType = "non_directed"
	// DonorTypeBridge is a donor left over from a previous round whose
	// recipient already received a kidney.
	DonorTypeBridge DonorType = "bridge"
)

// Country is an opaque label attached to donors and recipients.
type Country string

// BloodGroup is the ABO blood group of a donor or recipient.
type BloodGroup string

// BloodGroupZero is the universal donor blood group, tracked separately
// for country debt.
const BloodGroupZero BloodGroup = "0"

// Sentinels used in score matrices. Any score >= 0 is a feasible transplant.
const (
	InfeasibleScore = -1.0
	OwnPairScore    = -2.0
)

// IsFeasibleScore reports whether a score marks a possible transplant.
func IsFeasibleScore(s float64) bool {
	return s >= 0
}

// Donor is one row of the score matrix.
type Donor struct {
	ID               string     `yaml:"id"`
	Country          Country    `yaml:"country,omitempty"`
	BloodGroup       BloodGroup `yaml:"blood_group,omitempty"`
	Type             DonorType  `yaml:"type,omitempty"`
	RelatedRecipient string     `yaml:"related_recipient,omitempty"`
}

// Recipient is one column of the score matrix.
type Recipient struct {
	ID         string     `yaml:"id"`
	Country    Country    `yaml:"country,omitempty"`
	BloodGroup BloodGroup `yaml:"blood_group,omitempty"`
}

// Problem is a complete matching input: the participants and the score
// matrix produced by the scorer. Scores[d][r] is the score of donor d
// giving to recipient r.
type Problem struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Donors      []Donor     `yaml:"donors"`
	Recipients  []Recipient `yaml:"recipients"`
	Scores      [][]float64 `yaml:"scores"`
}

// DonorCountries returns the country of every donor, by donor index.
func (p *Problem) DonorCountries() []Country {
	out := make([]Country, len(p.Donors))
	for i, d := range p.Donors {
		out[i] = d.Country
	}
	return out
}

// RecipientCountries returns the country of every recipient, by recipient index.
func (p *Problem) RecipientCountries() []Country {
	out := make([]Country, len(p.Recipients))
	for i, r := range p.Recipients {
		out[i] = r.Country
	}
	return out
}

// DonorBloodGroups returns the blood group of every donor, by donor index.
func (p *Problem) DonorBloodGroups() []BloodGroup {
	out := make([]BloodGroup, len(p.Donors))
	for i, d := range p.Donors {
		out[i] = d.BloodGroup
	}
	return out
}

// Result is the persisted outcome of one solve.
type Result struct {
	Problem   string           `yaml:"problem"`
	Solver    string           `yaml:"solver"`
	Solved    time.Time        `yaml:"solved"`
	Matchings []MatchingRecord `yaml:"matchings,omitempty"`
}

// MatchingRecord is a Matching resolved to participant IDs.
type MatchingRecord struct {
	Rank        int           `yaml:"rank"`
	Score       float64       `yaml:"score"`
	Transplants int           `yaml:"transplants"`
	Rounds      []RoundRecord `yaml:"rounds"`
}

// RoundRecord is one cycle or sequence of a MatchingRecord.
type RoundRecord struct {
	Kind        string             `yaml:"kind"`
	Transplants []TransplantRecord `yaml:"transplants"`
}

// TransplantRecord is a single donor to recipient transplant.
type TransplantRecord struct {
	Donor     string  `yaml:"donor"`
	Recipient string  `yaml:"recipient"`
	Score     float64 `yaml:"score"`
}
