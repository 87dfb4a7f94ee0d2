package ops

import (
	"fmt"
	"math"
	"strings"

	"github.com/jacksmith/kex/internal/model"
)

// ValidationErrorType represents the type of validation error.
type ValidationErrorType string

const (
	ValidationErrorShape           ValidationErrorType = "shape"
	ValidationErrorScore           ValidationErrorType = "score"
	ValidationErrorDuplicateID     ValidationErrorType = "duplicate_id"
	ValidationErrorMissingRequired ValidationErrorType = "missing_required"
	ValidationErrorUnknownRef      ValidationErrorType = "unknown_reference"
	ValidationErrorOwnPair         ValidationErrorType = "own_pair"
	ValidationErrorDonorType       ValidationErrorType = "donor_type"
	ValidationErrorBloodGroup      ValidationErrorType = "blood_group"
	ValidationErrorCountry         ValidationErrorType = "country"
)

// ValidationError represents a data integrity issue in a problem.
type ValidationError struct {
	Type    ValidationErrorType
	ItemID  string
	Message string
	Details []string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s - %s", e.ItemID, e.Type, e.Message)
}

// InvalidProblemError is returned when a problem fails validation before a solve.
type InvalidProblemError struct {
	Name   string
	Issues []ValidationError
}

func (e *InvalidProblemError) Error() string {
	return fmt.Sprintf("problem %q has %d validation issue(s) (run kex validate %s)", e.Name, len(e.Issues), e.Name)
}

var validBloodGroups = map[model.BloodGroup]bool{
	"":                   true,
	model.BloodGroupZero: true,
	"A":                  true,
	"B":                  true,
	"AB":                 true,
}

// Validate checks all problems for data integrity issues.
// Each issue's ItemID is prefixed with the problem name.
func Validate(s Store) ([]ValidationError, error) {
	names, err := s.ListProblems()
	if err != nil {
		return nil, err
	}

	var all []ValidationError
	for _, name := range names {
		p, err := s.LoadProblem(name)
		if err != nil {
			return nil, err
		}
		for _, issue := range ValidateProblem(p) {
			issue.ItemID = name + "/" + issue.ItemID
			all = append(all, issue)
		}
	}
	return all, nil
}

// ValidateProblem checks one problem. A problem with no issues can be
// handed to the solver without violating its input contract.
func ValidateProblem(p *model.Problem) []ValidationError {
	var errors []ValidationError
	add := func(typ ValidationErrorType, id, format string, args ...any) {
		errors = append(errors, ValidationError{Type: typ, ItemID: id, Message: fmt.Sprintf(format, args...)})
	}

	// IDs
	recipientIndex := make(map[string]int, len(p.Recipients))
	for i, r := range p.Recipients {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("recipient[%d]", i)
			add(ValidationErrorMissingRequired, id, "recipient missing required field: id")
		} else if _, ok := recipientIndex[id]; ok {
			add(ValidationErrorDuplicateID, id, "duplicate recipient ID")
		} else {
			recipientIndex[id] = i
		}
		if !validBloodGroups[r.BloodGroup] {
			add(ValidationErrorBloodGroup, id, "unknown blood group %q", r.BloodGroup)
		}
	}

	donorIDs := make(map[string]bool, len(p.Donors))
	for i, d := range p.Donors {
		id := donorID(p, i)
		if d.ID == "" {
			add(ValidationErrorMissingRequired, id, "donor missing required field: id")
		} else if donorIDs[d.ID] {
			add(ValidationErrorDuplicateID, id, "duplicate donor ID")
		}
		donorIDs[d.ID] = true

		if !validBloodGroups[d.BloodGroup] {
			add(ValidationErrorBloodGroup, id, "unknown blood group %q", d.BloodGroup)
		}

		switch d.Type {
		case "", model.DonorTypeDonor:
			if d.RelatedRecipient == "" {
				add(ValidationErrorMissingRequired, id, "paired donor missing required field: related_recipient")
			} else if _, ok := recipientIndex[d.RelatedRecipient]; !ok {
				add(ValidationErrorUnknownRef, id, "references non-existent recipient: %s", d.RelatedRecipient)
			}
		case model.DonorTypeNonDirected, model.DonorTypeBridge:
			if d.RelatedRecipient != "" {
				add(ValidationErrorDonorType, id, "%s donor must not have a related recipient", d.Type)
			}
		default:
			add(ValidationErrorDonorType, id, "unknown donor type %q", d.Type)
		}
	}

	errors = append(errors, validateCountries(p)...)

	// Matrix
	if len(p.Scores) != len(p.Donors) {
		add(ValidationErrorShape, "scores", "has %d rows, want one per donor (%d)", len(p.Scores), len(p.Donors))
		return errors
	}
	for i, row := range p.Scores {
		id := donorID(p, i)
		if len(row) != len(p.Recipients) {
			add(ValidationErrorShape, id, "score row has %d columns, want one per recipient (%d)", len(row), len(p.Recipients))
			continue
		}

		var own []int
		for r, s := range row {
			switch {
			case s == model.OwnPairScore:
				own = append(own, r)
			case math.IsNaN(s) || math.IsInf(s, 0):
				add(ValidationErrorScore, id, "score for recipient %d is not a number", r)
			case s < 0 && s != model.InfeasibleScore:
				add(ValidationErrorScore, id, "negative score %g for recipient %d (only %g and %g are allowed)",
					s, r, model.InfeasibleScore, model.OwnPairScore)
			}
		}
		errors = append(errors, checkOwnPair(p, i, id, own, recipientIndex)...)
	}

	return errors
}

// checkOwnPair verifies that the own-pair marks in a score row agree with
// the donor's related recipient.
func checkOwnPair(p *model.Problem, d int, id string, own []int, recipientIndex map[string]int) []ValidationError {
	donor := p.Donors[d]
	related, hasRelated := recipientIndex[donor.RelatedRecipient]
	paired := donor.Type != model.DonorTypeNonDirected && donor.Type != model.DonorTypeBridge

	switch {
	case len(own) > 1:
		details := make([]string, len(own))
		for i, r := range own {
			details[i] = p.Recipients[r].ID
		}
		return []ValidationError{{
			Type:    ValidationErrorOwnPair,
			ItemID:  id,
			Message: fmt.Sprintf("marks %d recipients as its own: %s", len(own), strings.Join(details, ", ")),
			Details: details,
		}}
	case len(own) == 1 && !paired:
		return []ValidationError{{
			Type:    ValidationErrorOwnPair,
			ItemID:  id,
			Message: fmt.Sprintf("%s donor marks recipient %s as its own", donor.Type, p.Recipients[own[0]].ID),
		}}
	case len(own) == 0 && paired && hasRelated:
		return []ValidationError{{
			Type:    ValidationErrorOwnPair,
			ItemID:  id,
			Message: fmt.Sprintf("score for related recipient %s must be %g", donor.RelatedRecipient, model.OwnPairScore),
		}}
	case len(own) == 1 && hasRelated && own[0] != related:
		return []ValidationError{{
			Type:    ValidationErrorOwnPair,
			ItemID:  id,
			Message: fmt.Sprintf("marks %s as its own but is related to %s", p.Recipients[own[0]].ID, donor.RelatedRecipient),
		}}
	}
	return nil
}

// validateCountries requires either every participant to carry a country
// or none of them; a partial labelling would put the unlabelled ones in a
// country of their own for debt and round limits.
func validateCountries(p *model.Problem) []ValidationError {
	var labelled, missing []string
	for i, d := range p.Donors {
		if d.Country == "" {
			missing = append(missing, donorID(p, i))
		} else {
			labelled = append(labelled, d.ID)
		}
	}
	for i, r := range p.Recipients {
		if r.Country == "" {
			id := r.ID
			if id == "" {
				id = fmt.Sprintf("recipient[%d]", i)
			}
			missing = append(missing, id)
		} else {
			labelled = append(labelled, r.ID)
		}
	}
	if len(labelled) == 0 || len(missing) == 0 {
		return nil
	}

	errors := make([]ValidationError, len(missing))
	for i, id := range missing {
		errors[i] = ValidationError{
			Type:    ValidationErrorCountry,
			ItemID:  id,
			Message: "missing country while other participants have one",
		}
	}
	return errors
}

func donorID(p *model.Problem, i int) string {
	if i < len(p.Donors) && p.Donors[i].ID != "" {
		return p.Donors[i].ID
	}
	return fmt.Sprintf("donor[%d]", i)
}
