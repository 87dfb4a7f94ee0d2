package model

import (
	"fmt"

	"go.uber.org/multierr"
)

// Default limit values.
const (
	DefaultMaxCycleLength                   = 4
	DefaultMaxSequenceLength                = 4
	DefaultMaxCountriesInRound              = 3
	DefaultMaxCyclesInAllSolutionsSolver    = 5000
	DefaultMaxMatchingsInAllSolutionsSolver = 5000000
	DefaultMaxMatchingsInILPSolver          = 3
	DefaultMaxDebtForCountry                = 3
	DefaultMaxDebtForCountryBloodGroupZero  = 3
	DefaultMaxDynamicConstraintsInILPSolver = 100
	DefaultMaxBranchAndBoundNodes           = 100000
	DefaultMaxMatchingsToShow               = 1000
)

// Limits bounds the shape of matchings and the work a solver may do.
// Lengths count transplants, not donors.
type Limits struct {
	MaxCycleLength                   int `yaml:"max_cycle_length"`
	MaxSequenceLength                int `yaml:"max_sequence_length"`
	MaxCountriesInRound              int `yaml:"max_number_of_distinct_countries_in_round"`
	MaxCyclesInAllSolutionsSolver    int `yaml:"max_cycles_in_all_solutions_solver"`
	MaxMatchingsInAllSolutionsSolver int `yaml:"max_matchings_in_all_solutions_solver"`
	MaxMatchingsInILPSolver          int `yaml:"max_matchings_in_ilp_solver"`
	MaxDebtForCountry                int `yaml:"max_debt_for_country"`
	MaxDebtForCountryBloodGroupZero  int `yaml:"max_debt_for_country_for_blood_group_zero"`
	MaxDynamicConstraintsInILPSolver int `yaml:"max_dynamic_constraints_in_ilp_solver"`
	MaxBranchAndBoundNodes           int `yaml:"max_branch_and_bound_nodes"`
	MaxMatchingsToShow               int `yaml:"max_matchings_to_show"`
}

// DefaultLimits returns Limits with default values.
func DefaultLimits() Limits {
	return Limits{
		MaxCycleLength:                   DefaultMaxCycleLength,
		MaxSequenceLength:                DefaultMaxSequenceLength,
		MaxCountriesInRound:              DefaultMaxCountriesInRound,
		MaxCyclesInAllSolutionsSolver:    DefaultMaxCyclesInAllSolutionsSolver,
		MaxMatchingsInAllSolutionsSolver: DefaultMaxMatchingsInAllSolutionsSolver,
		MaxMatchingsInILPSolver:          DefaultMaxMatchingsInILPSolver,
		MaxDebtForCountry:                DefaultMaxDebtForCountry,
		MaxDebtForCountryBloodGroupZero:  DefaultMaxDebtForCountryBloodGroupZero,
		MaxDynamicConstraintsInILPSolver: DefaultMaxDynamicConstraintsInILPSolver,
		MaxBranchAndBoundNodes:           DefaultMaxBranchAndBoundNodes,
		MaxMatchingsToShow:               DefaultMaxMatchingsToShow,
	}
}

// Validate reports every limit that is out of range.
func (l Limits) Validate() error {
	var err error
	positive := []struct {
		name  string
		value int
	}{
		{"max_cycle_length", l.MaxCycleLength},
		{"max_sequence_length", l.MaxSequenceLength},
		{"max_number_of_distinct_countries_in_round", l.MaxCountriesInRound},
		{"max_cycles_in_all_solutions_solver", l.MaxCyclesInAllSolutionsSolver},
		{"max_matchings_in_ilp_solver", l.MaxMatchingsInILPSolver},
		{"max_dynamic_constraints_in_ilp_solver", l.MaxDynamicConstraintsInILPSolver},
		{"max_branch_and_bound_nodes", l.MaxBranchAndBoundNodes},
	}
	for _, p := range positive {
		if p.value < 1 {
			err = multierr.Append(err, fmt.Errorf("%s must be at least 1, got %d", p.name, p.value))
		}
	}

	nonNegative := []struct {
		name  string
		value int
	}{
		{"max_matchings_in_all_solutions_solver", l.MaxMatchingsInAllSolutionsSolver},
		{"max_debt_for_country", l.MaxDebtForCountry},
		{"max_debt_for_country_for_blood_group_zero", l.MaxDebtForCountryBloodGroupZero},
		{"max_matchings_to_show", l.MaxMatchingsToShow},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			err = multierr.Append(err, fmt.Errorf("%s must not be negative, got %d", p.name, p.value))
		}
	}
	return err
}
