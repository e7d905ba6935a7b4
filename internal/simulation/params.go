package simulation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSimulationParameter is matched by every *InvalidParameterError.
var ErrInvalidSimulationParameter = errors.New("invalid simulation parameter")

// InvalidParameterError names the rejected parameter and its value.
type InvalidParameterError struct {
	Name  string
	Value any
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid simulation parameter %s: %v", e.Name, e.Value)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidSimulationParameter
}

// Params is the full configuration surface of both simulators.
type Params struct {
	Replicates         int     `json:"replicates" yaml:"replicates"`
	ScoreNoise         float64 `json:"score_noise" yaml:"score_noise"`
	WeightPerturbation float64 `json:"weight_perturbation" yaml:"weight_perturbation"`
	ScoreSeed          int64   `json:"score_seed" yaml:"score_seed"`
	WeightSeed         int64   `json:"weight_seed" yaml:"weight_seed"`
}

// DefaultParams returns the settings used when a request supplies none.
func DefaultParams() Params {
	return Params{
		Replicates:         10000,
		ScoreNoise:         0.5,
		WeightPerturbation: 0.05,
		ScoreSeed:          42,
		WeightSeed:         123,
	}
}

// Validate rejects parameters either simulator would refuse.
func (p Params) Validate() error {
	if err := validateReplicates(p.Replicates); err != nil {
		return err
	}
	if err := validateNoise(p.ScoreNoise); err != nil {
		return err
	}
	return validatePerturbation(p.WeightPerturbation)
}

// CheckReplicateLimit rejects a replicate count above limit. A limit of
// zero or less disables the check.
func (p Params) CheckReplicateLimit(limit int) error {
	if limit > 0 && p.Replicates > limit {
		return &InvalidParameterError{Name: "replicates", Value: p.Replicates}
	}
	return nil
}

func validateReplicates(r int) error {
	if r < 1 {
		return &InvalidParameterError{Name: "replicates", Value: r}
	}
	return nil
}

func validateNoise(noise float64) error {
	if math.IsNaN(noise) || math.IsInf(noise, 0) || noise < 0 {
		return &InvalidParameterError{Name: "score_noise", Value: noise}
	}
	return nil
}

func validatePerturbation(wpert float64) error {
	if math.IsNaN(wpert) || wpert < 0 || wpert >= 1 {
		return &InvalidParameterError{Name: "weight_perturbation", Value: wpert}
	}
	return nil
}
