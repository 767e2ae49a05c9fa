package config

import (
	"math"

	"github.com/pkg/errors"
)

const (
	defaultAbsTolerance = 1e-7
	defaultRelTolerance = 1e-7

	defaultNumChecks   = 10
	defaultStep        = 1e-5
	defaultSeed        = 42
	defaultMaxRelError = 1e-5
)

// Tolerance bounds the difference allowed between two numeric results.
// Values agree when they are within Abs of each other or within Rel of the
// larger magnitude.
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance is the agreement expected between the naive and
// vectorized loss forms.
func DefaultTolerance() Tolerance {
	return Tolerance{Abs: defaultAbsTolerance, Rel: defaultRelTolerance}
}

// Validate verifies the tolerance is usable, filling zero fields with defaults.
func (t *Tolerance) Validate() error {
	if t == nil {
		return errors.New("tolerance is nil")
	}
	if err := nonNegative("abs", t.Abs); err != nil {
		return err
	}
	if err := nonNegative("rel", t.Rel); err != nil {
		return err
	}
	if t.Abs == 0 && t.Rel == 0 {
		*t = DefaultTolerance()
	}
	return nil
}

// GradCheck captures the knobs for a sampled numerical gradient check.
type GradCheck struct {
	NumChecks   int
	Step        float64
	Seed        int64
	MaxRelError float64
}

// Validate verifies the settings are runnable, filling zero fields with
// defaults.
func (g *GradCheck) Validate() error {
	if g == nil {
		return errors.New("gradcheck config is nil")
	}
	if g.NumChecks < 0 {
		return errors.Errorf("num_checks must be >= 0 (got %d)", g.NumChecks)
	}
	if err := nonNegative("step", g.Step); err != nil {
		return err
	}
	if err := nonNegative("max_rel_error", g.MaxRelError); err != nil {
		return err
	}
	if g.NumChecks == 0 {
		g.NumChecks = defaultNumChecks
	}
	if g.Step == 0 {
		g.Step = defaultStep
	}
	if g.Seed == 0 {
		g.Seed = defaultSeed
	}
	if g.MaxRelError == 0 {
		g.MaxRelError = defaultMaxRelError
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Errorf("%s must be finite and >= 0 (got %v)", name, v)
	}
	return nil
}
