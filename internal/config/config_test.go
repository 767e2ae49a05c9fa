package config

import (
	"math"
	"testing"
)

func TestToleranceDefaults(t *testing.T) {
	var tol Tolerance
	if err := tol.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if tol != DefaultTolerance() {
		t.Fatalf("expected defaults, got %+v", tol)
	}

	custom := Tolerance{Abs: 1e-3}
	if err := custom.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if custom.Abs != 1e-3 || custom.Rel != 0 {
		t.Fatalf("explicit tolerance overwritten: %+v", custom)
	}
}

func TestToleranceRejectsInvalid(t *testing.T) {
	for _, tol := range []Tolerance{{Abs: -1}, {Rel: math.NaN()}, {Abs: math.Inf(1)}} {
		if err := tol.Validate(); err == nil {
			t.Fatalf("expected error for %+v", tol)
		}
	}
	var nilTol *Tolerance
	if err := nilTol.Validate(); err == nil {
		t.Fatal("expected error for nil tolerance")
	}
}

func TestGradCheckDefaults(t *testing.T) {
	cfg := GradCheck{NumChecks: 3}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.NumChecks != 3 {
		t.Fatalf("expected num_checks 3, got %d", cfg.NumChecks)
	}
	if cfg.Step != defaultStep || cfg.Seed != defaultSeed || cfg.MaxRelError != defaultMaxRelError {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestGradCheckRejectsInvalid(t *testing.T) {
	cases := []GradCheck{
		{NumChecks: -1},
		{Step: -1e-5},
		{MaxRelError: math.NaN()},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}
