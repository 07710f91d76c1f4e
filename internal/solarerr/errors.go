// Package solarerr defines the error taxonomy shared by the estimation,
// optimization and financial packages.
package solarerr

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for out-of-range or non-finite inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable marks a failed or timed-out climatology fetch.
	ErrUpstreamUnavailable = errors.New("upstream climatology service unavailable")

	// ErrNumericDegeneracy marks an optimizer or integration that produced
	// NaN/Inf or failed to converge.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError.
func Invalid(field string, value float64, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// CheckFinite returns a ValidationError if v is NaN or ±Inf.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(field, v, "must be a finite number")
	}
	return nil
}

// CheckRange returns a ValidationError unless lo <= v <= hi and v is finite.
func CheckRange(field string, v, lo, hi float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return Invalid(field, v, fmt.Sprintf("must be within [%v, %v]", lo, hi))
	}
	return nil
}

// CheckNonNegative returns a ValidationError for negative or non-finite v.
func CheckNonNegative(field string, v float64) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(field, v, "must not be negative")
	}
	return nil
}
