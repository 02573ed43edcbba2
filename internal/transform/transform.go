package transform

import (
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
)

// ScenarioTransform defines the interface for what-if changes to a company's inputs.
// Transforms are composable operations used by scenario comparison and the
// break-even solver.
type ScenarioTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.Inputs) (domain.Inputs, error)

	// Name returns a short identifier for this transform (e.g., "scale_costs").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters without applying it.
	Validate(base domain.Inputs) error
}

var validator = input.NewCollector()

// ApplyTransforms applies transforms in order, each receiving the output of the
// previous one. The final inputs must still pass the collector's range checks.
func ApplyTransforms(base domain.Inputs, transforms []ScenarioTransform) (domain.Inputs, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.Inputs{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.Inputs{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := validator.Validate(current); err != nil {
		return domain.Inputs{}, NewTransformError("chain", "validate", "transformed inputs are out of range", err)
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
