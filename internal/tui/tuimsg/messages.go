// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/reformcalc/internal/compare"
	"github.com/rgehrsitz/reformcalc/internal/domain"
)

// InputsSubmittedMsg carries validated form inputs
type InputsSubmittedMsg struct {
	Inputs domain.Inputs
}

// CalculationCompleteMsg signals a calculation has finished
type CalculationCompleteMsg struct {
	Report *domain.Report
}

// CompareRequestedMsg asks for the current inputs to be compared against templates
type CompareRequestedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
}

// ErrorMsg reports a failed background command to the user
type ErrorMsg struct {
	Err error
}
