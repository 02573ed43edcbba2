package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter represents an input to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "currency" or "percent"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the engine summary at one value of the swept input
type SensitivityPoint struct {
	Value   decimal.Decimal `json:"value"`
	Summary SummaryResult   `json:"summary"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	LowestWorstCase        decimal.Decimal `json:"lowestWorstCase"`
	LowestAt               decimal.Decimal `json:"lowestAt"`
	HighestWorstCase       decimal.Decimal `json:"highestWorstCase"`
	HighestAt              decimal.Decimal `json:"highestAt"`
	WorstCaseChangePerUnit decimal.Decimal `json:"worstCaseChangePerUnit"`
	CrossesCurrentBurden   bool            `json:"crossesCurrentBurden"`
	Recommendations        []string        `json:"recommendations"`
}

// SensitivityAnalysis represents a complete one-parameter sweep
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	Points    []SensitivityPoint   `json:"points"`
	Summary   SensitivitySummary   `json:"summary"`
}
