package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
	"github.com/rgehrsitz/reformcalc/internal/logging"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Submission is the on-disk form of one calculation request.
type Submission struct {
	Company string          `yaml:"company,omitempty"`
	Locale  string          `yaml:"locale,omitempty"`
	Inputs  input.RawInputs `yaml:"inputs"`
	Output  OutputConfig    `yaml:"output,omitempty"`
	Logging logging.Config  `yaml:"logging,omitempty"`
}

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// Loaded is a parsed and validated submission.
type Loaded struct {
	Submission *Submission
	Inputs     domain.Inputs
}

// InputParser handles parsing of submission files
type InputParser struct {
	Collector *input.Collector
	// DefaultLocale reads quoted input text when the file names no locale.
	DefaultLocale string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Collector: input.NewCollector()}
}

// LoadFromFile reads a YAML submission and runs its inputs through validation.
func (ip *InputParser) LoadFromFile(filename string) (*Loaded, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML submission held in memory.
func (ip *InputParser) Parse(data []byte) (*Loaded, error) {
	var sub Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateSubmission(&sub); err != nil {
		return nil, fmt.Errorf("submission validation failed: %w", err)
	}

	locale := sub.Locale
	if locale == "" {
		locale = ip.DefaultLocale
	}
	collector := *ip.Collector
	collector.DecimalMark = DecimalMark(locale)

	in, err := collector.Collect(sub.Inputs)
	if err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}

	return &Loaded{Submission: &sub, Inputs: in}, nil
}

// ValidateSubmission checks the settings around the inputs. The inputs
// themselves are validated by the collector.
func (ip *InputParser) ValidateSubmission(sub *Submission) error {
	if sub.Locale != "" {
		if _, err := language.Parse(sub.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", sub.Locale, err)
		}
	}
	switch sub.Output.Format {
	case "", "console", "table", "csv", "json", "yaml", "html":
	default:
		return fmt.Errorf("unknown output format %q", sub.Output.Format)
	}
	return nil
}

// DecimalMark returns the decimal separator users of locale type.
func DecimalMark(locale string) rune {
	if locale == "" {
		return ','
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ','
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en", "ja", "zh", "ko", "he", "th":
		return '.'
	}
	return ','
}

// ExampleSubmission is the template written by the init command.
func ExampleSubmission() *Submission {
	return &Submission{
		Company: "Example Ltda",
		Locale:  "pt-BR",
		Inputs: input.RawInputs{
			PISCOFINS:             "1.000,00",
			ISS:                   "500,00",
			AnnualRevenue:         "100.000,00",
			ExemptRevenuePct:      "0",
			OperatingCosts:        "50.000,00",
			SimplifiedSupplierPct: "20",
		},
		Output:  OutputConfig{Format: "console"},
		Logging: logging.DefaultConfig(),
	}
}

// SaveSubmission writes a submission as YAML.
func SaveSubmission(sub *Submission, filename string) error {
	data, err := yaml.Marshal(sub)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
