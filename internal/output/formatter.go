package output

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

var formatters = map[string]func(NumberFormat) Formatter{
	"console": func(nf NumberFormat) Formatter { return ConsoleFormatter{Numbers: nf, Chart: true} },
	"csv":     func(nf NumberFormat) Formatter { return CSVFormatter{} },
	"json":    func(nf NumberFormat) Formatter { return JSONFormatter{Pretty: true} },
	"yaml":    func(nf NumberFormat) Formatter { return YAMLFormatter{} },
	"html":    func(nf NumberFormat) Formatter { return HTMLFormatter{Numbers: nf} },
}

// GetFormatterByName returns the named formatter, or nil if there is none.
func GetFormatterByName(name string, nf NumberFormat) Formatter {
	if name == "" || name == "table" {
		name = "console"
	}
	build, ok := formatters[name]
	if !ok {
		return nil
	}
	return build(nf)
}

// FormatterNames lists the registered output formats.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateReport formats report with the named formatter.
func GenerateReport(report *domain.Report, format string, nf NumberFormat) ([]byte, error) {
	f := GetFormatterByName(format, nf)
	if f == nil {
		return nil, fmt.Errorf("unsupported format: %s (valid: %v)", format, FormatterNames())
	}
	return f.Format(report)
}

// document is the machine-readable shape shared by the JSON and YAML outputs.
type document struct {
	Company   string                  `json:"company,omitempty" yaml:"company,omitempty"`
	Inputs    domain.Inputs           `json:"inputs" yaml:"inputs"`
	Scenarios []domain.ScenarioRecord `json:"scenarios" yaml:"scenarios"`
	Summary   domain.SummaryResult    `json:"summary" yaml:"summary"`
	Increase  IncreaseSignal          `json:"increase" yaml:"increase"`
	BreakEven *domain.BreakEvenRate   `json:"breakEven,omitempty" yaml:"break_even,omitempty"`
}

func newDocument(r *domain.Report) document {
	return document{
		Company:   r.Company,
		Inputs:    r.Result.Inputs,
		Scenarios: r.Result.Scenarios,
		Summary:   r.Result.Summary,
		Increase:  AssessIncrease(r.Result.Summary),
		BreakEven: r.BreakEven,
	}
}

// JSONFormatter formats reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	doc := newDocument(report)
	if jf.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// YAMLFormatter formats reports as YAML.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report *domain.Report) ([]byte, error) {
	return yaml.Marshal(newDocument(report))
}
