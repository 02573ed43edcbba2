package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common supplier,
// revenue, and cost scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Supplier mix
	registry.Register(Template{
		Name:        "regular_suppliers",
		Description: "Buy every input from suppliers outside the simplified regime (full credit)",
		Transforms:  []ScenarioTransform{&SetSimplifiedShare{Percent: decimal.Zero}},
	})
	registry.Register(Template{
		Name:        "all_simplified",
		Description: "Buy every input from simplified-regime suppliers (presumed 8% credit only)",
		Transforms:  []ScenarioTransform{&SetSimplifiedShare{Percent: hundred}},
	})

	// Revenue
	registry.Register(Template{
		Name:        "revenue_up_10",
		Description: "Annual revenue 10% higher",
		Transforms:  []ScenarioTransform{&ScaleRevenue{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "revenue_down_10",
		Description: "Annual revenue 10% lower",
		Transforms:  []ScenarioTransform{&ScaleRevenue{Percent: decimal.NewFromInt(-10)}},
	})
	registry.Register(Template{
		Name:        "full_exemption",
		Description: "All revenue earned inside the special economic zone",
		Transforms:  []ScenarioTransform{&SetExemptShare{Percent: hundred}},
	})

	// Costs
	registry.Register(Template{
		Name:        "costs_up_10",
		Description: "Operating costs 10% higher",
		Transforms:  []ScenarioTransform{&ScaleCosts{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "costs_down_10",
		Description: "Operating costs 10% lower",
		Transforms:  []ScenarioTransform{&ScaleCosts{Percent: decimal.NewFromInt(-10)}},
	})

	return registry
}

// ApplyTemplate applies a template's transforms to base inputs
func ApplyTemplate(base domain.Inputs, template Template) (domain.Inputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList splits a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GetTemplateHelp returns help text listing templates and transforms
func GetTemplateHelp(registry *TemplateRegistry, transforms *TransformRegistry) string {
	var sb strings.Builder

	sb.WriteString("Available templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}

	if transforms != nil {
		sb.WriteString("\nAvailable transforms:\n\n")
		for _, name := range transforms.List() {
			sb.WriteString(fmt.Sprintf("  %s\n", name))
		}
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  reformcalc compare company.yaml --templates regular_suppliers,costs_up_10\n")
	sb.WriteString("  reformcalc compare company.yaml --transform scale_costs:percent=-5\n")

	return sb.String()
}
