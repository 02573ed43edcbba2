package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// Helper function to create a basic company profile
func createTestInputs() domain.Inputs {
	return domain.Inputs{
		PISCOFINS:             d("1000"),
		ISS:                   d("500"),
		AnnualRevenue:         d("100000"),
		ExemptRevenuePct:      d("0"),
		OperatingCosts:        d("50000"),
		SimplifiedSupplierPct: d("20"),
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInputs()

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if !result.AnnualRevenue.Equal(base.AnnualRevenue) || !result.OperatingCosts.Equal(base.OperatingCosts) {
		t.Errorf("Expected unchanged inputs, got %+v", result)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	transforms := []ScenarioTransform{
		&ScaleCosts{Percent: d("10")},
		nil,
	}

	_, err := ApplyTransforms(createTestInputs(), transforms)
	if err == nil {
		t.Fatal("Expected error for nil transform, got nil")
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Errorf("Expected error to name index 1, got: %v", err)
	}
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestInputs()
	transforms := []ScenarioTransform{
		&ScaleRevenue{Percent: d("10")},
		&ScaleCosts{Percent: d("-20")},
		&SetSimplifiedShare{Percent: d("0")},
		&SetExemptShare{Percent: d("12.5")},
	}

	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.AnnualRevenue.Equal(d("110000")) {
		t.Errorf("Expected revenue 110000, got %s", result.AnnualRevenue)
	}
	if !result.OperatingCosts.Equal(d("40000")) {
		t.Errorf("Expected costs 40000, got %s", result.OperatingCosts)
	}
	if !result.SimplifiedSupplierPct.IsZero() {
		t.Errorf("Expected simplified share 0, got %s", result.SimplifiedSupplierPct)
	}
	if !result.ExemptRevenuePct.Equal(d("12.5")) {
		t.Errorf("Expected exempt share 12.5, got %s", result.ExemptRevenuePct)
	}

	// The base value is untouched
	if !base.AnnualRevenue.Equal(d("100000")) {
		t.Errorf("Base inputs were modified: %s", base.AnnualRevenue)
	}
}

func TestApplyTransforms_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		transform ScenarioTransform
	}{
		{"share above 100", &SetSimplifiedShare{Percent: d("101")}},
		{"negative share", &SetExemptShare{Percent: d("-1")}},
		{"scale below -100", &ScaleCosts{Percent: d("-150")}},
		{"negative costs", &SetOperatingCosts{Amount: d("-1")}},
		{"negative revenue", &SetAnnualRevenue{Amount: d("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyTransforms(createTestInputs(), []ScenarioTransform{tt.transform})
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			var te *TransformError
			if !errors.As(err, &te) {
				t.Errorf("Expected TransformError, got %T: %v", err, err)
			}
		})
	}
}

func TestApplyTransforms_RevalidatesResult(t *testing.T) {
	base := createTestInputs()
	base.ExemptRevenuePct = d("150")

	_, err := ApplyTransforms(base, []ScenarioTransform{&ScaleCosts{Percent: d("5")}})
	if err == nil {
		t.Fatal("Expected out-of-range error, got nil")
	}
	if !errors.Is(err, input.ErrPercentOutOfRange) {
		t.Errorf("Expected ErrPercentOutOfRange, got: %v", err)
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("scale_costs:percent=-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tr.Name() != "scale_costs" {
		t.Errorf("Expected scale_costs, got %s", tr.Name())
	}
	if tr.Description() != "Change operating costs by -10%" {
		t.Errorf("Unexpected description: %s", tr.Description())
	}

	tr, err = registry.ParseTransformSpec("set_operating_costs: amount = 42000.50")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := tr.Apply(createTestInputs())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.OperatingCosts.Equal(d("42000.50")) {
		t.Errorf("Expected costs 42000.50, got %s", result.OperatingCosts)
	}
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()
	specs := []string{
		"scale_costs",
		"scale_costs:percent",
		"scale_costs:amount=1",
		"scale_costs:percent=abc",
		"unknown:percent=1",
	}
	for _, spec := range specs {
		if _, err := registry.ParseTransformSpec(spec); err == nil {
			t.Errorf("Expected error for spec %q", spec)
		}
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	if len(names) != 6 {
		t.Fatalf("Expected 6 transforms, got %d: %v", len(names), names)
	}
	if names[0] != "scale_costs" {
		t.Errorf("Expected sorted list starting with scale_costs, got %v", names)
	}
}

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"all_simplified", "costs_down_10", "costs_up_10", "full_exemption",
		"regular_suppliers", "revenue_down_10", "revenue_up_10",
	}
	names := registry.List()
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected templates %v, got %v", expected, names)
	}

	for _, name := range names {
		tmpl, ok := registry.Get(name)
		if !ok {
			t.Fatalf("Template %s not found", name)
		}
		if _, err := ApplyTemplate(createTestInputs(), tmpl); err != nil {
			t.Errorf("Template %s failed: %v", name, err)
		}
	}

	tmpl, ok := registry.Get(" Regular_Suppliers ")
	if !ok {
		t.Fatal("Expected case-insensitive lookup")
	}
	result, _ := ApplyTemplate(createTestInputs(), tmpl)
	if !result.SimplifiedSupplierPct.IsZero() {
		t.Errorf("Expected simplified share 0, got %s", result.SimplifiedSupplierPct)
	}
}

func TestParseTemplateList(t *testing.T) {
	got := ParseTemplateList(" costs_up_10, ,regular_suppliers ")
	if len(got) != 2 || got[0] != "costs_up_10" || got[1] != "regular_suppliers" {
		t.Errorf("Unexpected list: %v", got)
	}
	if ParseTemplateList("") != nil {
		t.Error("Expected nil for empty list")
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates(), NewTransformRegistry())
	for _, want := range []string{"regular_suppliers", "set_exempt_share", "Usage:"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help to contain %q", want)
		}
	}
}
