package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleFlags describes a business paying R$ 1.500,00 today whose worst case
// under the reform is R$ 16.000,00.
var sampleFlags = []string{
	"--pis-cofins", "1.000,00",
	"--iss", "500",
	"--revenue", "100.000,00",
	"--exempt-pct", "0",
	"--costs", "50.000,00",
	"--simplified-pct", "20",
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func withSample(args ...string) []string {
	return append(args, sampleFlags...)
}

func writeExample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "company.yaml")
	_, _, err := execute(t, "init", path)
	require.NoError(t, err)
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "reformcalc" {
		t.Errorf("Expected root command use to be 'reformcalc', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected root command to have short and long descriptions")
	}

	expected := []string{"calculate", "validate", "rates", "break-even", "compare", "templates", "sensitivity", "init", "version"}
	for _, name := range expected {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", name)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "candidate uniform rate")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, _, err := execute(t, "invalid-command")
	assert.Error(t, err)

	_, _, err = execute(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestCalculate_FromFlags(t *testing.T) {
	out, _, err := execute(t, withSample("calculate")...)
	require.NoError(t, err)

	assert.Contains(t, out, "TAX REFORM IMPACT ANALYSIS")
	assert.Contains(t, out, "R$ 14.200,00")
	assert.Contains(t, out, "R$ 16.000,00")
	assert.Contains(t, out, "Warning: your tax burden may increase by up to 966,7%")
	assert.Contains(t, out, "TAX BURDEN COMPARISON")
	assert.Contains(t, out, "Break-even rate: 3,83%")
}

func TestCalculate_NoChart(t *testing.T) {
	out, _, err := execute(t, withSample("calculate", "--no-chart")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "TAX BURDEN COMPARISON")
}

func TestCalculate_Locale(t *testing.T) {
	out, _, err := execute(t, "calculate", "--locale", "en-US",
		"--pis-cofins", "1,000.00", "--iss", "500", "--revenue", "100,000",
		"--exempt-pct", "0", "--costs", "50000", "--simplified-pct", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "R$ 16,000.00")
}

func TestCalculate_MissingInputs(t *testing.T) {
	_, _, err := execute(t, "calculate", "--pis-cofins", "1000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid inputs")
	assert.Contains(t, err.Error(), "iss")
}

func TestCalculate_InvalidInput(t *testing.T) {
	args := withSample("calculate")
	args = append(args, "--simplified-pct", "120")
	_, _, err := execute(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simplified_supplier_pct")
}

func TestCalculate_FromFileAsJSON(t *testing.T) {
	path := writeExample(t)

	out, _, err := execute(t, "calculate", path, "-f", "json")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Example Ltda", doc["company"])
}

func TestCalculate_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.html")

	out, _, err := execute(t, withSample("calculate", "-f", "html", "--output", target)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestCalculate_UnsupportedFormat(t *testing.T) {
	_, _, err := execute(t, withSample("calculate", "-f", "pdf")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestCalculate_DebugLogging(t *testing.T) {
	_, stderr, err := execute(t, withSample("calculate", "--debug", "--log-format", "json")...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "computed 4 scenarios")
	assert.Contains(t, stderr, `"level":"debug"`)

	_, stderr, err = execute(t, withSample("calculate")...)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestValidate(t *testing.T) {
	path := writeExample(t)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Current burden: R$ 1.500,00")

	_, _, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("inputs:\n  pis_cofins: \"-5\"\n"), 0644))
	_, _, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid inputs")
}

func TestLocaleFlag_ReadsFileWithoutLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "us.yaml")
	doc := `inputs:
  pis_cofins: "1,000.50"
  iss: "499.50"
  annual_revenue: "100,000"
  exempt_revenue_pct: "0"
  operating_costs: "50,000"
  simplified_supplier_pct: "20"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out, _, err := execute(t, "validate", path, "--locale", "en-US")
	require.NoError(t, err)
	assert.Contains(t, out, "Current burden: R$ 1,500.00")

	out, _, err = execute(t, "calculate", path, "--locale", "en-US", "--no-chart")
	require.NoError(t, err)
	assert.Contains(t, out, "R$ 16,000.00")
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := writeExample(t)

	_, _, err := execute(t, "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestRates(t *testing.T) {
	out, _, err := execute(t, "rates")
	require.NoError(t, err)
	for _, want := range []string{"25,0%", "26,0%", "27,0%", "28,0%", "8,0%"} {
		assert.Contains(t, out, want)
	}
}

func TestBreakEven_Rate(t *testing.T) {
	out, _, err := execute(t, withSample("break-even")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN RATE ANALYSIS")
	assert.Contains(t, out, "Break-even rate: 3,83%")
	assert.Contains(t, out, "4 of 4 candidate rates raise the burden")

	// Taxable revenue equals fully credited costs
	out, _, err = execute(t, "break-even",
		"--pis-cofins", "100", "--iss", "0", "--revenue", "1000",
		"--exempt-pct", "0", "--costs", "1000", "--simplified-pct", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No break-even rate exists")
}

func TestBreakEven_Target(t *testing.T) {
	out, _, err := execute(t, withSample("break-even", "--target", "operating_costs")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN INPUT ANALYSIS")

	out, _, err = execute(t, withSample("break-even", "--target", "all", "-f", "json")...)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)

	_, _, err = execute(t, withSample("break-even", "--target", "payroll")...)
	assert.Error(t, err)

	_, _, err = execute(t, withSample("break-even", "--target", "operating_costs", "--min", "abc")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min")
}

func TestCompare(t *testing.T) {
	out, _, err := execute(t, withSample("compare", "--templates", "regular_suppliers")...)
	require.NoError(t, err)
	assert.Contains(t, out, "TAX REFORM WHAT-IF COMPARISON")
	assert.Contains(t, out, "regular_suppliers")

	out, _, err = execute(t, withSample("compare", "--transform", "scale_costs:percent=10", "-f", "csv")...)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Scenario", records[0][0])

	_, _, err = execute(t, withSample("compare")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--templates or --transform")

	_, _, err = execute(t, withSample("compare", "--templates", "no_such_template")...)
	assert.Error(t, err)
}

func TestCompare_ListTemplates(t *testing.T) {
	out, _, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "regular_suppliers")

	out, _, err = execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available transforms")
	assert.Contains(t, out, "scale_costs")
}

func TestSensitivity(t *testing.T) {
	out, _, err := execute(t, withSample("sensitivity")...)
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: OPERATING COSTS")

	out, _, err = execute(t, withSample("sensitivity", "--param", "simplified_supplier_pct", "--steps", "3", "-f", "csv")...)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "50", records[2][1])

	_, _, err = execute(t, withSample("sensitivity", "--param", "payroll")...)
	assert.Error(t, err)

	_, _, err = execute(t, withSample("sensitivity", "--param", "exempt_revenue_pct", "--max", "150")...)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reformcalc dev")
}
