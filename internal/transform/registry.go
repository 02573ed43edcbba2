package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry maps transform names to constructors so transforms can be
// named on the command line.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory builds a transform from its string parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry returns a registry holding the built-in transforms.
func NewTransformRegistry() *TransformRegistry {
	r := &TransformRegistry{factories: map[string]TransformFactory{}}
	r.Register("scale_revenue", createScaleRevenue)
	r.Register("scale_costs", createScaleCosts)
	r.Register("set_operating_costs", createSetOperatingCosts)
	r.Register("set_annual_revenue", createSetAnnualRevenue)
	r.Register("set_simplified_share", createSetSimplifiedShare)
	r.Register("set_exempt_share", createSetExemptShare)

	return r
}

// Register adds or replaces a transform constructor.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create builds the named transform.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	build, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return build(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec builds a transform from "name:key=value,...",
// e.g. "scale_costs:percent=-10".
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, args, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("transform %q: missing ':' between name and parameters", spec)
	}

	params, err := parseParams(args)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", spec, err)
	}
	return r.Create(strings.TrimSpace(name), params)
}

func parseParams(args string) (map[string]string, error) {
	params := make(map[string]string)
	for _, field := range strings.FieldsFunc(args, func(r rune) bool { return r == ',' }) {
		k, v, ok := strings.Cut(field, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("parameter %q is not key=value", strings.TrimSpace(field))
		}
		params[k] = strings.TrimSpace(v)
	}
	return params, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}

func createScaleRevenue(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("scale_revenue", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleRevenue{Percent: pct}, nil
}

func createScaleCosts(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("scale_costs", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleCosts{Percent: pct}, nil
}

func createSetOperatingCosts(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_operating_costs", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetOperatingCosts{Amount: amount}, nil
}

func createSetAnnualRevenue(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_annual_revenue", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetAnnualRevenue{Amount: amount}, nil
}

func createSetSimplifiedShare(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("set_simplified_share", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetSimplifiedShare{Percent: pct}, nil
}

func createSetExemptShare(params map[string]string) (ScenarioTransform, error) {
	pct, err := decimalParam("set_exempt_share", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetExemptShare{Percent: pct}, nil
}
