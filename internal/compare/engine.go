package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/transform"
)

// BaseScenarioName labels the unmodified inputs in a comparison.
const BaseScenarioName = "base"

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // Built-in template names
	Transforms []string // Ad-hoc transform specs, e.g. "scale_costs:percent=-5"
}

type alternative struct {
	name        string
	description string
	transforms  []transform.ScenarioTransform
}

// Compare runs the engine on base and on every requested alternative
func (ce *CompareEngine) Compare(ctx context.Context, base domain.Inputs, options CompareOptions) (*ComparisonSet, error) {
	alternatives, err := ce.resolve(options)
	if err != nil {
		return nil, err
	}
	if len(alternatives) == 0 {
		return nil, fmt.Errorf("no templates or transforms to compare")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(BaseScenarioName, ce.CalcEngine.Run(base).Result)
	ce.CalcEngine.Logger.Debugf("compare: base worst case %s", baseResult.Summary.WorstCaseBurden)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, alt.transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.name, ce.CalcEngine.Run(modified).Result)
		altResult.Description = alt.description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		ce.CalcEngine.Logger.Debugf("compare: %s worst case %s (%s vs base)",
			alt.name, altResult.Summary.WorstCaseBurden, altResult.WorstDiffFromBase)

		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) resolve(options CompareOptions) ([]alternative, error) {
	var alternatives []alternative

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		alternatives = append(alternatives, alternative{
			name:        tmpl.Name,
			description: tmpl.Description,
			transforms:  tmpl.Transforms,
		})
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}
		alternatives = append(alternatives, alternative{
			name:        spec,
			description: tr.Description(),
			transforms:  []transform.ScenarioTransform{tr},
		})
	}

	return alternatives, nil
}
