package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/compare"
	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
	"github.com/rgehrsitz/reformcalc/internal/logging"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/rgehrsitz/reformcalc/internal/tui/scenes"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuimsg"
)

// Options configures a new model. All fields are optional.
type Options struct {
	// Submission prefills the form.
	Submission *config.Submission
	InputPath  string
	// Locale overrides the submission's locale; the default is pt-BR.
	Locale string
	Logger *zap.Logger
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	inputPath string
	company   string
	numbers   output.NumberFormat

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine

	// Last submitted inputs
	inputs    domain.Inputs
	hasInputs bool

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	compareModel *scenes.CompareModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	locale := opts.Locale
	if locale == "" && opts.Submission != nil {
		locale = opts.Submission.Locale
	}
	nf, err := output.NewNumberFormat(locale)
	if err != nil {
		nf = output.DefaultNumberFormat()
	}

	collector := input.NewCollector()
	collector.EmptyAsZero = true
	collector.DecimalMark = config.DecimalMark(locale)

	calcEngine := calculation.NewCalculationEngine()
	calcEngine.SetLogger(logging.NewEngineLogger(opts.Logger))
	compareEngine := compare.NewCompareEngine(calcEngine)

	m := Model{
		currentScene:  SceneForm,
		inputPath:     opts.InputPath,
		numbers:       nf,
		calcEngine:    calcEngine,
		compareEngine: compareEngine,
		formModel:     scenes.NewFormModel(collector),
		resultsModel:  scenes.NewResultsModel(nf),
		compareModel:  scenes.NewCompareModel(compareEngine.TemplateRegistry, nf),
		width:         80,
		height:        24,
	}
	if opts.Submission != nil {
		m.company = opts.Submission.Company
		m.formModel.SetValues(opts.Submission.Inputs)
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// calculateCmd returns a command that runs the engine on validated inputs
func calculateCmd(engine *calculation.CalculationEngine, in domain.Inputs, company string) tea.Cmd {
	return func() tea.Msg {
		report := engine.Run(in)
		report.Company = company
		return tuimsg.CalculationCompleteMsg{Report: &report}
	}
}

// compareCmd returns a command that compares inputs against templates
func compareCmd(engine *compare.CompareEngine, in domain.Inputs, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), in, compare.CompareOptions{Templates: templates})
		if err != nil {
			return tuimsg.ErrorMsg{Err: fmt.Errorf("comparison failed: %w", err)}
		}
		return tuimsg.ComparisonCompleteMsg{Set: set}
	}
}
