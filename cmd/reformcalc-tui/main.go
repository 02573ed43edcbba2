package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/logging"
	"github.com/rgehrsitz/reformcalc/internal/tui"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: reformcalc-tui [input-file]")
		os.Exit(1)
	}

	opts := tui.Options{}
	logger := zap.NewNop()

	if len(os.Args) == 2 {
		path := os.Args[1]
		loaded, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		opts.InputPath = path
		opts.Submission = loaded.Submission

		// The alternate screen owns the terminal, so only file outputs are honored.
		if out := loaded.Submission.Logging.Output; out != "" && out != "stderr" && out != "stdout" {
			logger, err = logging.New(loaded.Submission.Logging)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}
	}
	opts.Logger = logger

	if err := run(opts); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// run owns the logger from here on so it is flushed on every exit path.
func run(opts tui.Options, extra ...tea.ProgramOption) error {
	defer func() { _ = opts.Logger.Sync() }()

	progOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, extra...)
	_, err := tea.NewProgram(tui.NewModel(opts), progOpts...).Run()
	return err
}
