package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/division"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/models"
	"github.com/rs/zerolog"
)

// Application represents the bigcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its various modes (menu, one-shot, REPL, server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the division strategies.
	Factory division.DividerFactory
	// In is read by the menu and the REPL (typically os.Stdin).
	In io.Reader
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New parses os.Args-style args (program name first) into an Application.
// Usage and validation errors are written to errWriter and returned.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := division.GlobalFactory()

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		In:        os.Stdin,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode. Completion
// generation wins over the server, the server over the REPL, and the REPL
// over the menu. Without operands (or with -menu) the menu runs; otherwise
// a one-shot calculation is performed. The returned value is the process
// exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	// Respects --no-color, NO_COLOR and non-terminal output.
	ui.InitTheme(a.Config.NoColor, out)
	zerolog.SetGlobalLevel(logLevel(a.Config))

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.Menu || !a.Config.HasOperands():
		return a.runMenu(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// logLevel keeps the per-division debug logs out of interactive and
// one-shot output. A verbose server logs at debug level. An explicit
// -log-level wins; it was validated with the rest of the configuration.
func logLevel(cfg config.AppConfig) zerolog.Level {
	if cfg.LogLevel != "" {
		if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
			return level
		}
	}
	if cfg.ServerMode && cfg.Verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	logger := logging.NewLogger(a.ErrWriter, "server", logLevel(a.Config))

	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Verbose:     a.Config.Verbose,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runMenu runs one session of the two-number menu. The menu waits on user
// input, so only signals interrupt it; the timeout does not apply.
func (a *Application) runMenu(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	err := cli.NewMenu(a.In, out, a.menuDivider()).Run(ctx)
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.Is(err, io.ErrUnexpectedEOF):
		fmt.Fprintln(a.ErrWriter, "Input ended before both numbers were read.")
		return apperrors.ExitErrorGeneric
	case apperrors.IsContextError(err):
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	default:
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
}

// menuDivider returns the strategy named by the configuration, or long
// division when all strategies are selected.
func (a *Application) menuDivider() division.Divider {
	name := a.Config.Algo
	if name == "all" {
		name = config.DefaultAlgo
	}
	d, err := a.Factory.Get(name)
	if err != nil {
		return nil
	}
	return d
}

// runCalculate orchestrates a one-shot calculation on the -a and -b operands.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	x, err := parseOperand("a", a.Config.A)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	y, err := parseOperand("b", a.Config.B)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	// JSON and quiet output must stay machine readable: progress is dropped
	// and diagnostics go to the error stream.
	machine := a.Config.JSONOutput || a.Config.Quiet
	progressOut, diagOut := out, out
	if machine {
		progressOut, diagOut = io.Discard, a.ErrWriter
	}

	exitCode := apperrors.ExitSuccess
	var (
		quotient  bigint.BigInt
		divErr    error
		divisions []models.DivisionResult
	)
	if cli.NeedsDivision(a.Config.Op) {
		dividers := cli.GetDividersToRun(a.Config, a.Factory)
		if !machine {
			cli.PrintExecutionConfig(a.Config, x, y, out)
			cli.PrintExecutionMode(dividers, out)
		}

		results := orchestration.ExecuteDivisions(ctx, dividers, x, y, progressOut)
		summary := orchestration.AnalyzeComparisonResults(results, diagOut)
		if summary.Err != nil && !errors.Is(summary.Err, bigint.ErrDivisionByZero) {
			return summary.ExitCode
		}
		quotient, divErr, exitCode = summary.Quotient, summary.Err, summary.ExitCode

		for _, res := range results {
			divisions = append(divisions, cli.NewDivisionResult(res.Name, res.Result, res.Duration, res.Err))
		}
		if !machine {
			fmt.Fprintln(out)
		}
	}

	report := cli.BuildReport(a.Config.Op, x, y, quotient, divErr)
	if a.Config.Details || a.Config.JSONOutput {
		report.Divisions = divisions
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		JSON:       a.Config.JSONOutput,
		ReportOptions: cli.ReportOptions{
			Verbose: a.Config.Verbose,
			Details: a.Config.Details,
			Quiet:   a.Config.Quiet,
		},
	}
	if err := cli.DisplayReportWithConfig(out, a.Config.Op, report, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing report: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	// A zero divisor is part of the full report but fails a lone division.
	if a.Config.Op == models.OpDiv && errors.Is(divErr, bigint.ErrDivisionByZero) {
		return apperrors.ExitErrorGeneric
	}
	return exitCode
}

// parseOperand parses one operand flag, wrapping failures so the message
// names the offending flag.
func parseOperand(name, text string) (bigint.BigInt, error) {
	v, err := bigint.Parse(text)
	if err != nil {
		return bigint.BigInt{}, apperrors.NewOperandError(name, err)
	}
	return v, nil
}

// IsHelpError reports whether New failed only because -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
