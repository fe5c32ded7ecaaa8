// Package config provides the configuration management for the bigcalc application.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments, and performs validation on the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/pkg/models"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigcalc.
	// Environment variables provide an alternative to CLI flags for configuration,
	// following the 12-Factor App methodology.
	EnvPrefix = "BIGCALC_"
)

// Default configuration values.
// These can be overridden via command-line flags, environment variables or
// the .env file.
const (
	// DefaultOp runs every operation and prints the full report.
	DefaultOp = models.OpAll
	// DefaultAlgo is the default division strategy.
	DefaultAlgo = "long"
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultEnvFile is the .env file read at startup when present.
	DefaultEnvFile = ".env"
	// DefaultMaxDigits bounds operand length in server mode.
	DefaultMaxDigits = 10_000
)

// SupportedShells lists the shells accepted by -completion.
var SupportedShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig aggregates the application's configuration parameters, parsed from
// command-line flags and the environment.
type AppConfig struct {
	// A and B are the raw operand texts. They are parsed by the caller so
	// operand errors can carry the parser's message.
	A string
	B string
	// Op selects the operation: "all" or one of models.Operations.
	Op string
	// Algo names the division strategy, or "all" to run and compare every one.
	Algo string
	// Timeout sets the maximum duration for the calculation.
	Timeout time.Duration
	// Verbose, if true, displays results in full instead of truncating them.
	Verbose bool
	// Details, if true, adds digit counts and durations to the report.
	Details bool
	// JSONOutput, if true, outputs the report in JSON format.
	JSONOutput bool
	// Quiet mode prints bare values for scripting.
	Quiet bool
	// OutputFile, if specified, also saves the report to this file path.
	OutputFile string
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// MaxDigits bounds operand length in server mode.
	MaxDigits int
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// Menu forces the original two-number menu even when operands are given.
	Menu bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// Completion, if set, generates a shell completion script for the specified shell.
	Completion string
	// EnvFile is the path of the .env file that was consulted.
	EnvFile string
	// LogLevel overrides the zerolog level (debug, info, warn, error,
	// disabled). Empty keeps the per-mode default.
	LogLevel string
}

// HasOperands reports whether both operands were supplied.
func (c AppConfig) HasOperands() bool {
	return c.A != "" && c.B != ""
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the chosen
// operation and algorithm are supported.
//
// Parameters:
//   - availableAlgos: the registered division strategy names.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("max-digits must be strictly positive: %d", c.MaxDigits)
	}
	if c.Op != models.OpAll && !slices.Contains(models.Operations, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: 'all' or [%s]", c.Op, strings.Join(models.Operations, ", "))
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.Completion != "" && !slices.Contains(SupportedShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell: '%s'. Supported shells are: [%s]", c.Completion, strings.Join(SupportedShells, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if (c.A == "") != (c.B == "") && !c.Menu && !c.ServerMode && !c.Interactive && c.Completion == "" {
		return apperrors.NewConfigError("both -a and -b must be given for a one-shot calculation")
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Values come from, in order of precedence: explicit flags, the
// process environment, the .env file and the built-in defaults.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: the command-line arguments (typically os.Args[1:]).
//   - errorWriter: where parsing errors and usage information are printed.
//   - availableAlgos: A slice of valid division strategy names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing, .env loading or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Division strategy: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))
	opHelp := fmt.Sprintf("Operation: 'all' or one of [%s].", strings.Join(models.Operations, ", "))

	config := AppConfig{}
	fs.StringVar(&config.A, "a", "", "First operand.")
	fs.StringVar(&config.B, "b", "", "Second operand.")
	fs.StringVar(&config.Op, "op", DefaultOp, opHelp)
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display results in full (they can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display digit counts and durations.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the report in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - bare values for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Maximum operand length accepted by the server.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Menu, "menu", false, "Run the two-number menu even when operands are given.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.LogLevel, "log-level", "", "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.EnvFile, "env-file", DefaultEnvFile, "Path of the .env file read at startup.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	env, err := newEnvSource(config.EnvFile, isFlagSet(fs, "env-file"))
	if err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	// Apply environment variable overrides for flags not explicitly set
	env.applyOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Op = strings.ToLower(config.Op)
	config.Completion = strings.ToLower(config.Completion)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
