package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// envSource resolves BIGCALC_* variables from the process environment first
// and the .env file second. The process environment is never modified.
type envSource struct {
	file map[string]string
}

// newEnvSource reads the .env file at path. A missing file is only an error
// when the path was given explicitly with -env-file.
func newEnvSource(path string, explicit bool) (envSource, error) {
	if path == "" {
		return envSource{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return envSource{}, nil
		}
		return envSource{}, apperrors.NewConfigError("cannot read env file %q: %v", path, err)
	}
	return envSource{file: values}, nil
}

// lookup returns the value of EnvPrefix+key, or "" when it is unset everywhere.
func (s envSource) lookup(key string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return s.file[EnvPrefix+key]
}

// getString returns the value for key, or the default value if not set.
func (s envSource) getString(key, defaultVal string) string {
	if val := s.lookup(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns the value for key parsed as int, or the default value if not
// set or invalid.
func (s envSource) getInt(key string, defaultVal int) int {
	if val := s.lookup(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getBool returns the value for key parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func (s envSource) getBool(key string, defaultVal bool) bool {
	switch strings.ToLower(s.lookup(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// getDuration returns the value for key parsed as time.Duration, or the default
// value if not set or invalid. Accepts formats like "5m", "30s", "1h30m".
func (s envSource) getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := s.lookup(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyOverrides applies environment values to the configuration for any
// flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > environment > .env file > defaults.
//
// Supported variables:
//   - BIGCALC_A, BIGCALC_B: operands (string)
//   - BIGCALC_OP: operation (string: all, add, sub, mul, div, cmp)
//   - BIGCALC_ALGO: division strategy (string: long, subtract, big, all)
//   - BIGCALC_TIMEOUT: calculation timeout (duration: "5m", "30s")
//   - BIGCALC_PORT: port for server mode (string)
//   - BIGCALC_MAX_DIGITS: operand length limit in server mode (int)
//   - BIGCALC_OUTPUT: output file path (string)
//   - BIGCALC_LOG_LEVEL: zerolog level name (string)
//   - BIGCALC_SERVER, BIGCALC_JSON, BIGCALC_VERBOSE, BIGCALC_DETAILS,
//     BIGCALC_QUIET, BIGCALC_INTERACTIVE, BIGCALC_MENU, BIGCALC_NO_COLOR (bool)
func (s envSource) applyOverrides(config *AppConfig, fs *flag.FlagSet) {
	s.applyStringOverrides(config, fs)
	s.applyNumericOverrides(config, fs)
	s.applyBooleanOverrides(config, fs)
}

func (s envSource) applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "a") {
		config.A = s.getString("A", config.A)
	}
	if !isFlagSet(fs, "b") {
		config.B = s.getString("B", config.B)
	}
	if !isFlagSet(fs, "op") {
		config.Op = s.getString("OP", config.Op)
	}
	if !isFlagSet(fs, "algo") {
		config.Algo = s.getString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "port") {
		config.Port = s.getString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = s.getString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = s.getString("OUTPUT", config.OutputFile)
	}
}

func (s envSource) applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = s.getDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "max-digits") {
		config.MaxDigits = s.getInt("MAX_DIGITS", config.MaxDigits)
	}
}

func (s envSource) applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = s.getBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = s.getBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = s.getBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "d") && !isFlagSet(fs, "details") {
		config.Details = s.getBool("DETAILS", config.Details)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = s.getBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "interactive") {
		config.Interactive = s.getBool("INTERACTIVE", config.Interactive)
	}
	if !isFlagSet(fs, "menu") {
		config.Menu = s.getBool("MENU", config.Menu)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = s.getBool("NO_COLOR", config.NoColor)
	}
}
