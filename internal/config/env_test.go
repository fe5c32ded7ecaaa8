package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// writeEnvFile writes a .env file into a fresh temp dir and returns its path.
func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BIGCALC_A":           "123",
		"BIGCALC_B":           "-877",
		"BIGCALC_OP":          "sub",
		"BIGCALC_ALGO":        "big",
		"BIGCALC_TIMEOUT":     "2m",
		"BIGCALC_PORT":        "3000",
		"BIGCALC_MAX_DIGITS":  "64",
		"BIGCALC_OUTPUT":      "out.json",
		"BIGCALC_SERVER":      "true",
		"BIGCALC_JSON":        "1",
		"BIGCALC_VERBOSE":     "yes",
		"BIGCALC_DETAILS":     "true",
		"BIGCALC_QUIET":       "true",
		"BIGCALC_INTERACTIVE": "true",
		"BIGCALC_MENU":        "true",
		"BIGCALC_NO_COLOR":    "true",
		"BIGCALC_LOG_LEVEL":   "debug",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := ParseConfig("bigcalc", []string{}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.A != "123" || cfg.B != "-877" {
		t.Errorf("Expected operands from env, got %q and %q", cfg.A, cfg.B)
	}
	if cfg.Op != "sub" || cfg.Algo != "big" {
		t.Errorf("Expected op sub and algo big, got %s and %s", cfg.Op, cfg.Algo)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel debug, got %q", cfg.LogLevel)
	}
	if cfg.Port != "3000" || cfg.MaxDigits != 64 || cfg.OutputFile != "out.json" {
		t.Errorf("Unexpected port/max-digits/output: %s %d %s", cfg.Port, cfg.MaxDigits, cfg.OutputFile)
	}
	if !cfg.ServerMode || !cfg.JSONOutput || !cfg.Verbose || !cfg.Details || !cfg.Quiet ||
		!cfg.Interactive || !cfg.Menu || !cfg.NoColor {
		t.Errorf("Expected every boolean from env, got %+v", cfg)
	}
}

func TestFlagPrecedenceOverEnv(t *testing.T) {
	t.Setenv("BIGCALC_ALGO", "big")
	t.Setenv("BIGCALC_A", "5")
	t.Setenv("BIGCALC_B", "6")

	cfg, err := ParseConfig("bigcalc", []string{"-algo", "subtract", "-a", "7"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Algo != "subtract" {
		t.Errorf("Expected Algo 'subtract' from flag, got %s", cfg.Algo)
	}
	if cfg.A != "7" || cfg.B != "6" {
		t.Errorf("Expected a=7 from flag and b=6 from env, got %q and %q", cfg.A, cfg.B)
	}
}

func TestEnvFile(t *testing.T) {
	path := writeEnvFile(t, "BIGCALC_A=42\nBIGCALC_B=6\nBIGCALC_OP=div\n# comment\nBIGCALC_ALGO=subtract\n")

	t.Run("FileValuesApply", func(t *testing.T) {
		cfg, err := ParseConfig("bigcalc", []string{"-env-file", path}, io.Discard, testAlgos)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.A != "42" || cfg.B != "6" || cfg.Op != "div" || cfg.Algo != "subtract" {
			t.Errorf("Expected values from env file, got %+v", cfg)
		}
		if cfg.EnvFile != path {
			t.Errorf("Expected EnvFile %s, got %s", path, cfg.EnvFile)
		}
	})

	t.Run("ProcessEnvWins", func(t *testing.T) {
		t.Setenv("BIGCALC_ALGO", "big")
		cfg, err := ParseConfig("bigcalc", []string{"-env-file", path}, io.Discard, testAlgos)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Algo != "big" {
			t.Errorf("Expected Algo 'big' from the environment, got %s", cfg.Algo)
		}
	})

	t.Run("FileDoesNotTouchEnvironment", func(t *testing.T) {
		if _, ok := os.LookupEnv("BIGCALC_OP"); ok {
			t.Error("the env file must not be exported into the process environment")
		}
	})

	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := ParseConfig("bigcalc", []string{"-env-file", filepath.Join(t.TempDir(), "nope.env")}, io.Discard, testAlgos)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("Expected ConfigError for a missing explicit env file, got %v", err)
		}
	})

	t.Run("MissingDefaultFile", func(t *testing.T) {
		src, err := newEnvSource(filepath.Join(t.TempDir(), ".env"), false)
		if err != nil {
			t.Errorf("A missing default env file should be ignored, got %v", err)
		}
		if src.file != nil {
			t.Error("Expected no file values")
		}
	})
}

func TestEnvHelpers(t *testing.T) {
	src := envSource{file: map[string]string{
		EnvPrefix + "FILE_ONLY": "from-file",
		EnvPrefix + "SHADOWED":  "from-file",
		EnvPrefix + "COUNT":     "12",
	}}
	t.Setenv(EnvPrefix+"SHADOWED", "from-env")
	t.Setenv(EnvPrefix+"FLAG", "No")
	t.Setenv(EnvPrefix+"BAD_INT", "abc")
	t.Setenv(EnvPrefix+"WAIT", "1h")

	if got := src.getString("FILE_ONLY", "d"); got != "from-file" {
		t.Errorf("Expected 'from-file', got %q", got)
	}
	if got := src.getString("SHADOWED", "d"); got != "from-env" {
		t.Errorf("Expected 'from-env', got %q", got)
	}
	if got := src.getString("NONEXISTENT", "d"); got != "d" {
		t.Errorf("Expected default, got %q", got)
	}
	if got := src.getInt("COUNT", 0); got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}
	if got := src.getInt("BAD_INT", 7); got != 7 {
		t.Errorf("Expected default 7 for invalid input, got %d", got)
	}
	if got := src.getBool("FLAG", true); got {
		t.Error("Expected false for 'No'")
	}
	if got := src.getBool("NONEXISTENT", true); !got {
		t.Error("Expected default true")
	}
	if got := src.getDuration("WAIT", 0); got != time.Hour {
		t.Errorf("Expected 1h, got %v", got)
	}
}

func TestIsFlagSet(t *testing.T) {
	t.Parallel()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("a", "", "")
	fs.String("b", "", "")
	if err := fs.Parse([]string{"-a", "1"}); err != nil {
		t.Fatal(err)
	}
	if !isFlagSet(fs, "a") || isFlagSet(fs, "b") {
		t.Error("isFlagSet should only report explicitly set flags")
	}
}
