package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/pkg/models"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the report (empty for no file output).
	OutputFile string
	// JSON selects the JSON encoding for both stdout and the file.
	JSON bool
	ReportOptions
}

// WriteJSONReport encodes r as indented JSON.
func WriteJSONReport(out io.Writer, r models.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteReportToFile saves r to config.OutputFile, creating parent
// directories. The file always holds full values: JSON when config.JSON is
// set, otherwise a commented header followed by the report lines.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(op string, r models.Report, config OutputConfig) (err error) {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.WrapError(cerr, "failed to close output file")
		}
	}()

	if config.JSON {
		return WriteJSONReport(file, r)
	}

	algos := make([]string, 0, len(r.Divisions))
	for _, d := range r.Divisions {
		algos = append(algos, d.Algorithm)
	}
	fmt.Fprintf(file, "# BigInt Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", op)
	if len(algos) > 0 {
		fmt.Fprintf(file, "# Division strategies: %s\n", strings.Join(algos, ", "))
	}
	fmt.Fprintf(file, "# Digits: %d and %d\n\n", r.A.Len(), r.B.Len())

	// Plain text only: colour codes never reach the file.
	if op == models.OpAll {
		writeReportLines(file, r, bigint.BigInt.String)
		return nil
	}
	text, _ := selectValue(op, r, bigint.BigInt.String)
	fmt.Fprintf(file, "%s: %s\n", operationLabels[op], text)
	return nil
}

// DisplayReportWithConfig prints r to out according to config and saves it
// to the output file when one is configured.
//
// Returns:
//   - error: An error if encoding or file output fails.
func DisplayReportWithConfig(out io.Writer, op string, r models.Report, config OutputConfig) error {
	if config.JSON {
		if err := WriteJSONReport(out, r); err != nil {
			return err
		}
	} else {
		DisplayReport(out, op, r, config.ReportOptions)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteReportToFile(op, r, config); err != nil {
		return err
	}
	if !config.Quiet && !config.JSON {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n", ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
	}
	return nil
}
