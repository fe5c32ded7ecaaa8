package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/division"
)

// GetDividersToRun returns the strategies selected by cfg.Algo: every
// registered strategy in name order for "all", otherwise the single named
// one. An unknown name yields nil.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The divider factory to retrieve implementations from.
//
// Returns:
//   - []division.Divider: The strategies to execute.
func GetDividersToRun(cfg config.AppConfig, factory division.DividerFactory) []division.Divider {
	if cfg.Algo == "all" {
		keys := factory.List()
		dividers := make([]division.Divider, 0, len(keys))
		for _, k := range keys {
			if d, err := factory.Get(k); err == nil {
				dividers = append(dividers, d)
			}
		}
		return dividers
	}
	if d, err := factory.Get(cfg.Algo); err == nil {
		return []division.Divider{d}
	}
	return nil
}

// PrintExecutionConfig displays the operands' sizes, the operation, the
// timeout and the runtime environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - x, y: the parsed operands.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, x, y bigint.BigInt, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Operands: %s%s%s and %s%s%s digits, operation %s%s%s, timeout %s%s%s.\n",
		ColorCyan(), formatNumberString(fmt.Sprint(x.Len())), ColorReset(),
		ColorCyan(), formatNumberString(fmt.Sprint(y.Len())), ColorReset(),
		ColorMagenta(), cfg.Op, ColorReset(),
		ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode displays whether one strategy runs or all are compared.
//
// Parameters:
//   - dividers: The strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(dividers []division.Divider, out io.Writer) {
	var modeDesc string
	switch {
	case len(dividers) > 1:
		modeDesc = "Parallel comparison of all division strategies"
	case len(dividers) == 1:
		modeDesc = fmt.Sprintf("Division with the %s%s%s strategy", ColorGreen(), dividers[0].Name(), ColorReset())
	default:
		modeDesc = "No division strategy selected"
	}
	writeOut(out, "Execution mode: %s.\n", modeDesc)
	writeOut(out, "\n--- Starting Execution ---\n")
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
