package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/division"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the division strategy used until "algo" changes it.
	DefaultAlgo string
	// Timeout is the maximum duration of each division.
	Timeout time.Duration
	// Verbose prints values in full instead of truncating them.
	Verbose bool
}

// REPL is an interactive calculator session.
type REPL struct {
	config      REPLConfig
	registry    map[string]division.Divider
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// binaryOps maps REPL commands and their symbol aliases to operation names.
var binaryOps = map[string]string{
	"add": "add", "+": "add",
	"sub": "sub", "-": "sub",
	"mul": "mul", "*": "mul",
	"div": "div", "/": "div",
	"cmp": "cmp",
}

// NewREPL creates a REPL over the given division strategies.
func NewREPL(registry map[string]division.Divider, config REPLConfig) *REPL {
	r := &REPL{
		config:   config,
		registry: registry,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	r.currentAlgo = config.DefaultAlgo
	if _, ok := registry[r.currentAlgo]; !ok {
		if names := r.algoNames(); len(names) > 0 {
			r.currentAlgo = names[0]
		}
	}
	if r.config.Timeout <= 0 {
		r.config.Timeout = time.Minute
	}
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit" or the end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ColorGreen()+"big> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(input) == "") {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s        %sBigInt Calculator - Interactive Mode%s              %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %sadd|sub|mul|div <x> <y>%s - Arithmetic (aliases + - * /)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %scmp <x> <y>%s             - Compare two integers\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s             - Change division strategy (%s)\n", ColorYellow(), ColorReset(), strings.Join(r.algoNames(), ", "))
	fmt.Fprintf(r.out, "  %scompare <x> <y>%s         - Divide with every strategy and cross-check\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %slist%s                    - List division strategies\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s                  - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                    - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s             - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// algoNames returns the registered strategy names in sorted order.
func (r *REPL) algoNames() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// processCommand executes one input line. It returns false when the
// session should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	if op, ok := binaryOps[cmd]; ok {
		r.cmdBinary(op, cmd, args)
		return true
	}

	switch cmd {
	case "algo":
		r.cmdAlgo(args)
	case "compare":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
	}
	return true
}

// parseOperands parses exactly two operands, printing the problem otherwise.
func (r *REPL) parseOperands(usage string, args []string) (x, y bigint.BigInt, ok bool) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: %s <x> <y>%s\n", ColorRed(), usage, ColorReset())
		return x, y, false
	}
	var err error
	if x, err = bigint.Parse(args[0]); err != nil {
		r.printError(err)
		return x, y, false
	}
	if y, err = bigint.Parse(args[1]); err != nil {
		r.printError(err)
		return x, y, false
	}
	return x, y, true
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
}

func (r *REPL) cmdBinary(op, cmd string, args []string) {
	x, y, ok := r.parseOperands(cmd, args)
	if !ok {
		return
	}

	var result bigint.BigInt
	switch op {
	case "add":
		result = x.Add(y)
	case "sub":
		result = x.Sub(y)
	case "mul":
		result = x.Mul(y)
	case "cmp":
		fmt.Fprintf(r.out, "  %s\n", strings.Join(comparisonLines(x.Cmp(y)), "\n  "))
		return
	case "div":
		q, duration, err := r.divide(x, y)
		if err != nil {
			r.printError(err)
			return
		}
		result = q
		defer fmt.Fprintf(r.out, "  Time: %s%s%s\n", ColorGreen(), FormatExecutionDuration(duration), ColorReset())
	}
	fmt.Fprintf(r.out, "  = %s%s%s\n", ColorGreen(), formatValue(result, r.config.Verbose), ColorReset())
}

// divide runs the current strategy with a progress display.
func (r *REPL) divide(x, y bigint.BigInt) (bigint.BigInt, time.Duration, error) {
	d, ok := r.registry[r.currentAlgo]
	if !ok {
		return bigint.BigInt{}, 0, fmt.Errorf("division strategy not found: %s", r.currentAlgo)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan division.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	q, err := d.Divide(ctx, progressChan, 0, x, y)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()
	return q, duration, err
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ColorRed(), ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.algoNames(), ", "))
		return
	}

	name := strings.ToLower(args[0])
	d, ok := r.registry[name]
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ColorRed(), name, ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.algoNames(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Division strategy changed to: %s%s%s\n", ColorGreen(), d.Name(), ColorReset())
}

// cmdCompare divides with every strategy in turn and flags disagreements.
func (r *REPL) cmdCompare(args []string) {
	x, y, ok := r.parseOperands("compare", args)
	if !ok {
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for %s / %s:%s\n", ColorBold(), formatValue(x, false), formatValue(y, false), ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ColorCyan(), ColorReset())

	var first *bigint.BigInt
	for _, name := range r.algoNames() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		q, err := r.registry[name].Divide(ctx, nil, 0, x, y)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s: %sError - %v%s\n", ColorYellow(), name, ColorReset(), ColorRed(), err, ColorReset())
			continue
		}
		if first == nil {
			first = &q
		}
		status := ColorGreen() + "✓" + ColorReset()
		if !q.Equal(*first) {
			status = ColorRed() + "✗ INCONSISTENT" + ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-10s%s: %s%12s%s %s\n", ColorYellow(), name, ColorReset(),
			ColorCyan(), FormatExecutionDuration(duration), ColorReset(), status)
	}
	if first != nil {
		fmt.Fprintf(r.out, "  = %s%s%s\n", ColorGreen(), formatValue(*first, r.config.Verbose), ColorReset())
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sDivision strategies:%s\n", ColorBold(), ColorReset())
	for _, name := range r.algoNames() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ColorYellow(), name, ColorReset(), r.registry[name].Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Strategy: %s%s%s\n", ColorCyan(), r.currentAlgo, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	verbose := "no"
	if r.config.Verbose {
		verbose = "yes"
	}
	fmt.Fprintf(r.out, "  Verbose:  %s%s%s\n", ColorCyan(), verbose, ColorReset())
	fmt.Fprintln(r.out)
}
