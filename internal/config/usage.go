package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/bigcalc/internal/ui"
)

// usageExamples are printed after the flag list.
var usageExamples = []string{
	"-a 123 -b 877",
	"-a 17 -b 5 -op div -algo all",
	"-a 999 -b 999 -json -o report.json",
	"-interactive",
	"-server -port 9090",
}

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// NO_COLOR applies before the theme is initialised.
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sBigInt Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact arithmetic on decimal integers of any length.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})

		fmt.Fprintf(out, "\n%sExamples:%s\n", t.Warning, t.Reset)
		for _, ex := range usageExamples {
			fmt.Fprintf(out, "  %s %s\n", fs.Name(), ex)
		}
		fmt.Fprintf(out, "\nWith no operands the interactive menu starts. Flags can also be set\n")
		fmt.Fprintf(out, "through %s* environment variables or a .env file.\n\n", EnvPrefix)
	}
}
