package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one flag for the completion generators.
type completionFlag struct {
	name   string // long name without dashes
	short  string // single-letter alias, may be empty
	help   string
	values string // space-separated suggestions; "@algo", "@shell", "@file" are placeholders
}

// completionFlags is the flag table shared by every shell.
var completionFlags = []completionFlag{
	{name: "help", short: "h", help: "Show help message"},
	{name: "version", short: "V", help: "Show version information"},
	{name: "a", help: "First operand", values: "-"},
	{name: "b", help: "Second operand", values: "-"},
	{name: "op", help: "Operation", values: "all add sub mul div cmp"},
	{name: "algo", help: "Division strategy", values: "@algo"},
	{name: "timeout", help: "Maximum execution time", values: "10s 1m 5m 10m"},
	{name: "v", help: "Display full values"},
	{name: "details", short: "d", help: "Show digit counts and durations"},
	{name: "json", help: "Output in JSON format"},
	{name: "quiet", short: "q", help: "Quiet mode for scripts"},
	{name: "output", short: "o", help: "Output file path", values: "@file"},
	{name: "server", help: "Start HTTP server mode"},
	{name: "port", help: "Server port", values: "8080 3000 5000 9000"},
	{name: "max-digits", help: "Operand length limit in server mode", values: "1000 10000 100000"},
	{name: "interactive", help: "Start interactive REPL mode"},
	{name: "menu", help: "Run the two-number menu"},
	{name: "no-color", help: "Disable colored output"},
	{name: "completion", help: "Generate shell completion script", values: "@shell"},
	{name: "env-file", help: "Path of the .env file", values: "@file"},
}

const completionShells = "bash zsh fish powershell"

// GenerateCompletion writes a completion script for shell to out.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - algorithms: the registered division strategy names.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := strings.Join(append(append([]string{}, algorithms...), "all"), " ")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algos)
	case "zsh":
		script = zshCompletion(algos)
	case "fish":
		script = fishCompletion(algos)
	case "powershell", "ps":
		script = powerShellCompletion(algos)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	_, err := io.WriteString(out, script)
	return err
}

// suggestions expands the placeholders of a flag's value list.
func (f completionFlag) suggestions(algos string) string {
	switch f.values {
	case "@algo":
		return algos
	case "@shell":
		return completionShells
	case "@file", "-":
		return ""
	}
	return f.values
}

func (f completionFlag) spellings() []string {
	s := []string{"-" + f.name}
	if len(f.name) > 1 {
		s = append(s, "--"+f.name)
	}
	if f.short != "" {
		s = append(s, "-"+f.short)
	}
	return s
}

func bashCompletion(algos string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range completionFlags {
		opts = append(opts, f.spellings()...)
		if f.values == "" || f.values == "-" {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n", strings.Join(f.spellings(), "|"))
		if f.values == "@file" {
			cases.WriteString("            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n")
		} else {
			fmt.Fprintf(&cases, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", f.suggestions(algos))
		}
		cases.WriteString("            return 0\n            ;;\n")
	}

	var b strings.Builder
	b.WriteString("# Bash completion script for bigcalc\n")
	b.WriteString("# Add this to your ~/.bashrc or ~/.bash_completion\n\n")
	b.WriteString("_bigcalc_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	b.WriteString(cases.String())
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(opts, " "))
	b.WriteString("}\n\n")
	b.WriteString("complete -F _bigcalc_completions bigcalc\n")
	return b.String()
}

func zshCompletion(algos string) string {
	var b strings.Builder
	b.WriteString("#compdef bigcalc\n\n")
	b.WriteString("# Zsh completion script for bigcalc\n")
	b.WriteString("# Place this file in a directory of your $fpath as _bigcalc\n\n")
	b.WriteString("_bigcalc() {\n")
	b.WriteString("    _arguments -s \\\n")
	for _, f := range completionFlags {
		spec := ""
		switch vals := f.suggestions(algos); {
		case f.values == "@file":
			spec = ":file:_files"
		case f.values == "-":
			spec = ":integer:"
		case vals != "":
			spec = fmt.Sprintf(":value:(%s)", vals)
		}
		names := f.spellings()
		if len(names) > 1 {
			fmt.Fprintf(&b, "        '(%s)'{%s}'[%s]%s' \\\n", strings.Join(names, " "), strings.Join(names, ","), f.help, spec)
		} else {
			fmt.Fprintf(&b, "        '%s[%s]%s' \\\n", names[0], f.help, spec)
		}
	}
	b.WriteString("        && return 0\n")
	b.WriteString("}\n\n")
	b.WriteString("_bigcalc \"$@\"\n")
	return b.String()
}

func fishCompletion(algos string) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for bigcalc\n")
	b.WriteString("# Add this to ~/.config/fish/completions/bigcalc.fish\n\n")
	b.WriteString("complete -c bigcalc -f\n")
	for _, f := range completionFlags {
		line := "complete -c bigcalc"
		if len(f.name) == 1 {
			line += " -s " + f.name
		} else {
			line += " -l " + f.name
		}
		if f.short != "" {
			line += " -s " + f.short
		}
		line += fmt.Sprintf(" -d '%s'", f.help)
		switch vals := f.suggestions(algos); {
		case f.values == "@file":
			line += " -rF"
		case f.values == "-":
			line += " -x"
		case vals != "":
			line += fmt.Sprintf(" -xa '%s'", vals)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func powerShellCompletion(algos string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range completionFlags {
		opts = append(opts, "'"+f.spellings()[0]+"'")
		vals := f.suggestions(algos)
		if vals == "" {
			continue
		}
		quoted := make([]string, 0)
		for _, v := range strings.Fields(vals) {
			quoted = append(quoted, "'"+v+"'")
		}
		fmt.Fprintf(&cases, "        '%s' { $values = @(%s) }\n", f.spellings()[0], strings.Join(quoted, ", "))
	}

	var b strings.Builder
	b.WriteString("# PowerShell completion script for bigcalc\n")
	b.WriteString("# Add this to your $PROFILE\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName bigcalc -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    $prev = if ($elements.Count -gt 1) { $elements[$elements.Count - 1].ToString() } else { '' }\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 2) { $prev = $elements[$elements.Count - 2].ToString() }\n\n")
	b.WriteString("    $values = $null\n")
	b.WriteString("    switch ($prev) {\n")
	b.WriteString(cases.String())
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    if ($null -eq $values) { $values = @(%s) }\n\n", strings.Join(opts, ", "))
	b.WriteString("    $values | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
