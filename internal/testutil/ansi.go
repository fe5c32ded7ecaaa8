// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"regexp"
	"strings"
)

// ansiRegex matches CSI escape sequences (ESC '[' parameters final-letter),
// which is every code the ui themes emit.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from s so that coloured CLI output
// can be compared with plain text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// PlainLines strips ANSI codes from s and splits it into lines, dropping the
// empty element left by a trailing newline.
func PlainLines(s string) []string {
	s = strings.TrimSuffix(StripAnsiCodes(s), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
