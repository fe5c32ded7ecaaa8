package cli

import apperrors "github.com/agbru/bigcalc/internal/errors"

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current theme,
// so error status lines share the colours of the rest of the CLI.
type CLIColorProvider struct{}

// Yellow returns the warning colour of the current theme.
func (CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset code of the current theme.
func (CLIColorProvider) Reset() string { return ColorReset() }
