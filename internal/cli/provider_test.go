package cli

import (
	"testing"

	"github.com/agbru/bigcalc/internal/ui"
)

func TestCLIColorProvider(t *testing.T) {
	original := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(original)

	provider := CLIColorProvider{}

	ui.SetCurrentTheme(ui.DarkTheme)
	if provider.Yellow() != ui.DarkTheme.Warning {
		t.Errorf("Yellow = %q, want %q", provider.Yellow(), ui.DarkTheme.Warning)
	}
	if provider.Reset() != ui.DarkTheme.Reset {
		t.Errorf("Reset = %q, want %q", provider.Reset(), ui.DarkTheme.Reset)
	}

	ui.SetCurrentTheme(ui.NoColorTheme)
	if provider.Yellow() != "" || provider.Reset() != "" {
		t.Error("codes should be empty without colours")
	}
}
