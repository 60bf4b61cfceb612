package color

import (
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	original := lipgloss.HasDarkBackground()
	defer lipgloss.SetHasDarkBackground(original)

	tests := []struct {
		theme string
		dark  bool
	}{
		{"dark", true},
		{"light", false},
		{"DARK", true},
	}
	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			if err := SetTheme(tt.theme); err != nil {
				t.Fatalf("SetTheme(%q) returned %v", tt.theme, err)
			}
			if lipgloss.HasDarkBackground() != tt.dark {
				t.Errorf("dark background = %v after SetTheme(%q)", lipgloss.HasDarkBackground(), tt.theme)
			}
		})
	}
}

func TestSetTheme_AutoKeepsDetection(t *testing.T) {
	original := lipgloss.HasDarkBackground()
	defer lipgloss.SetHasDarkBackground(original)

	Initialize(true)
	if err := SetTheme("auto"); err != nil {
		t.Fatalf("SetTheme(auto) returned %v", err)
	}
	if !lipgloss.HasDarkBackground() {
		t.Error("auto must not change the background")
	}
}

func TestSetTheme_Unknown(t *testing.T) {
	if err := SetTheme("solarized"); err == nil {
		t.Error("expected an error for an unknown theme")
	}
}

func TestStatusKeepsText(t *testing.T) {
	for _, s := range []string{"PASS", "PARTIAL", "FAIL"} {
		if got := stripansi.Strip(Status(s)); got != s {
			t.Errorf("Status(%q) rendered as %q", s, got)
		}
	}
}
