package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable_AlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers:    []string{"Title", "Amount"},
		Rows:       [][]string{{"Tea", "₹1,200"}, {"Groceries", "₹50"}},
		RightAlign: []bool{false, true},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestRenderTable_RuleRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Title", "Amount"},
		Rows:    [][]string{{"Tea", "₹10"}, {"---"}, {"Total", "₹10"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[4], "├") {
		t.Errorf("rule row = %q", lines[4])
	}
	if lipgloss.Width(lines[4]) != lipgloss.Width(lines[0]) {
		t.Errorf("rule width differs from border")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q", got)
	}
}

func TestRenderHorizontalBar_ZeroMax(t *testing.T) {
	if got := RenderHorizontalBar(5, 0, 20); got != "" {
		t.Errorf("bar with zero max = %q", got)
	}
	if got := lipgloss.Width(RenderHorizontalBar(50, 100, 20)); got != 10 {
		t.Errorf("half bar width = %d, want 10", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{0, 10}); got != "▁█" {
		t.Errorf("sparkline = %q", got)
	}
}
