package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Errorf("ByName(nope) = %q, want %q", got, FlexokiDark.Name)
	}
	if got := ByName("terminal").Name; got != "terminal" {
		t.Errorf("ByName(terminal) = %q", got)
	}
}

func TestCategoryColorWraps(t *testing.T) {
	th := FlexokiDark
	if th.CategoryColor(0) != th.Orange {
		t.Errorf("CategoryColor(0) = %v, want Orange", th.CategoryColor(0))
	}
	if th.CategoryColor(8) != th.CategoryColor(0) {
		t.Error("CategoryColor should wrap around the palette")
	}
	if th.CategoryColor(-1) != th.TextMuted {
		t.Errorf("CategoryColor(-1) = %v, want TextMuted", th.CategoryColor(-1))
	}
}
