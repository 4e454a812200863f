package pipeline

import (
	"testing"

	"github.com/theirongolddev/spendwatch/internal/model"
)

func TestMatches(t *testing.T) {
	e := model.Expense{Title: "Lunch with Team", Category: model.Food}
	tests := []struct {
		search, category string
		want             bool
	}{
		{"", "All", true},
		{"lunch", "All", true},
		{"TEAM", "Food", true},
		{"dinner", "All", false},
		{"", "Transport", false},
		{"lunch", "food", false},
	}
	for _, tt := range tests {
		if got := Matches(e, tt.search, tt.category); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.search, tt.category, got, tt.want)
		}
	}
}

func TestFilter(t *testing.T) {
	list := []model.Expense{
		{ID: "1", Title: "Bus pass", Category: model.Transport},
		{ID: "2", Title: "Bus snacks", Category: model.Food},
		{ID: "3", Title: "Train", Category: model.Transport},
	}

	got := Filter(list, "bus", "All")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("Filter(bus, All) = %+v", got)
	}

	got = Filter(list, "bus", "Transport")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Filter(bus, Transport) = %+v", got)
	}

	got = Filter(list, "", "All")
	if len(got) != len(list) {
		t.Fatalf("Filter(\"\", All) len = %d, want %d", len(got), len(list))
	}
	got[0].Title = "changed"
	if list[0].Title != "Bus pass" {
		t.Error("Filter result aliases input")
	}
}

func TestCategoryOptions(t *testing.T) {
	list := []model.Expense{
		{Category: model.Shopping},
		{Category: model.Food},
		{Category: model.Shopping},
		{Category: model.Other},
	}
	got := CategoryOptions(list)
	want := []string{"All", "Shopping", "Food", "Other"}
	if len(got) != len(want) {
		t.Fatalf("CategoryOptions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CategoryOptions[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := CategoryOptions(nil); len(got) != 1 || got[0] != "All" {
		t.Errorf("CategoryOptions(nil) = %v, want [All]", got)
	}
}
