package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/model"
)

func TestField(t *testing.T) {
	tests := []struct {
		name, field, value, want string
	}{
		{"empty title", Title, "", "Title is required"},
		{"blank title", Title, "   ", "Title is required"},
		{"short title", Title, "ab", "Minimum 3 characters"},
		{"padded short title", Title, "  ab  ", "Minimum 3 characters"},
		{"min title", Title, "abc", ""},
		{"max title", Title, strings.Repeat("x", 50), ""},
		{"long title", Title, strings.Repeat("x", 51), "Maximum 50 characters"},
		{"multibyte title", Title, "चाय", ""},
		{"empty amount", Amount, "", "Amount is required"},
		{"text amount", Amount, "abc", "Enter valid amount"},
		{"zero amount", Amount, "0", "Enter valid amount"},
		{"negative amount", Amount, "-5", "Enter valid amount"},
		{"decimal amount", Amount, "12.50", ""},
		{"max amount", Amount, "10000000", ""},
		{"large amount", Amount, "10000000.01", "Amount too large"},
		{"empty category", Category, "", "Select category"},
		{"unknown category", Category, "Rent", "Select category"},
		{"valid category", Category, "Food", ""},
		{"unknown field", "notes", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.field, tt.value); got != tt.want {
				t.Errorf("Field(%q, %q) = %q, want %q", tt.field, tt.value, got, tt.want)
			}
		})
	}
}

func TestForm_SetRevalidatesOnlyTouched(t *testing.T) {
	var f Form
	f.Set(Title, "a")
	if f.Error(Title) != "" {
		t.Errorf("untouched field has error %q", f.Error(Title))
	}

	f.Blur(Title)
	if got := f.Error(Title); got != "Minimum 3 characters" {
		t.Errorf("after blur Error = %q, want Minimum 3 characters", got)
	}

	f.Set(Title, "abcd")
	if got := f.Error(Title); got != "" {
		t.Errorf("after fix Error = %q, want empty", got)
	}
}

func TestForm_ValidateAllBlocksSubmit(t *testing.T) {
	var f Form
	f.Set(Title, "Lunch")
	f.Set(Amount, "abc")

	if f.ValidateAll() {
		t.Fatal("ValidateAll = true, want false")
	}
	for _, name := range Fields {
		if !f.Touched(name) {
			t.Errorf("%s not touched after ValidateAll", name)
		}
	}
	errs := f.Errors()
	if errs[Amount] != "Enter valid amount" || errs[Category] != "Select category" {
		t.Errorf("Errors = %v", errs)
	}
	if _, ok := errs[Title]; ok {
		t.Errorf("Title should have no error, got %q", errs[Title])
	}

	if _, err := f.Input(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Input err = %v, want ErrInvalid", err)
	}
}

func TestForm_Input(t *testing.T) {
	var f Form
	f.Set(Title, "  Groceries ")
	f.Set(Amount, "1250.75")
	f.Set(Category, "Food")

	if f.Valid() != true {
		t.Fatal("Valid = false for complete form")
	}
	in, err := f.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if in.Title != "Groceries" {
		t.Errorf("Title = %q, want Groceries", in.Title)
	}
	if !in.Amount.Equal(decimal.RequireFromString("1250.75")) {
		t.Errorf("Amount = %s, want 1250.75", in.Amount)
	}
	if in.Category != model.Food {
		t.Errorf("Category = %q, want Food", in.Category)
	}
}

func TestForm_ValidRequiresValues(t *testing.T) {
	var f Form
	if f.Valid() {
		t.Error("empty form reported valid")
	}
	f.Set(Title, "Taxi")
	f.Set(Amount, "90")
	if f.Valid() {
		t.Error("form without category reported valid")
	}
}

func TestNewForm_Prepopulates(t *testing.T) {
	f := NewForm(model.ExpenseInput{
		Title:    "Rent",
		Amount:   decimal.NewFromInt(15000),
		Category: model.Utilities,
	})
	if f.Value(Amount) != "15000" || f.Value(Category) != "Utilities" {
		t.Errorf("values = %q, %q", f.Value(Amount), f.Value(Category))
	}
	if f.Valid() != true {
		t.Error("prepopulated form should be valid")
	}
}
