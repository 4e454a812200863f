// Package validate checks expense form input field by field.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/model"
)

// Form field names.
const (
	Title    = "title"
	Amount   = "amount"
	Category = "category"
)

// Fields lists the validated fields in form order.
var Fields = []string{Title, Amount, Category}

// Title length bounds, counted in runes after trimming.
const (
	MinTitleLen = 3
	MaxTitleLen = 50
)

// ErrInvalid is returned when a form is submitted with field errors.
var ErrInvalid = errors.New("validate: form has errors")

// Field returns the error message for value in the named field, or "" if the
// value is acceptable. Unknown field names always pass.
func Field(name, value string) string {
	switch name {
	case Title:
		return titleError(value)
	case Amount:
		return amountError(value)
	case Category:
		if !model.Category(value).Valid() {
			return "Select category"
		}
	}
	return ""
}

func titleError(value string) string {
	v := strings.TrimSpace(value)
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return "Title is required"
	case n < MinTitleLen:
		return "Minimum 3 characters"
	case n > MaxTitleLen:
		return "Maximum 50 characters"
	}
	return ""
}

func amountError(value string) string {
	if value == "" {
		return "Amount is required"
	}
	d, err := ParseAmount(value)
	if err != nil || !d.IsPositive() {
		return "Enter valid amount"
	}
	if d.GreaterThan(model.MaxAmount) {
		return "Amount too large"
	}
	return ""
}

// ParseAmount parses a user-entered amount.
func ParseAmount(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return d, nil
}

// Form tracks field values, which fields the user has visited, and the
// current error for each. The zero value is an empty, untouched form.
type Form struct {
	values  map[string]string
	touched map[string]bool
	errors  map[string]string
}

// NewForm returns a form pre-populated from in, as when editing a record.
func NewForm(in model.ExpenseInput) *Form {
	f := &Form{}
	f.values = map[string]string{
		Title:    in.Title,
		Amount:   in.Amount.String(),
		Category: string(in.Category),
	}
	return f
}

func (f *Form) init() {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if f.touched == nil {
		f.touched = make(map[string]bool)
	}
	if f.errors == nil {
		f.errors = make(map[string]string)
	}
}

// Set stores value for field. A field the user already left is re-validated
// immediately so its message tracks the input.
func (f *Form) Set(field, value string) {
	f.init()
	f.values[field] = value
	if f.touched[field] {
		f.errors[field] = Field(field, value)
	}
}

// Blur marks field as visited and validates it.
func (f *Form) Blur(field string) {
	f.init()
	f.touched[field] = true
	f.errors[field] = Field(field, f.values[field])
}

// ValidateAll validates and touches every field. It reports whether the form
// may be submitted.
func (f *Form) ValidateAll() bool {
	f.init()
	ok := true
	for _, name := range Fields {
		f.touched[name] = true
		msg := Field(name, f.values[name])
		f.errors[name] = msg
		if msg != "" {
			ok = false
		}
	}
	return ok
}

// Value returns the current raw value of field.
func (f *Form) Value(field string) string { return f.values[field] }

// Error returns the recorded error for field, empty until it is touched.
func (f *Form) Error(field string) string { return f.errors[field] }

// Touched reports whether field has been visited.
func (f *Form) Touched(field string) bool { return f.touched[field] }

// Errors returns a copy of the non-empty field errors.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for k, v := range f.errors {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Valid reports whether the submit action should be enabled: every field has
// a value and no recorded error.
func (f *Form) Valid() bool {
	for _, name := range Fields {
		if f.values[name] == "" || f.errors[name] != "" {
			return false
		}
	}
	return true
}

// Input validates the whole form and returns the payload to send. Amount is
// coerced to a number here.
func (f *Form) Input() (model.ExpenseInput, error) {
	if !f.ValidateAll() {
		return model.ExpenseInput{}, ErrInvalid
	}
	amount, err := ParseAmount(f.values[Amount])
	if err != nil {
		return model.ExpenseInput{}, err
	}
	return model.ExpenseInput{
		Title:    strings.TrimSpace(f.values[Title]),
		Amount:   amount,
		Category: model.Category(f.values[Category]),
	}, nil
}
