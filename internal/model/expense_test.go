package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExpense_UnmarshalIDFallback(t *testing.T) {
	var a, b Expense
	if err := json.Unmarshal([]byte(`{"_id":"m1","id":"x","title":"Tea","amount":"12.5","category":"Food"}`), &a); err != nil {
		t.Fatal(err)
	}
	if a.ID != "m1" {
		t.Errorf("ID = %q, want m1", a.ID)
	}
	if !a.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Amount = %s, want 12.5", a.Amount)
	}

	if err := json.Unmarshal([]byte(`{"id":"p2","title":"Bus","amount":40,"category":"Transport"}`), &b); err != nil {
		t.Fatal(err)
	}
	if b.ID != "p2" {
		t.Errorf("ID = %q, want p2", b.ID)
	}
}

func TestExpenseInput_AmountIsNumber(t *testing.T) {
	in := ExpenseInput{Title: "Tea", Amount: decimal.RequireFromString("99.90"), Category: Food}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"Tea","amount":99.9,"category":"Food"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}
}

func TestCategory_Info(t *testing.T) {
	if !Food.Valid() || Category("Rent").Valid() {
		t.Error("Valid mismatch")
	}
	info := Category("Rent").Info()
	if info.Glyph != categoryInfo[Other].Glyph || info.Label != "Rent" {
		t.Errorf("unknown Info = %+v", info)
	}
	if Category("Rent").Index() != len(Categories)-1 {
		t.Errorf("unknown Index = %d", Category("Rent").Index())
	}
	if Transport.Index() != 1 {
		t.Errorf("Transport.Index = %d, want 1", Transport.Index())
	}
}
