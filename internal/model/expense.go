// Package model defines domain types for spendwatch expenses and reports.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount the client accepts for a single expense.
var MaxAmount = decimal.NewFromInt(10_000_000)

// Expense is one record as served by the remote API.
type Expense struct {
	ID        string
	Title     string
	Amount    decimal.Decimal
	Category  Category
	CreatedAt time.Time
}

// expenseJSON is the wire shape. The API emits Mongo-style "_id"; "id" is
// accepted for servers that don't.
type expenseJSON struct {
	MongoID   string          `json:"_id,omitempty"`
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  Category        `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var raw expenseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding expense: %w", err)
	}
	e.ID = raw.MongoID
	if e.ID == "" {
		e.ID = raw.ID
	}
	e.Title = raw.Title
	e.Amount = raw.Amount
	e.Category = raw.Category
	e.CreatedAt = raw.CreatedAt
	return nil
}

// MarshalJSON implements json.Marshaler using the API's "_id" key.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		MongoID:   e.ID,
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
	})
}

// ExpenseInput holds the three fields the client sends on create and update.
type ExpenseInput struct {
	Title    string
	Amount   decimal.Decimal
	Category Category
}

// MarshalJSON writes amount as a JSON number rather than decimal's default
// quoted string.
func (in ExpenseInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title    string          `json:"title"`
		Amount   json.RawMessage `json:"amount"`
		Category Category        `json:"category"`
	}{
		Title:    in.Title,
		Amount:   json.RawMessage(in.Amount.String()),
		Category: in.Category,
	})
}

// Input returns the editable fields of e.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{Title: e.Title, Amount: e.Amount, Category: e.Category}
}
