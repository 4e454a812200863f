package api

import (
	"encoding/json"
	"time"
)

// Operation names, used in errors, logs and journal entries.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// envelope is the response body shape shared by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Result is the outcome of a mutation. Message is the server's text and is
// shown to the user as-is.
type Result struct {
	Success bool
	Message string
}

// Call describes one finished request. It is passed to the hook registered
// with WithHook.
type Call struct {
	Op        string
	ExpenseID string
	RequestID string
	Status    int
	Success   bool
	Message   string
	Err       error
	Duration  time.Duration
}
