package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/store"
	"github.com/theirongolddev/spendwatch/internal/validate"
)

func TestJournalHookRecordsCalls(t *testing.T) {
	j, err := store.Open(filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"Expense not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL, api.WithHook(journalHook(j, zap.NewNop())))
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.NoError(t, err)
	_, err = client.Delete(context.Background(), "gone")
	require.Error(t, err)

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	del := entries[0]
	assert.Equal(t, api.OpDelete, del.Op)
	assert.Equal(t, "gone", del.ExpenseID)
	assert.False(t, del.Success)
	assert.Equal(t, http.StatusNotFound, del.Status)
	assert.Equal(t, "Expense not found", del.Message)
	assert.NotEmpty(t, del.RequestID)

	list := entries[1]
	assert.Equal(t, api.OpList, list.Op)
	assert.True(t, list.Success)
}

func TestExpenseFieldsInput(t *testing.T) {
	in, err := expenseFields{Title: " Rent ", Amount: "15000", Category: "Utilities"}.input()
	require.NoError(t, err)
	assert.Equal(t, "Rent", in.Title)
	assert.True(t, in.Amount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, model.Utilities, in.Category)

	_, err = expenseFields{Title: "ok", Amount: "abc", Category: "Pets"}.input()
	require.Error(t, err)
	assert.True(t, errors.Is(err, validate.ErrInvalid))
	assert.Contains(t, err.Error(), "title: Minimum 3 characters")
	assert.Contains(t, err.Error(), "amount: Enter valid amount")
	assert.Contains(t, err.Error(), "category: Select category")
}

func TestExpenseFieldsComplete(t *testing.T) {
	assert.False(t, expenseFields{Title: "Tea", Amount: "10"}.complete())
	assert.True(t, expenseFields{Title: "Tea", Amount: "10", Category: "Food"}.complete())
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "Expense added", orDefault("", "Expense added"))
	assert.Equal(t, "Saved!", orDefault("Saved!", "Expense added"))
}
