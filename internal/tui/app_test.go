package tui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/spendwatch/internal/api"
	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/store"
	"github.com/theirongolddev/spendwatch/internal/tui/components"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func expense(id, title, amount string, cat model.Category, at time.Time) model.Expense {
	return model.Expense{
		ID:        id,
		Title:     title,
		Amount:    decimal.RequireFromString(amount),
		Category:  cat,
		CreatedAt: at,
	}
}

func sampleExpenses() []model.Expense {
	return []model.Expense{
		expense("e1", "Groceries", "1200", model.Food, testNow.AddDate(0, 0, -2)),
		expense("e2", "Metro card", "500", model.Transport, testNow.AddDate(0, 0, -5)),
		expense("e3", "Tea", "40", model.Food, testNow.AddDate(0, -1, 0)),
	}
}

// fakeBackend is an in-memory Backend that records mutations.
type fakeBackend struct {
	mu      sync.Mutex
	list    []model.Expense
	listErr error
	getErr  error
	mutErr  error

	created []model.ExpenseInput
	updated map[string]model.ExpenseInput
	deleted []string
}

func (f *fakeBackend) List(context.Context) ([]model.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Expense(nil), f.list...), nil
}

func (f *fakeBackend) Get(_ context.Context, id string) (model.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.Expense{}, f.getErr
	}
	for _, e := range f.list {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Expense{}, &api.Error{Op: api.OpGet, Status: 404, Message: "Expense not found"}
}

func (f *fakeBackend) Create(_ context.Context, in model.ExpenseInput) (api.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return api.Result{}, f.mutErr
	}
	f.created = append(f.created, in)
	return api.Result{Success: true, Message: "Expense added successfully"}, nil
}

func (f *fakeBackend) Update(_ context.Context, id string, in model.ExpenseInput) (api.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return api.Result{}, f.mutErr
	}
	if f.updated == nil {
		f.updated = make(map[string]model.ExpenseInput)
	}
	f.updated[id] = in
	return api.Result{Success: true, Message: "Expense updated successfully"}, nil
}

func (f *fakeBackend) Delete(_ context.Context, id string) (api.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return api.Result{}, f.mutErr
	}
	f.deleted = append(f.deleted, id)
	return api.Result{Success: true, Message: "Expense deleted successfully"}, nil
}

func newTestApp(t *testing.T, b Backend) App {
	t.Helper()
	a := NewApp(Options{
		Backend:  b,
		Host:     "http://localhost:3000",
		Currency: "₹",
		Now:      func() time.Time { return testNow },
	})
	a.width, a.height = 140, 45
	return a
}

// step feeds msg to the app and returns the updated model.
func step(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := a.Update(msg)
	app, ok := next.(App)
	require.True(t, ok, "Update returned %T", next)
	return app, cmd
}

// run executes cmd, flattening batches. Only use on commands known to
// resolve immediately (remote calls), never on ticks or form inits.
func run(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// runOne executes cmd and requires exactly one resulting message.
func runOne(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msgs := run(t, cmd)
	require.Len(t, msgs, 1)
	return msgs[0]
}

// loaded returns an app with the initial fetch applied.
func loaded(t *testing.T, b Backend) App {
	t.Helper()
	a := newTestApp(t, b)
	a, _ = step(t, a, runOne(t, a.initFetch))
	require.True(t, a.ctl.Loaded())
	return a
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRouteOf(t *testing.T) {
	tests := []struct {
		path string
		kind routeKind
		id   string
	}{
		{"/", routeHomeKind, ""},
		{"", routeHomeKind, ""},
		{"/add", routeAdd, ""},
		{"/edit/abc123", routeEdit, "abc123"},
		{"/edit/", routeNotFound, ""},
		{"/edit/a/b", routeNotFound, ""},
		{"/view", routeNotFound, ""},
		{"/nope", routeNotFound, ""},
	}
	for _, tt := range tests {
		got := routeOf(tt.path)
		if got.kind != tt.kind || got.id != tt.id {
			t.Fatalf("routeOf(%q) = %+v, want kind %d id %q", tt.path, got, tt.kind, tt.id)
		}
	}
}

func TestInitialFetchPopulatesDashboard(t *testing.T) {
	a := newTestApp(t, &fakeBackend{list: sampleExpenses()})
	assert.True(t, a.ctl.Loading())

	a, _ = step(t, a, runOne(t, a.initFetch))
	assert.False(t, a.ctl.Loading())
	assert.Len(t, a.ctl.Filtered(), 3)
	assert.True(t, a.ctl.Report().Total.Equal(decimal.RequireFromString("1740")))
	assert.Equal(t, testNow, a.lastRefresh)

	out := a.View()
	assert.Contains(t, out, "Total Spent")
	assert.Contains(t, out, "By Category")
}

func TestFetchFailureKeepsListAndToasts(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)

	b.listErr = errors.New("connection refused")
	a, cmd := step(t, a, keyPress("r"))
	a, _ = step(t, a, runOne(t, cmd))

	require.NotNil(t, a.toast)
	assert.Equal(t, components.ToastError, a.toast.kind)
	assert.Equal(t, msgFetchFailed, a.toast.text)
	assert.Len(t, a.ctl.Expenses(), 3)
}

func TestStaleListResponseDiscarded(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)

	// Two refreshes in flight; the newer one lands first.
	a, first := a.fetchList()
	oldMsg := runOne(t, first).(listMsg)
	b.list = b.list[:1]
	a, second := a.fetchList()
	newMsg := runOne(t, second).(listMsg)

	a, _ = step(t, a, newMsg)
	a, _ = step(t, a, oldMsg)
	assert.Len(t, a.ctl.Expenses(), 1)
	assert.False(t, a.ctl.Loading())
}

func TestSearchAndCategoryKeys(t *testing.T) {
	a := loaded(t, &fakeBackend{list: sampleExpenses()})

	a, _ = step(t, a, keyPress("/"))
	require.True(t, a.searching)
	for _, r := range "GROC" {
		a, _ = step(t, a, keyPress(string(r)))
	}
	assert.Equal(t, "GROC", a.ctl.Search())
	require.Len(t, a.ctl.Filtered(), 1)
	assert.Equal(t, "e1", a.ctl.Filtered()[0].ID)

	a, _ = step(t, a, keyPress("enter"))
	assert.False(t, a.searching)

	a, _ = step(t, a, keyPress("x"))
	assert.Len(t, a.ctl.Filtered(), 3)

	// Options are All, Food, Transport in first-seen order.
	a, _ = step(t, a, keyPress("c"))
	assert.Equal(t, "Food", a.ctl.Category())
	assert.Len(t, a.ctl.Filtered(), 2)
	a, _ = step(t, a, keyPress("c"))
	assert.Equal(t, "Transport", a.ctl.Category())
	a, _ = step(t, a, keyPress("c"))
	assert.Equal(t, "All", a.ctl.Category())
	a, _ = step(t, a, keyPress("C"))
	assert.Equal(t, "Transport", a.ctl.Category())
}

func TestAddSubmitsOnceAndReturnsHome(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)

	a, _ = step(t, a, keyPress("n"))
	require.Equal(t, RouteAdd, a.route)
	require.NotNil(t, a.form)

	a.form.title = "  Movie night "
	a.form.amount = "650.50"
	a.form.category = string(model.Entertainment)

	a, cmd := a.submitForm()
	assert.True(t, a.form.submitting)

	// A second submit while the first is in flight is ignored.
	_, again := a.submitForm()
	assert.Nil(t, again)

	a, home := step(t, a, runOne(t, cmd))
	require.Len(t, b.created, 1)
	assert.Equal(t, "Movie night", b.created[0].Title)
	assert.True(t, b.created[0].Amount.Equal(decimal.RequireFromString("650.5")))

	assert.Equal(t, RouteHome, a.route)
	assert.Nil(t, a.form)
	require.NotNil(t, a.toast)
	assert.Equal(t, "Expense added successfully", a.toast.text)
	assert.True(t, a.ctl.Loading())

	_, isList := runOne(t, home).(listMsg)
	assert.True(t, isList, "returning home refetches the list")
}

func TestInvalidSubmitSendsNothing(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)
	a, _ = a.navigate(RouteAdd)

	a.form.title = "ab"
	a.form.amount = "-3"
	a, _ = a.submitForm()

	assert.Empty(t, b.created)
	assert.False(t, a.form.submitting)
	require.NotNil(t, a.toast)
	assert.Equal(t, msgFixErrors, a.toast.text)
	assert.Equal(t, map[string]string{
		"title":    "Minimum 3 characters",
		"amount":   "Enter valid amount",
		"category": "Select category",
	}, a.form.errors)
}

func TestEditLoadsRecordAndUpdates(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)
	a.activeTab = tabExpenses
	a.cursor = 1

	a, cmd := step(t, a, keyPress("enter"))
	require.Equal(t, "/edit/e2", a.route)
	require.True(t, a.form.loading)

	a, _ = step(t, a, runOne(t, cmd))
	require.False(t, a.form.loading)
	assert.Equal(t, "Metro card", a.form.title)
	assert.Equal(t, "500", a.form.amount)
	assert.Equal(t, "Transport", a.form.category)

	a.form.amount = "550"
	a, cmd = a.submitForm()
	a, _ = step(t, a, runOne(t, cmd))

	require.Contains(t, b.updated, "e2")
	assert.True(t, b.updated["e2"].Amount.Equal(decimal.NewFromInt(550)))
	assert.Equal(t, RouteHome, a.route)
	assert.Equal(t, "Expense updated successfully", a.toast.text)
}

func TestEditLoadFailure(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses(), getErr: errors.New("timeout")}
	a := loaded(t, b)

	a, cmd := a.navigate(EditRoute("e1"))
	a, _ = step(t, a, runOne(t, cmd))

	assert.True(t, a.form.loadFailed)
	assert.Equal(t, msgLoadFailed, a.toast.text)
	_, submit := a.submitForm()
	assert.Nil(t, submit)

	a, _ = step(t, a, keyPress("esc"))
	assert.Equal(t, RouteHome, a.route)
}

func TestUpdateFailureShowsServerMessage(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)
	a, cmd := a.navigate(EditRoute("e1"))
	a, _ = step(t, a, runOne(t, cmd))

	b.mutErr = &api.Error{Op: api.OpUpdate, Status: 400, Message: "Title already used"}
	a, cmd = a.submitForm()
	a, _ = step(t, a, runOne(t, cmd))

	assert.Equal(t, "/edit/e1", a.route)
	assert.Equal(t, "Title already used", a.toast.text)
	assert.False(t, a.form.submitting)
	assert.Equal(t, "Groceries", a.form.title)

	b.mutErr = errors.New("connection reset")
	a, cmd = a.submitForm()
	a, _ = step(t, a, runOne(t, cmd))
	assert.Equal(t, msgUpdateFailed, a.toast.text)
}

func TestAddFailureFallback(t *testing.T) {
	b := &fakeBackend{mutErr: errors.New("boom")}
	a := loaded(t, b)
	a, _ = a.navigate(RouteAdd)
	a.form.title = "Books"
	a.form.amount = "99"
	a.form.category = "Education"

	a, cmd := a.submitForm()
	a, _ = step(t, a, runOne(t, cmd))
	assert.Equal(t, RouteAdd, a.route)
	assert.Equal(t, msgAddFailed, a.toast.text)
}

func TestDeleteSuccessRefetches(t *testing.T) {
	b := &fakeBackend{list: sampleExpenses()}
	a := loaded(t, b)
	a.activeTab = tabExpenses

	a, _ = step(t, a, keyPress("d"))
	require.NotNil(t, a.dialog)
	assert.Equal(t, "e1", a.dialog.id)

	a, cmd := a.confirmDelete()
	assert.True(t, a.dialog.pending)
	a, refetch := step(t, a, runOne(t, cmd))

	assert.Equal(t, []string{"e1"}, b.deleted)
	assert.Nil(t, a.dialog)
	assert.Equal(t, "Expense deleted successfully", a.toast.text)

	b.list = b.list[1:]
	a, _ = step(t, a, runOne(t, refetch))
	assert.Len(t, a.ctl.Expenses(), 2)
}

func TestDialogEscCancels(t *testing.T) {
	a := loaded(t, &fakeBackend{list: sampleExpenses()})
	a.activeTab = tabExpenses
	a, _ = step(t, a, keyPress("d"))
	require.NotNil(t, a.dialog)
	a, _ = step(t, a, keyPress("esc"))
	assert.Nil(t, a.dialog)
}

func TestNotFoundRoute(t *testing.T) {
	a := loaded(t, &fakeBackend{list: sampleExpenses()})

	a, _ = step(t, a, keyPress(":"))
	require.True(t, a.routing)
	for _, r := range "/reports" {
		a, _ = step(t, a, keyPress(string(r)))
	}
	a, cmd := step(t, a, keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, "/reports", a.route)
	assert.Contains(t, a.View(), "Page Not Found")

	a, cmd = step(t, a, keyPress("enter"))
	assert.Equal(t, RouteHome, a.route)
	assert.NotNil(t, cmd)
}

func TestToastExpiresOnTick(t *testing.T) {
	a := loaded(t, &fakeBackend{})
	a = a.notify(components.ToastInfo, "hello")
	a, _ = step(t, a, tickMsg(testNow.Add(time.Second)))
	assert.NotNil(t, a.toast)
	a, _ = step(t, a, tickMsg(testNow.Add(toastDuration+time.Second)))
	assert.Nil(t, a.toast)
}

func TestTickRecomputesReportAcrossMonthBoundary(t *testing.T) {
	a := loaded(t, &fakeBackend{list: sampleExpenses()})
	require.True(t, a.ctl.Report().ThisMonthTotal.Equal(decimal.NewFromInt(1700)))

	a, _ = step(t, a, tickMsg(testNow.Add(time.Hour)))
	assert.True(t, a.ctl.AsOf().Equal(testNow), "same month should keep the report")

	april := time.Date(2024, 4, 1, 0, 0, 5, 0, time.UTC)
	a, _ = step(t, a, tickMsg(april))
	r := a.ctl.Report()
	assert.True(t, r.ThisMonthTotal.IsZero())
	assert.True(t, r.LastMonthTotal.Equal(decimal.NewFromInt(1700)))
	assert.Equal(t, 3, r.Count)
}

type fakeActivity []store.Entry

func (f fakeActivity) Recent(limit int) ([]store.Entry, error) {
	if limit < len(f) {
		return f[:limit], nil
	}
	return f, nil
}

func TestActivityTabLoadsJournal(t *testing.T) {
	a := NewApp(Options{
		Backend: &fakeBackend{},
		Activity: fakeActivity{
			{At: testNow, Op: api.OpDelete, ExpenseID: "e1", Success: false, Status: 500, Message: "boom"},
			{At: testNow, Op: api.OpList, Success: true, Status: 200},
		},
		Now: func() time.Time { return testNow },
	})
	a.width, a.height = 140, 45

	a, cmd := step(t, a, keyPress("a"))
	assert.Equal(t, tabActivity, a.activeTab)
	a, _ = step(t, a, runOne(t, cmd))
	require.Len(t, a.activity, 2)
	assert.Contains(t, a.View(), "Requests by Operation")
}

// ─── Against a real HTTP server ────────────────────────────────

type expenseServer struct {
	mu       sync.Mutex
	items    []map[string]any
	posts    []string
	deletes  int
	failDels bool
}

func (s *expenseServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/view":
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": s.items})
		case r.Method == http.MethodPost && r.URL.Path == "/add":
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			s.posts = append(s.posts, string(body))
			var in map[string]any
			assert.NoError(t, json.Unmarshal(body, &in))
			in["_id"] = "new1"
			in["createdAt"] = testNow.Format(time.RFC3339)
			s.items = append(s.items, in)
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"success":true,"message":"Expense added successfully"}`)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/delete/"):
			s.deletes++
			if s.failDels {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"success":false,"message":"Database unavailable"}`)
				return
			}
			_, _ = io.WriteString(w, `{"success":true,"message":"Expense deleted successfully"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"Route not found"}`)
		}
	}
}

func newServerApp(t *testing.T, s *expenseServer) App {
	t.Helper()
	srv := httptest.NewServer(s.handler(t))
	t.Cleanup(srv.Close)
	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return loaded(t, client)
}

func TestAddFlowAgainstServer(t *testing.T) {
	s := &expenseServer{items: []map[string]any{
		{"_id": "a1", "title": "Rent", "amount": 15000, "category": "Utilities", "createdAt": "2024-03-01T09:00:00Z"},
	}}
	a := newServerApp(t, s)
	require.Len(t, a.ctl.Expenses(), 1)

	a, _ = a.navigate(RouteAdd)
	a.form.title = "Dinner"
	a.form.amount = "250.75"
	a.form.category = "Food"

	a, cmd := a.submitForm()
	a, refetch := step(t, a, runOne(t, cmd))
	a, _ = step(t, a, runOne(t, refetch))

	require.Len(t, s.posts, 1)
	assert.JSONEq(t, `{"title":"Dinner","amount":250.75,"category":"Food"}`, s.posts[0])
	assert.Equal(t, RouteHome, a.route)
	assert.Equal(t, "Expense added successfully", a.toast.text)
	require.Len(t, a.ctl.Expenses(), 2)
	got, ok := a.ctl.Find("new1")
	require.True(t, ok)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("250.75")))
}

func TestFailedDeleteAgainstServer(t *testing.T) {
	s := &expenseServer{
		failDels: true,
		items: []map[string]any{
			{"_id": "a1", "title": "Rent", "amount": 15000, "category": "Utilities", "createdAt": "2024-03-01T09:00:00Z"},
			{"_id": "a2", "title": "Bus", "amount": 30, "category": "Transport", "createdAt": "2024-03-02T09:00:00Z"},
		},
	}
	a := newServerApp(t, s)
	a.activeTab = tabExpenses

	a, _ = step(t, a, keyPress("d"))
	a, cmd := a.confirmDelete()
	a, _ = step(t, a, runOne(t, cmd))

	assert.Equal(t, 1, s.deletes)
	assert.Len(t, a.ctl.Expenses(), 2)
	assert.Equal(t, msgDeleteFailed, a.toast.text)
	require.NotNil(t, a.dialog, "dialog stays open for another try")
	assert.False(t, a.dialog.pending)
}
