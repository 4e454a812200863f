package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/model"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type fakeLister struct {
	mu   sync.Mutex
	list []model.Expense
	err  error
}

func (f *fakeLister) List(context.Context) ([]model.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Expense(nil), f.list...), nil
}

func (f *fakeLister) set(list []model.Expense, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list, f.err = list, err
}

func exp(id, amount string, cat model.Category, at time.Time) model.Expense {
	return model.Expense{ID: id, Title: "x " + id, Amount: decimal.RequireFromString(amount), Category: cat, CreatedAt: at}
}

func newTestService(l Lister) *Service {
	return New(l, Config{
		Interval:     10 * time.Second,
		EventsBuffer: 10,
		Now:          func() time.Time { return testNow },
	})
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Count:          10,
		Total:          decimal.RequireFromString("1000.50"),
		ThisMonthTotal: decimal.RequireFromString("200"),
	}
	curr := Snapshot{
		Count:          12,
		Total:          decimal.RequireFromString("1250.75"),
		ThisMonthTotal: decimal.RequireFromString("450.25"),
	}

	delta := diffSnapshots(prev, curr)
	if delta.Count != 2 {
		t.Fatalf("Count delta = %d, want 2", delta.Count)
	}
	if !delta.Total.Equal(decimal.RequireFromString("250.25")) {
		t.Fatalf("Total delta = %s, want 250.25", delta.Total)
	}
	if !delta.ThisMonthTotal.Equal(decimal.RequireFromString("250.25")) {
		t.Fatalf("ThisMonthTotal delta = %s, want 250.25", delta.ThisMonthTotal)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should give a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(&fakeLister{}, Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollOncePublishesChanges(t *testing.T) {
	l := &fakeLister{list: []model.Expense{
		exp("a", "100", model.Food, testNow.AddDate(0, 0, -1)),
	}}
	s := newTestService(l)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx) // unchanged: no event

	l.set(append(l.list, exp("b", "50", model.Transport, testNow)), nil)
	s.pollOnce(ctx)

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	if polls != 3 {
		t.Fatalf("pollCount = %d, want 3", polls)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != EventSnapshot || events[1].Type != EventDelta {
		t.Fatalf("event types = %s, %s", events[0].Type, events[1].Type)
	}
	if events[1].Delta.Count != 1 || !events[1].Delta.Total.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("delta = %+v, want one expense of 50", events[1].Delta)
	}
	if got := events[1].Snapshot.TopCategory; got != "Food" {
		t.Fatalf("TopCategory = %q, want Food", got)
	}
}

func TestPollOnceErrorKeepsSnapshot(t *testing.T) {
	l := &fakeLister{list: []model.Expense{exp("a", "100", model.Food, testNow)}}
	s := newTestService(l)
	s.pollOnce(context.Background())

	l.set(nil, errors.New("connection refused"))
	s.pollOnce(context.Background())

	st := s.snapshotStatus()
	if st.LastError != "connection refused" {
		t.Fatalf("LastError = %q", st.LastError)
	}
	if st.Summary.Count != 1 {
		t.Fatalf("Summary.Count = %d, want 1 (kept from last good poll)", st.Summary.Count)
	}
}

func TestFilteredSnapshot(t *testing.T) {
	l := &fakeLister{list: []model.Expense{
		exp("a", "100", model.Food, testNow),
		exp("b", "70", model.Transport, testNow),
	}}
	s := New(l, Config{Category: "Transport", Now: func() time.Time { return testNow }})
	s.pollOnce(context.Background())

	st := s.snapshotStatus()
	if st.Category != "Transport" || st.Summary.Count != 1 {
		t.Fatalf("status = %+v, want only the Transport expense", st)
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestService(&fakeLister{list: []model.Expense{exp("a", "99.5", model.Food, testNow)}})
	s.pollOnce(context.Background())

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.PollCount != 1 || st.Summary.Count != 1 {
		t.Fatalf("status = %+v", st)
	}
	if !st.Summary.Total.Equal(decimal.RequireFromString("99.5")) {
		t.Fatalf("Summary.Total = %s, want 99.5", st.Summary.Total)
	}
	if st.EventCount != 1 {
		t.Fatalf("EventCount = %d, want 1", st.EventCount)
	}
}
