// Package view holds the dashboard state: the fetched list, the active
// filters and everything derived from them.
package view

import (
	"time"

	"github.com/theirongolddev/spendwatch/internal/model"
	"github.com/theirongolddev/spendwatch/internal/pipeline"
)

// Controller is an immutable snapshot of dashboard state. Every transition
// returns a new value and leaves the receiver untouched.
type Controller struct {
	expenses []model.Expense
	filtered []model.Expense
	report   model.Report
	options  []string

	search   string
	category string

	loading bool
	loaded  bool
	err     string

	issued  uint64 // last sequence handed out by BeginFetch
	applied uint64 // newest sequence whose response was applied

	asOf time.Time // clock reading the report was computed at
}

// New returns an empty controller with the category filter set to category
// ("All" when empty).
func New(category string) Controller {
	if category == "" {
		category = pipeline.AllCategories
	}
	return Controller{category: category, options: []string{pipeline.AllCategories}}
}

// BeginFetch issues the next request sequence number and marks the
// controller loading. Pass the number back with the response.
func (c Controller) BeginFetch() (Controller, uint64) {
	c.issued++
	c.loading = true
	return c, c.issued
}

// Stale reports whether a response for seq would be discarded because a
// newer one has already been applied.
func (c Controller) Stale(seq uint64) bool {
	return seq <= c.applied
}

// ReceiveList replaces the whole list with a fetched one and recomputes
// the filtered set and report. Stale responses are ignored.
func (c Controller) ReceiveList(seq uint64, list []model.Expense, now time.Time) Controller {
	if c.Stale(seq) {
		return c
	}
	c.applied = seq
	c.expenses = append([]model.Expense(nil), list...)
	c.loaded = true
	c.err = ""
	if seq >= c.issued {
		c.loading = false
	}
	return c.recompute(now)
}

// ReceiveError records a failed fetch. The current list is kept as it was.
// Stale errors are ignored.
func (c Controller) ReceiveError(seq uint64, msg string) Controller {
	if c.Stale(seq) {
		return c
	}
	c.applied = seq
	c.err = msg
	if seq >= c.issued {
		c.loading = false
	}
	return c
}

// ApplyFilter sets the search text and category filter and recomputes.
func (c Controller) ApplyFilter(search, category string, now time.Time) Controller {
	if category == "" {
		category = pipeline.AllCategories
	}
	c.search = search
	c.category = category
	return c.recompute(now)
}

// ClearError drops the pending notification.
func (c Controller) ClearError() Controller {
	c.err = ""
	return c
}

// Rollover recomputes the report when now falls in a different calendar
// month than the last computation. Month-relative figures (this month, last
// month, trend) otherwise keep the month they were computed in.
func (c Controller) Rollover(now time.Time) Controller {
	prev := c.asOf.In(now.Location())
	if !c.asOf.IsZero() && prev.Year() == now.Year() && prev.Month() == now.Month() {
		return c
	}
	return c.recompute(now)
}

// AsOf returns the clock reading the current report was computed at.
func (c Controller) AsOf() time.Time { return c.asOf }

func (c Controller) recompute(now time.Time) Controller {
	c.asOf = now
	c.filtered = pipeline.Filter(c.expenses, c.search, c.category)
	c.report = pipeline.Aggregate(c.filtered, now)
	c.options = pipeline.CategoryOptions(c.expenses)
	return c
}

// Expenses returns the full fetched list.
func (c Controller) Expenses() []model.Expense { return c.expenses }

// Filtered returns the expenses passing the current filters.
func (c Controller) Filtered() []model.Expense { return c.filtered }

// Report returns statistics over the filtered set.
func (c Controller) Report() model.Report { return c.report }

// CategoryOptions returns the values offered by the category filter.
func (c Controller) CategoryOptions() []string { return c.options }

// Search returns the current search text.
func (c Controller) Search() string { return c.search }

// Category returns the current category filter.
func (c Controller) Category() string { return c.category }

// Loading reports whether a fetch is outstanding.
func (c Controller) Loading() bool { return c.loading }

// Loaded reports whether any list has been applied yet.
func (c Controller) Loaded() bool { return c.loaded }

// Err returns the notification from the last failed fetch, if any.
func (c Controller) Err() string { return c.err }

// Find returns the expense with id from the full list.
func (c Controller) Find(id string) (model.Expense, bool) {
	for _, e := range c.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}
