// Package pipeline derives filtered sets and summary statistics from expense lists.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendwatch/internal/model"
)

// MonthWindow is the number of most recent months kept in the monthly series.
const MonthWindow = 6

var hundred = decimal.NewFromInt(100)

// Aggregate computes the report for a set of expenses in a single pass.
// Month boundaries are evaluated in now's location. The input is not modified.
func Aggregate(expenses []model.Expense, now time.Time) model.Report {
	loc := now.Location()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var r model.Report
	catMap := make(map[model.Category]*model.CategoryStats)
	var catOrder []model.Category
	monthMap := make(map[time.Time]*model.MonthlyStats)

	for _, e := range expenses {
		r.Total = r.Total.Add(e.Amount)
		r.Count++
		if e.Amount.GreaterThan(r.Highest) {
			r.Highest = e.Amount
		}

		cs, ok := catMap[e.Category]
		if !ok {
			cs = &model.CategoryStats{Category: e.Category}
			catMap[e.Category] = cs
			catOrder = append(catOrder, e.Category)
		}
		cs.Amount = cs.Amount.Add(e.Amount)
		cs.Count++

		if e.CreatedAt.IsZero() {
			continue
		}
		m := monthStart(e.CreatedAt.In(loc))
		switch {
		case m.Equal(thisMonth):
			r.ThisMonthTotal = r.ThisMonthTotal.Add(e.Amount)
			r.ThisMonthCount++
		case m.Equal(lastMonth):
			r.LastMonthTotal = r.LastMonthTotal.Add(e.Amount)
		}

		ms, ok := monthMap[m]
		if !ok {
			ms = &model.MonthlyStats{Label: m.Format("Jan"), Month: m}
			monthMap[m] = ms
		}
		ms.Amount = ms.Amount.Add(e.Amount)
		ms.Count++
	}

	r.Trend = Trend(r.ThisMonthTotal, r.LastMonthTotal)

	// Category breakdown, amount descending; ties stay in first-seen order
	r.Categories = make([]model.CategoryStats, 0, len(catOrder))
	for _, c := range catOrder {
		cs := catMap[c]
		if r.Total.IsPositive() {
			cs.SharePercent = cs.Amount.Div(r.Total).Mul(hundred).InexactFloat64()
		}
		r.Categories = append(r.Categories, *cs)
	}
	sort.SliceStable(r.Categories, func(i, j int) bool {
		return r.Categories[i].Amount.GreaterThan(r.Categories[j].Amount)
	})

	// Monthly series, oldest first, last MonthWindow buckets
	r.Months = make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		r.Months = append(r.Months, *ms)
	}
	sort.Slice(r.Months, func(i, j int) bool {
		return r.Months[i].Month.Before(r.Months[j].Month)
	})
	if len(r.Months) > MonthWindow {
		r.Months = r.Months[len(r.Months)-MonthWindow:]
	}

	return r
}

// Trend returns the percentage change from lastMonth to thisMonth rounded to
// one decimal place. With no spend last month it is 100 if anything was spent
// this month, else 0.
func Trend(thisMonth, lastMonth decimal.Decimal) float64 {
	if lastMonth.IsPositive() {
		return thisMonth.Sub(lastMonth).Div(lastMonth).Mul(hundred).Round(1).InexactFloat64()
	}
	if thisMonth.IsPositive() {
		return 100
	}
	return 0
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
