package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the headline figures for a set of expenses.
type Summary struct {
	Total          decimal.Decimal
	Count          int
	ThisMonthTotal decimal.Decimal
	ThisMonthCount int
	LastMonthTotal decimal.Decimal
	Trend          float64 // percent change vs last month, one decimal
	Highest        decimal.Decimal
}

// CategoryStats holds the rollup for a single category.
type CategoryStats struct {
	Category     Category
	Amount       decimal.Decimal
	Count        int
	SharePercent float64
}

// MonthlyStats holds the rollup for one calendar month.
type MonthlyStats struct {
	Label  string    // short month name, e.g. "Jan"
	Month  time.Time // first instant of the month; chronological key
	Amount decimal.Decimal
	Count  int
}

// Report is everything derived from one filtered set.
type Report struct {
	Summary
	Categories []CategoryStats
	Months     []MonthlyStats
}
