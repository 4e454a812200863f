package pipeline

import (
	"strings"

	"github.com/theirongolddev/spendwatch/internal/model"
)

// AllCategories is the category filter value that matches every record.
const AllCategories = "All"

// Matches reports whether e passes the search and category filters. An empty
// search matches every title.
func Matches(e model.Expense, search, category string) bool {
	if search != "" && !containsIgnoreCase(e.Title, search) {
		return false
	}
	return category == AllCategories || string(e.Category) == category
}

// Filter returns the expenses matching search and category, in input order.
// The returned slice is always freshly allocated.
func Filter(expenses []model.Expense, search, category string) []model.Expense {
	result := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if Matches(e, search, category) {
			result = append(result, e)
		}
	}
	return result
}

// CategoryOptions returns "All" followed by each category present in
// expenses, in first-seen order.
func CategoryOptions(expenses []model.Expense) []string {
	opts := []string{AllCategories}
	seen := make(map[model.Category]struct{})
	for _, e := range expenses {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		opts = append(opts, string(e.Category))
	}
	return opts
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
