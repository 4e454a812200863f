package model

// Category is one of the fixed expense categories.
type Category string

// The fixed category set.
const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Utilities     Category = "Utilities"
	Healthcare    Category = "Healthcare"
	Shopping      Category = "Shopping"
	Education     Category = "Education"
	Other         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	Food, Transport, Entertainment, Utilities, Healthcare, Shopping, Education, Other,
}

// CategoryInfo describes how a category is presented.
type CategoryInfo struct {
	Name  Category
	Glyph string
	Label string
}

var categoryInfo = map[Category]CategoryInfo{
	Food:          {Name: Food, Glyph: "🍽", Label: "Food"},
	Transport:     {Name: Transport, Glyph: "🚗", Label: "Transport"},
	Entertainment: {Name: Entertainment, Glyph: "🎬", Label: "Entertainment"},
	Utilities:     {Name: Utilities, Glyph: "💡", Label: "Utilities"},
	Healthcare:    {Name: Healthcare, Glyph: "🏥", Label: "Healthcare"},
	Shopping:      {Name: Shopping, Glyph: "🛍", Label: "Shopping"},
	Education:     {Name: Education, Glyph: "🎓", Label: "Education"},
	Other:         {Name: Other, Glyph: "•", Label: "Other"},
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns the descriptor for c. Unknown categories get Other's glyph
// but keep their own name.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	info := categoryInfo[Other]
	info.Name = c
	info.Label = string(c)
	return info
}

// Index returns c's position in Categories, or len(Categories)-1 (Other)
// for unknown values. Used to pick stable per-category colours.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories) - 1
}
