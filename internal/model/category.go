package model

import "fmt"

// Category is one of the fixed spending categories. The set is closed;
// user-defined categories are intentionally not supported.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealth,
	CategoryIncome,
	CategoryOther,
}

// ExpenseCategories returns the categories eligible for budgets.
// Income is reserved for income transactions and excluded.
func ExpenseCategories() []Category {
	out := make([]Category, 0, len(Categories)-1)
	for _, c := range Categories {
		if c != CategoryIncome {
			out = append(out, c)
		}
	}
	return out
}

// Valid reports whether c is a member of the fixed set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
