package core

import "strings"

// Category is the closed set of expense categories.
type Category string

const (
	Food          Category = "Food"
	Shopping      Category = "Shopping"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Bills         Category = "Bills"
	Other         Category = "Other"
)

var categories = []Category{Food, Shopping, Transport, Entertainment, Bills, Other}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory matches s against the fixed set, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidCategory
	}
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) Valid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
