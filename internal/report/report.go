// Package report derives the list view, summary figures and chart bars from
// the expense collection. Everything is recomputed from scratch on each call.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// ChartHeight is the height in display units of the tallest bar.
const ChartHeight = 180

// NoCategory is shown in place of the top category when there are no expenses.
const NoCategory = "—"

type (
	Summary struct {
		Count       int
		Total       core.Money
		MonthTotal  core.Money
		TopCategory core.Category
	}

	CategoryTotal struct {
		Category core.Category
		Total    core.Money
	}

	Bar struct {
		Category core.Category
		Total    core.Money
		Height   float64
	}
)

// TopCategoryLabel returns the top category name or NoCategory.
func (s Summary) TopCategoryLabel() string {
	if s.TopCategory == "" {
		return NoCategory
	}
	return s.TopCategory.String()
}

// Labelled reports whether the bar carries a value label.
func (b Bar) Labelled() bool {
	return !b.Total.IsZero()
}

// Summarize computes the totals shown in the summary panel. MonthTotal only
// counts expenses in the calendar month of now.
func Summarize(records []core.Expense, now time.Time) Summary {
	s := Summary{Count: len(records)}

	sums := make(map[core.Category]core.Money)
	var order []core.Category
	for _, e := range records {
		s.Total = s.Total.Add(e.Amount)
		if e.Date.InMonthOf(now) {
			s.MonthTotal = s.MonthTotal.Add(e.Amount)
		}
		if _, ok := sums[e.Category]; !ok {
			order = append(order, e.Category)
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	// Strictly greater wins, so ties go to the category seen first.
	var best core.Money
	for _, c := range order {
		if sums[c].GreaterThan(best) {
			best = sums[c]
			s.TopCategory = c
		}
	}

	return s
}

// CategoryTotals returns one entry per category in display order,
// including categories with no expenses.
func CategoryTotals(records []core.Expense) []CategoryTotal {
	cats := core.Categories()
	totals := make([]CategoryTotal, len(cats))
	index := make(map[core.Category]int, len(cats))
	for i, c := range cats {
		totals[i] = CategoryTotal{Category: c}
		index[c] = i
	}
	for _, e := range records {
		i, ok := index[e.Category]
		if !ok {
			continue
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	return totals
}

// Chart scales the category totals so the largest one is ChartHeight tall.
// With no expenses every bar has height zero.
func Chart(totals []CategoryTotal) []Bar {
	var peak core.Money
	for _, t := range totals {
		if t.Total.GreaterThan(peak) {
			peak = t.Total
		}
	}

	bars := make([]Bar, len(totals))
	for i, t := range totals {
		bars[i] = Bar{Category: t.Category, Total: t.Total}
		if peak.IsZero() {
			bars[i].Height = t.Total.Float64()
			continue
		}
		bars[i].Height = t.Total.Value.
			Mul(decimal.NewFromInt(ChartHeight)).
			Div(peak.Value).
			InexactFloat64()
	}
	return bars
}

// List returns the expenses newest first. Expenses on the same date keep
// their insertion order. The input is not modified.
func List(records []core.Expense) []core.Expense {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b core.Expense) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}
