package services

import (
	"time"

	"ledger/internal/core"
	"ledger/internal/locale"
	"ledger/internal/report"
)

type (
	// LedgerView is everything the page shows, already formatted.
	LedgerView struct {
		Expenses    []ExpenseRow
		Total       string
		MonthTotal  string
		TopCategory string
		Bars        []BarView
		Categories  []string
		Today       string
	}

	ExpenseRow struct {
		ID       int64
		Name     string
		Category string
		Date     string
		Amount   string
	}

	BarView struct {
		Category string
		Height   float64
		// Label is empty for bars with no expenses.
		Label string
	}
)

func (v LedgerView) Empty() bool {
	return len(v.Expenses) == 0
}

// BuildView derives the list, summary and chart from records.
func BuildView(records []core.Expense, now time.Time, f *locale.Formatter) LedgerView {
	summary := report.Summarize(records, now)

	v := LedgerView{
		Total:       f.Money(summary.Total),
		MonthTotal:  f.Money(summary.MonthTotal),
		TopCategory: summary.TopCategoryLabel(),
		Today:       core.Today(now).String(),
	}

	for _, e := range report.List(records) {
		v.Expenses = append(v.Expenses, ExpenseRow{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category.String(),
			Date:     f.Date(e.Date),
			Amount:   f.Money(e.Amount),
		})
	}

	for _, b := range report.Chart(report.CategoryTotals(records)) {
		bar := BarView{Category: b.Category.String(), Height: b.Height}
		if b.Labelled() {
			bar.Label = f.Money(b.Total)
		}
		v.Bars = append(v.Bars, bar)
	}

	for _, c := range core.Categories() {
		v.Categories = append(v.Categories, c.String())
	}

	return v
}
