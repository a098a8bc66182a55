package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used by the date input and the storage slot.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date without time of day, held at UTC midnight.
	Date struct {
		time.Time
	}

	Expense struct {
		ID       int64
		Name     string
		Amount   Money
		Category Category
		Date     Date
	}

	// Draft holds the raw field values of a submitted expense form.
	Draft struct {
		Name     string
		Amount   string
		Category string
		Date     string
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the calendar date of now in now's own location.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the YYYY-MM-DD form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// InMonthOf reports whether d falls in the calendar month and year of t.
// The comparison uses t's own calendar fields, so a local wall clock is
// compared against the stored date as written.
func (d Date) InMonthOf(t time.Time) bool {
	y, m, _ := t.Date()
	return d.Year() == y && d.Month() == m
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// Parse converts raw form values into an Expense without an ID.
// All fields are checked; the returned error joins every failure.
func (d Draft) Parse() (Expense, error) {
	var errs []error

	name := CleanText(d.Name)
	if name == "" {
		errs = append(errs, ErrEmptyName)
	}
	amount, err := ParseMoney(d.Amount)
	if err != nil {
		errs = append(errs, err)
	}
	category, err := ParseCategory(d.Category)
	if err != nil {
		errs = append(errs, err)
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return Expense{}, errors.Join(errs...)
	}

	return Expense{
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     date,
	}, nil
}

// CleanText trims whitespace and drops control characters except tab, newline and carriage return.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s))
}
