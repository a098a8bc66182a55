// Package locale renders amounts and dates in the single display
// currency and locale configured for the process.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"ledger/internal/core"
)

const (
	DefaultLocale = "en-IN"
	DefaultSymbol = "₹"

	// DateLayout renders dates like "5 Mar 2024".
	DateLayout = "2 Jan 2006"
)

// Formatter formats money with a fixed currency symbol and locale grouping.
type Formatter struct {
	tag     language.Tag
	symbol  string
	printer *message.Printer
}

// New creates a Formatter for a BCP 47 locale such as "en-IN".
func New(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{
		tag:     tag,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// Default returns the en-IN / ₹ formatter.
func Default() *Formatter {
	f, err := New(DefaultLocale, DefaultSymbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Money formats m as symbol + locale-grouped number with at most three
// fraction digits, e.g. "₹1,234.5".
func (f *Formatter) Money(m core.Money) string {
	return f.symbol + f.printer.Sprintf("%v", number.Decimal(m.Float64(), number.MaxFractionDigits(core.MaxFractionDigits)))
}

// Date formats d like "5 Mar 2024".
func (f *Formatter) Date(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (f *Formatter) Locale() string {
	return f.tag.String()
}

func (f *Formatter) Symbol() string {
	return f.symbol
}
