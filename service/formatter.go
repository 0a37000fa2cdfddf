package service

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"investment-calculator/domain"
)

// Formatter renders amounts with the locale's currency symbol and the
// currency's standard fraction digits, e.g. "$ 10,000.00" for en-US.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

func (f *Formatter) Format(v float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// BuildTable turns snapshots into the rows of the results table.
func BuildTable(snapshots []domain.YearlySnapshot, f *Formatter) []domain.TableRow {
	rows := make([]domain.TableRow, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, domain.TableRow{
			Year:            s.Year,
			InvestmentValue: f.Format(s.ValueEndOfYear),
			InterestYear:    f.Format(s.Interest),
			TotalInterest:   f.Format(s.TotalInterest),
			InvestedCapital: f.Format(s.InvestedCapital),
		})
	}
	return rows
}
