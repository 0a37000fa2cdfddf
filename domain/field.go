package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown input field")
	ErrInvalidValue = errors.New("invalid input value")
)

// Field selects one of the four InvestmentConfig inputs.
type Field int

const (
	FieldInitialInvestment Field = iota + 1
	FieldAnnualInvestment
	FieldExpectedReturn
	FieldDuration
)

var fieldNames = map[Field]string{
	FieldInitialInvestment: "initialInvestment",
	FieldAnnualInvestment:  "annualInvestment",
	FieldExpectedReturn:    "expectedReturn",
	FieldDuration:          "duration",
}

// Fields lists every input field in form order.
func Fields() []Field {
	return []Field{
		FieldInitialInvestment,
		FieldAnnualInvestment,
		FieldExpectedReturn,
		FieldDuration,
	}
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField maps a form input identifier to its Field.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// With returns a copy of c with only the selected field replaced.
// Duration values are truncated toward zero.
func (c InvestmentConfig) With(field Field, value float64) (InvestmentConfig, error) {
	switch field {
	case FieldInitialInvestment:
		c.InitialInvestment = value
	case FieldAnnualInvestment:
		c.AnnualInvestment = value
	case FieldExpectedReturn:
		c.ExpectedReturn = value
	case FieldDuration:
		c.Duration = int(value)
	default:
		return c, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return c, nil
}

// WithText coerces raw form text to a number and applies it like With.
// Empty text counts as zero.
func (c InvestmentConfig) WithText(field Field, raw string) (InvestmentConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.With(field, 0)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return c, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, raw)
	}
	return c.With(field, v)
}
