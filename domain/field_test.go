package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("initial-investment")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestWith_UpdatesOnlySelectedField(t *testing.T) {
	base := DefaultInvestmentConfig()

	updated, err := base.With(FieldExpectedReturn, 8.5)
	require.NoError(t, err)

	assert.Equal(t, 8.5, updated.ExpectedReturn)
	assert.Equal(t, base.InitialInvestment, updated.InitialInvestment)
	assert.Equal(t, base.AnnualInvestment, updated.AnnualInvestment)
	assert.Equal(t, base.Duration, updated.Duration)
	assert.Equal(t, 6.0, base.ExpectedReturn, "original must not change")
}

func TestWith_DurationTruncates(t *testing.T) {
	updated, err := DefaultInvestmentConfig().With(FieldDuration, 7.9)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Duration)
}

func TestWith_UnknownField(t *testing.T) {
	_, err := DefaultInvestmentConfig().With(Field(42), 1)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestWithText(t *testing.T) {
	cfg, err := DefaultInvestmentConfig().WithText(FieldInitialInvestment, " 2500.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2500.5, cfg.InitialInvestment)

	cfg, err = cfg.WithText(FieldDuration, "")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Duration)

	_, err = cfg.WithText(FieldAnnualInvestment, "12abc")
	assert.ErrorIs(t, err, ErrInvalidValue)
}
