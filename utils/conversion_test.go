package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		cents  int64
	}{
		{45.00, 4500},
		{10.50, 1050},
		{0.01, 1},
		{199.99, 19999},
		// Classic float trap: 19.99 is not exactly representable but is
		// still a valid two-decimal amount.
		{19.99, 1999},
		{1234567.89, 123456789},
	}
	for _, c := range cases {
		got, err := MinorUnits(c.amount)
		require.NoError(t, err)
		assert.Equal(t, c.cents, got)
	}
}

func TestMinorUnitsRejectsSubCentPrecision(t *testing.T) {
	for _, amount := range []float64{12.345, 0.001, 99.999} {
		_, err := MinorUnits(amount)
		assert.ErrorIs(t, err, ErrAmountPrecision, "amount %v", amount)
	}
}

func TestMinorUnitsRejectsNonPositive(t *testing.T) {
	for _, amount := range []float64{0, -1, -0.01} {
		_, err := MinorUnits(amount)
		assert.Error(t, err, "amount %v", amount)
	}
}

func TestFormatEuros(t *testing.T) {
	assert.Equal(t, "45,00 €", FormatEuros(4500))
	assert.Equal(t, "10,50 €", FormatEuros(1050))
	assert.Equal(t, "0,05 €", FormatEuros(5))
}
