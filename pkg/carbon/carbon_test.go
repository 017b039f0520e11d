package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	calculator, err := NewCalculator(DefaultFactors)
	require.NoError(t, err)

	result, err := calculator.Calculate(Input{Electricity: 100, Gas: 10, Transport: 50})
	require.NoError(t, err)

	assert.Equal(t, 115.6, result.Total)
	assert.Equal(t, map[string]float64{
		"electricity": 82,
		"gas":         23.1,
		"transport":   10.5,
	}, result.Breakdown)
}

func TestCalculateRounds(t *testing.T) {
	calculator, err := NewCalculator(DefaultFactors)
	require.NoError(t, err)

	result, err := calculator.Calculate(Input{Electricity: 1.234, Gas: 0.333})
	require.NoError(t, err)

	// 1.01188 + 0.76923
	assert.Equal(t, 1.78, result.Total)
}

func TestCalculateZero(t *testing.T) {
	calculator, err := NewCalculator(DefaultFactors)
	require.NoError(t, err)

	result, err := calculator.Calculate(Input{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestCalculateRejectsNegative(t *testing.T) {
	calculator, err := NewCalculator(DefaultFactors)
	require.NoError(t, err)

	_, err = calculator.Calculate(Input{Electricity: -1})
	assert.ErrorIs(t, err, ErrNegativeInput)
}

func TestExpression(t *testing.T) {
	calculator, err := NewCalculator(DefaultFactors)
	require.NoError(t, err)

	assert.Equal(t, "electricity * 0.82 + gas * 2.31 + transport * 0.21", calculator.Expression)
}
