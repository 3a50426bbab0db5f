package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "Zero", value: 0, expected: 0},
		{name: "Arredonda para cima", value: 1.236, expected: 1.24},
		{name: "Arredonda para baixo", value: 1.234, expected: 1.23},
		{name: "Negativo", value: -2.555, expected: -2.56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RoundWithTwoDecimalPlace(tt.value), 1e-9)
		})
	}
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 2.0, Mean([]float64{1, math.NaN(), 3}), 1e-9)
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestTempName(t *testing.T) {
	name, err := TempName("Manipulados_2014_01.csv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(name, ".Manipulados_2014_01.csv."))
	assert.True(t, strings.HasSuffix(name, ".tmp"))

	other, err := TempName("Manipulados_2014_01.csv")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestPrettyJson(t *testing.T) {
	out := PrettyJson(map[string]int{"vendas": 3})
	assert.Equal(t, "{\n\t\"vendas\": 3\n}", out)

	assert.Equal(t, "{\n\t\"a\": 1\n}", PrettyJson([]byte(`{"a":1}`)))
}
