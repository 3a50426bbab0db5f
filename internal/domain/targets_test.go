package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargets_Matcher(t *testing.T) {
	tests := []struct {
		name    string
		targets Targets
		valid   bool
		matches map[string]bool
	}{
		{
			name:    "Escalar",
			targets: Scalar("A"),
			valid:   true,
			matches: map[string]bool{"A": true, "B": false, "": false},
		},
		{
			name:    "Conjunto",
			targets: Set("A", "C", "A"),
			valid:   true,
			matches: map[string]bool{"A": true, "B": false, "C": true},
		},
		{
			name:    "Escalar vazio é um valor válido",
			targets: Scalar(""),
			valid:   true,
			matches: map[string]bool{"": true, "A": false},
		},
		{
			name:    "Valor zero não corresponde a nada",
			targets: Targets{},
			valid:   false,
			matches: map[string]bool{"": false, "A": false},
		},
		{
			name:    "Conjunto vazio não corresponde a nada",
			targets: Set(),
			valid:   false,
			matches: map[string]bool{"": false, "A": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.targets.Valid())

			match := tt.targets.Matcher()
			for value, want := range tt.matches {
				assert.Equal(t, want, match(value), value)
			}
		})
	}
}

func TestYearMonth_InCoverage(t *testing.T) {
	assert.True(t, YearMonth{Year: 2014, Month: 1}.InCoverage())
	assert.True(t, YearMonth{Year: 2021, Month: 11}.InCoverage())
	assert.False(t, YearMonth{Year: 2013, Month: 12}.InCoverage())
	assert.False(t, YearMonth{Year: 2021, Month: 12}.InCoverage())
}
