package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		row  byte
		want Tier
	}{
		{'A', TierEconomy},
		{'B', TierEconomy},
		{'C', TierStandard},
		{'D', TierStandard},
		{'E', TierStandard},
		{'F', TierPremium},
		{'G', TierPremium},
		{'H', TierPremium},
		{'I', TierStandard}, // beyond table falls back to standard
		{'Z', TierStandard},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.row), "row %c", tt.row)
	}
}

func TestPriceFor(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"A1", 150},
		{"B10", 150},
		{"C5", 200},
		{"E9", 200},
		{"F1", 250},
		{"H10", 250},
		{"J3", 200},
	}

	for _, tt := range tests {
		got, err := PriceFor(tt.label)
		require.NoError(t, err, "label %s", tt.label)
		assert.Equal(t, tt.want, got, "label %s", tt.label)
	}
}

func TestPriceForInvalidLabel(t *testing.T) {
	for _, label := range []string{"", "A", "1A", "a1", "AA1", "A1B", "A-1", " A1"} {
		_, err := PriceFor(label)
		assert.ErrorIs(t, err, ErrInvalidSeatLabel, "label %q", label)
	}
}

func TestTotalFor(t *testing.T) {
	total, err := TotalFor([]string{"A1", "C5", "F1"})
	require.NoError(t, err)
	assert.Equal(t, 600.0, total)
}

func TestTotalForCountsDuplicates(t *testing.T) {
	total, err := TotalFor([]string{"F1", "F1"})
	require.NoError(t, err)
	assert.Equal(t, 500.0, total)
}

func TestTotalForEmpty(t *testing.T) {
	total, err := TotalFor(nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTotalForPropagatesInvalidLabel(t *testing.T) {
	_, err := TotalFor([]string{"A1", "bogus"})
	assert.ErrorIs(t, err, ErrInvalidSeatLabel)
}
