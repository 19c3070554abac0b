package showtimes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatMapLayout(t *testing.T) {
	seats, err := GenerateSeatMap(25)
	require.NoError(t, err)
	require.Len(t, seats, 25)

	// Row-major: A1..A10, B1..B10, C1..C5
	assert.Equal(t, "A1", seats[0].Label)
	assert.Equal(t, "A10", seats[9].Label)
	assert.Equal(t, "B1", seats[10].Label)
	assert.Equal(t, "C5", seats[24].Label)
	assert.Equal(t, "C", seats[24].Row)
	assert.Equal(t, 5, seats[24].Number)
}

func TestGenerateSeatMapUniqueLabels(t *testing.T) {
	seats, err := GenerateSeatMap(100)
	require.NoError(t, err)

	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		assert.False(t, seen[seat.Label], "duplicate label %s", seat.Label)
		seen[seat.Label] = true
		assert.Equal(t, SeatAvailable, seat.Status)
	}
}

func TestGenerateSeatMapStampsPrices(t *testing.T) {
	seats, err := GenerateSeatMap(100)
	require.NoError(t, err)

	byLabel := make(map[string]Seat, len(seats))
	for _, seat := range seats {
		byLabel[seat.Label] = seat
	}

	assert.Equal(t, 150.0, byLabel["A1"].Price)
	assert.Equal(t, 150.0, byLabel["B10"].Price)
	assert.Equal(t, 200.0, byLabel["C1"].Price)
	assert.Equal(t, 200.0, byLabel["E5"].Price)
	assert.Equal(t, 250.0, byLabel["F1"].Price)
	assert.Equal(t, 250.0, byLabel["H10"].Price)
	assert.Equal(t, 200.0, byLabel["J3"].Price) // beyond table falls back to standard
}

func TestGenerateSeatMapExactRows(t *testing.T) {
	seats, err := GenerateSeatMap(20)
	require.NoError(t, err)
	require.Len(t, seats, 20)
	assert.Equal(t, "B10", seats[19].Label)
}

func TestGenerateSeatMapSingleSeat(t *testing.T) {
	seats, err := GenerateSeatMap(1)
	require.NoError(t, err)
	require.Len(t, seats, 1)
	assert.Equal(t, "A1", seats[0].Label)
}

func TestGenerateSeatMapInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100, MaxCapacity + 1} {
		_, err := GenerateSeatMap(capacity)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", capacity)
	}
}
