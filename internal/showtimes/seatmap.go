package showtimes

import (
	"fmt"

	"cinebook/internal/pricing"
)

// SeatsPerRow is the fixed row width of every auditorium layout
const SeatsPerRow = 10

// MaxCapacity bounds the layout to single-letter rows A through Z
const MaxCapacity = 26 * SeatsPerRow

// GenerateSeatMap builds the seat rows for a showtime in row-major
// order: rows A, B, C, ... with up to SeatsPerRow seats each. The last
// row may be partial. Each seat's price is stamped from its row's
// pricing tier.
func GenerateSeatMap(capacity int) ([]Seat, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	seats := make([]Seat, 0, capacity)
	for i := 0; i < capacity; i++ {
		row := byte('A' + i/SeatsPerRow)
		number := i%SeatsPerRow + 1
		label := fmt.Sprintf("%c%d", row, number)

		price, err := pricing.PriceFor(label)
		if err != nil {
			return nil, err
		}

		seats = append(seats, Seat{
			Label:  label,
			Row:    string(row),
			Number: number,
			Status: SeatAvailable,
			Price:  price,
		})
	}

	return seats, nil
}
