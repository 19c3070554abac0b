package pricing

import (
	"errors"
	"fmt"
)

var ErrInvalidSeatLabel = errors.New("invalid seat label")

// Tier classifies a seat row into a price band
type Tier string

const (
	TierEconomy  Tier = "ECONOMY"
	TierStandard Tier = "STANDARD"
	TierPremium  Tier = "PREMIUM"
)

// Per-tier ticket prices
const (
	PriceEconomy  = 150.0
	PriceStandard = 200.0
	PricePremium  = 250.0
)

// TierFor maps a row letter to its price tier. Rows beyond H fall back
// to the standard tier.
func TierFor(row byte) Tier {
	switch {
	case row >= 'A' && row <= 'B':
		return TierEconomy
	case row >= 'C' && row <= 'E':
		return TierStandard
	case row >= 'F' && row <= 'H':
		return TierPremium
	default:
		return TierStandard
	}
}

// Price returns the ticket price for a tier
func (t Tier) Price() float64 {
	switch t {
	case TierEconomy:
		return PriceEconomy
	case TierPremium:
		return PricePremium
	default:
		return PriceStandard
	}
}

// PriceFor resolves the price of a seat label such as "A1" or "F12".
// The label must be a single uppercase row letter followed by digits.
func PriceFor(label string) (float64, error) {
	if !ValidLabel(label) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, label)
	}
	return TierFor(label[0]).Price(), nil
}

// TotalFor sums the prices of all labels. Duplicate labels are counted
// once per occurrence.
func TotalFor(labels []string) (float64, error) {
	var total float64
	for _, label := range labels {
		price, err := PriceFor(label)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}

// ValidLabel reports whether label is one uppercase letter followed by
// at least one digit.
func ValidLabel(label string) bool {
	if len(label) < 2 {
		return false
	}
	if label[0] < 'A' || label[0] > 'Z' {
		return false
	}
	for i := 1; i < len(label); i++ {
		if label[i] < '0' || label[i] > '9' {
			return false
		}
	}
	return true
}
