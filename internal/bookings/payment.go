package bookings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentDetails is one of the accepted payment variants. Each variant
// validates its own fields; handlers never branch on method strings.
type PaymentDetails interface {
	Method() string
	Validate() error
}

// CardDetails pays by credit or debit card
type CardDetails struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"` // MM/YY
}

func (CardDetails) Method() string { return "CARD" }

func (c CardDetails) Validate() error {
	digits := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return fmt.Errorf("%w: card number must be 13-19 digits", ErrInvalidPayment)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: card number must be numeric", ErrInvalidPayment)
		}
	}
	if c.CardHolder == "" {
		return fmt.Errorf("%w: card holder is required", ErrInvalidPayment)
	}
	if len(c.Expiry) != 5 || c.Expiry[2] != '/' {
		return fmt.Errorf("%w: expiry must be MM/YY", ErrInvalidPayment)
	}
	return nil
}

// UPIDetails pays through a UPI virtual payment address
type UPIDetails struct {
	VPA string `json:"vpa"`
}

func (UPIDetails) Method() string { return "UPI" }

func (u UPIDetails) Validate() error {
	at := strings.Index(u.VPA, "@")
	if at < 1 || at == len(u.VPA)-1 {
		return fmt.Errorf("%w: UPI address must look like name@provider", ErrInvalidPayment)
	}
	return nil
}

// WalletDetails pays from a prepaid wallet
type WalletDetails struct {
	Provider string `json:"provider"`
	WalletID string `json:"wallet_id"`
}

func (WalletDetails) Method() string { return "WALLET" }

func (w WalletDetails) Validate() error {
	if w.Provider == "" {
		return fmt.Errorf("%w: wallet provider is required", ErrInvalidPayment)
	}
	if w.WalletID == "" {
		return fmt.Errorf("%w: wallet id is required", ErrInvalidPayment)
	}
	return nil
}

// ParsePaymentDetails decodes the raw payment payload into the variant
// named by method.
func ParsePaymentDetails(method string, raw json.RawMessage) (PaymentDetails, error) {
	switch method {
	case "CARD":
		var details CardDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
		}
		return details, nil
	case "UPI":
		var details UPIDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
		}
		return details, nil
	case "WALLET":
		var details WalletDetails
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayment, err)
		}
		return details, nil
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidPayment, method)
	}
}
