package bookings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardDetailsValidate(t *testing.T) {
	valid := CardDetails{CardNumber: "4111 1111 1111 1111", CardHolder: "Asha Rao", Expiry: "09/27"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		card CardDetails
	}{
		{"too short", CardDetails{CardNumber: "4111", CardHolder: "Asha Rao", Expiry: "09/27"}},
		{"non numeric", CardDetails{CardNumber: "4111x1111111111111", CardHolder: "Asha Rao", Expiry: "09/27"}},
		{"missing holder", CardDetails{CardNumber: "4111111111111111", Expiry: "09/27"}},
		{"bad expiry", CardDetails{CardNumber: "4111111111111111", CardHolder: "Asha Rao", Expiry: "0927"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.card.Validate(), ErrInvalidPayment)
		})
	}
}

func TestUPIDetailsValidate(t *testing.T) {
	assert.NoError(t, UPIDetails{VPA: "asha@okbank"}.Validate())
	assert.ErrorIs(t, UPIDetails{VPA: "ashaokbank"}.Validate(), ErrInvalidPayment)
	assert.ErrorIs(t, UPIDetails{VPA: "@okbank"}.Validate(), ErrInvalidPayment)
	assert.ErrorIs(t, UPIDetails{VPA: "asha@"}.Validate(), ErrInvalidPayment)
}

func TestWalletDetailsValidate(t *testing.T) {
	assert.NoError(t, WalletDetails{Provider: "paytm", WalletID: "w-123"}.Validate())
	assert.ErrorIs(t, WalletDetails{WalletID: "w-123"}.Validate(), ErrInvalidPayment)
	assert.ErrorIs(t, WalletDetails{Provider: "paytm"}.Validate(), ErrInvalidPayment)
}

func TestParsePaymentDetails(t *testing.T) {
	card, err := ParsePaymentDetails("CARD", json.RawMessage(`{"card_number":"4111111111111111","card_holder":"Asha Rao","expiry":"09/27"}`))
	require.NoError(t, err)
	assert.Equal(t, "CARD", card.Method())
	assert.NoError(t, card.Validate())

	upi, err := ParsePaymentDetails("UPI", json.RawMessage(`{"vpa":"asha@okbank"}`))
	require.NoError(t, err)
	assert.Equal(t, "UPI", upi.Method())

	wallet, err := ParsePaymentDetails("WALLET", json.RawMessage(`{"provider":"paytm","wallet_id":"w-123"}`))
	require.NoError(t, err)
	assert.Equal(t, "WALLET", wallet.Method())
}

func TestParsePaymentDetailsRejectsBadInput(t *testing.T) {
	_, err := ParsePaymentDetails("CRYPTO", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = ParsePaymentDetails("CARD", json.RawMessage(`not json`))
	assert.ErrorIs(t, err, ErrInvalidPayment)
}
