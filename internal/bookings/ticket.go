package bookings

import (
	"fmt"
	"io"

	qrcode "github.com/yeqown/go-qrcode"
)

// WriteTicketQR renders the booking ticket as a QR image. Scanning the
// code at the door yields the booking reference for lookup.
func WriteTicketQR(w io.Writer, booking *Booking) error {
	payload := fmt.Sprintf("%s|%s|%s", booking.Reference, booking.ShowtimeID, booking.UserID)

	qrc, err := qrcode.New(payload)
	if err != nil {
		return fmt.Errorf("failed to generate ticket QR: %w", err)
	}

	if err := qrc.SaveTo(w); err != nil {
		return fmt.Errorf("failed to write ticket QR: %w", err)
	}

	return nil
}
