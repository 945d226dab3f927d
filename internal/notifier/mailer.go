package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/SidhantUppal/roombook/internal/models"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(msg)
}

// BuildMessage renders the administrator email for a booking event.
func (m *Mailer) BuildMessage(event models.BookingEvent) (string, string) {
	const layout = "02-01-2006 15:04"

	stay := fmt.Sprintf("%s to %s",
		event.BookingStart.Format(layout),
		event.BookingEnd.Format(layout),
	)

	switch event.Event {
	case models.EventBookingCancelled:
		return "Booking cancelled",
			fmt.Sprintf("Booking #%d cancelled. Room %d, %s.", event.BookingID, event.RoomNumber, stay)
	default:
		return "New booking",
			fmt.Sprintf("New booking #%d. Room %d, %s.", event.BookingID, event.RoomNumber, stay)
	}
}
