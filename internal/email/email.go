package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/Domenick1991/airsales/config"
	"github.com/Domenick1991/airsales/internal/domain"
	"github.com/Domenick1991/airsales/internal/logger"
	"gopkg.in/gomail.v2"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<h2>Reserva registrada</h2>
<p>Hola {{.Passenger.FirstNames}},</p>
<p>Tu reserva <strong>{{.Reservation.Code}}</strong> para el vuelo {{.Flight.Number}}
({{.Flight.Origin}} &rarr; {{.Flight.Destination}}) del {{.Flight.DepartureTime.Format "2006-01-02 15:04"}}
quedó en estado {{.Reservation.Status}}.</p>
<p>Total: {{.Currency}}{{.Reservation.Total}}</p>`))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Sender struct {
	dialer   Dialer
	from     string
	currency string
}

func NewSender(cfg config.SMTPConfig, currency string) *Sender {
	return NewSenderWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, currency)
}

func NewSenderWithDialer(d Dialer, from, currency string) *Sender {
	return &Sender{dialer: d, from: from, currency: currency}
}

// SendConfirmation mails the passenger the reservation summary.
func (s *Sender) SendConfirmation(_ context.Context, d *domain.ReservationDetails) error {
	msg, err := s.confirmationMessage(d)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		logger.ErrorLogger.WithError(err).WithField("pnr", d.Reservation.Code).Error("send confirmation email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.InfoLogger.WithField("pnr", d.Reservation.Code).Info("confirmation email sent")
	return nil
}

func (s *Sender) confirmationMessage(d *domain.ReservationDetails) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, struct {
		*domain.ReservationDetails
		Currency string
	}{d, s.currency}); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", d.Passenger.Email)
	m.SetHeader("Subject", "Reserva "+d.Reservation.Code)
	m.SetBody("text/html", body.String())
	return m, nil
}
