package service

import (
	"context"
	"fmt"
	"strings"

	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendNewMessageNotification(ctx context.Context, to string, msg *domain.Message) error {
	subject := fmt.Sprintf("New message from %s", msg.GuestName)
	body := FormatNewMessage(msg)
	return s.send(ctx, to, subject, body)
}

func (s *emailService) SendDailyDigest(ctx context.Context, to string, alerts *domain.Alerts) error {
	subject := fmt.Sprintf("Daily summary %s", alerts.Today)
	return s.send(ctx, to, subject, FormatDigest(alerts))
}

func FormatNewMessage(msg *domain.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Guest: %s\n", msg.GuestName)
	if contact := msg.Contact(); contact != "" {
		fmt.Fprintf(&b, "Contact: %s\n", contact)
	}
	if msg.Source != nil {
		fmt.Fprintf(&b, "Source: %s\n", *msg.Source)
	}
	fmt.Fprintf(&b, "\n%s\n", msg.Body)
	return b.String()
}

// FormatDigest renders the alerts as a plain text email
func FormatDigest(alerts *domain.Alerts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary for %s\n", alerts.Today)

	section := func(title string, items []domain.ReservationAlert, line func(domain.ReservationAlert) string) {
		fmt.Fprintf(&b, "\n%s (%d)\n", title, len(items))
		for _, item := range items {
			b.WriteString("  - " + line(item) + "\n")
		}
	}

	section("Upcoming check-ins", alerts.UpcomingCheckIns, func(a domain.ReservationAlert) string {
		return fmt.Sprintf("%s, %s, %s", a.Reservation.CheckIn, a.Reservation.CabinName, a.Reservation.GuestName)
	})
	section("Upcoming check-outs", alerts.UpcomingCheckOuts, func(a domain.ReservationAlert) string {
		return fmt.Sprintf("%s, %s, %s", a.Reservation.CheckOut, a.Reservation.CabinName, a.Reservation.GuestName)
	})
	section("Pending balances", alerts.PendingBalances, func(a domain.ReservationAlert) string {
		return fmt.Sprintf("%s, %s: %.0f of %.0f due", a.Reservation.GuestName, a.Reservation.CabinName,
			a.Balance.Balance, a.Balance.Quoted)
	})

	fmt.Fprintf(&b, "\nUnread messages (%d)\n", len(alerts.UnreadMessages))
	for _, m := range alerts.UnreadMessages {
		fmt.Fprintf(&b, "  - %s: %s\n", m.GuestName, preview(m.Body, 80))
	}
	return b.String()
}

type noopEmailService struct{}

// NewNoopEmailService logs instead of sending. Used when SendGrid is not configured.
func NewNoopEmailService() EmailService {
	return noopEmailService{}
}

func (noopEmailService) SendNewMessageNotification(ctx context.Context, to string, msg *domain.Message) error {
	logger.Debug("Email disabled, skipping new message notification", "to", to, "messageID", msg.ID)
	return nil
}

func (noopEmailService) SendDailyDigest(ctx context.Context, to string, alerts *domain.Alerts) error {
	logger.Debug("Email disabled, skipping daily digest", "to", to, "today", alerts.Today)
	return nil
}
