package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	portalmail "github.com/regionportal/cms/internal/mail"
)

var (
	ErrContactFieldsRequired = errors.New("name, email and message are required")
	ErrContactEmailInvalid   = errors.New("email address is invalid")
	ErrContactNoRecipients   = errors.New("no contact recipients configured")
	ErrContactSenderMissing  = errors.New("no mail sender configured")
	ErrContactDelivery       = errors.New("contact message delivery failed")
)

const contactSubject = "Нове повідомлення з сайту"

// ContactInput is a visitor's message from the contact form.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// ContactService relays contact form messages to the configured recipients.
type ContactService struct {
	sender     portalmail.Sender
	from       string
	recipients []string
	fallback   []string
}

// NewContactService builds a relay. fallback is used only when recipients is empty.
func NewContactService(sender portalmail.Sender, from string, recipients, fallback []string) *ContactService {
	return &ContactService{
		sender:     sender,
		from:       strings.TrimSpace(from),
		recipients: compactAddresses(recipients),
		fallback:   compactAddresses(fallback),
	}
}

// Recipients returns the list a message would be sent to.
func (s *ContactService) Recipients() []string {
	if len(s.recipients) > 0 {
		return s.recipients
	}
	return s.fallback
}

// Submit validates input and sends exactly one message. Nothing is sent when
// validation fails or no recipients are configured.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return ErrContactFieldsRequired
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ErrContactEmailInvalid
	}

	recipients := s.Recipients()
	if len(recipients) == 0 {
		slog.Error("contact relay has no recipients configured")
		return ErrContactNoRecipients
	}
	if s.sender == nil {
		slog.Error("contact relay has no mail sender")
		return ErrContactSenderMissing
	}

	msg := portalmail.Message{
		From:    s.from,
		To:      recipients,
		ReplyTo: email,
		Subject: contactSubject,
		Body:    fmt.Sprintf("Ім'я: %s\nEmail: %s\n\n%s", name, email, message),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		slog.Error("failed to deliver contact message", "recipients", len(recipients), "error", err)
		return fmt.Errorf("%w: %w", ErrContactDelivery, err)
	}

	slog.Info("contact message delivered", "recipients", len(recipients))
	return nil
}

func compactAddresses(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
