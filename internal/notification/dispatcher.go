package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/ticketly/ticket-service/internal/service"
)

const (
	routingKeySend = "email.send"

	subjectConfirmed     = "Transaction Confirmed"
	subjectRejected      = "Transaction Rejected"
	subjectPasswordReset = "Password Reset Request"
)

// EmailMessage is the wire format queued for the email consumer.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Publisher is satisfied by rabbitmq.Publisher.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Dispatcher renders email bodies from data structs and queues them for
// delivery. It keeps all presentation out of the services that trigger it.
type Dispatcher struct {
	pub     Publisher
	baseURL string
}

func NewDispatcher(pub Publisher, frontendBaseURL string) *Dispatcher {
	return &Dispatcher{pub: pub, baseURL: frontendBaseURL}
}

var _ service.Notifier = (*Dispatcher)(nil)

func (d *Dispatcher) TransactionConfirmed(ctx context.Context, email service.ConfirmationEmail) error {
	return d.dispatch(email.To, subjectConfirmed, confirmedTmpl, email)
}

func (d *Dispatcher) TransactionRejected(ctx context.Context, email service.RejectionEmail) error {
	return d.dispatch(email.To, subjectRejected, rejectedTmpl, email)
}

func (d *Dispatcher) PasswordReset(ctx context.Context, email service.PasswordResetEmail) error {
	data := struct {
		ResetURL string
	}{
		ResetURL: fmt.Sprintf("%s/reset-password?email=%s&token=%s",
			d.baseURL, url.QueryEscape(email.To), url.QueryEscape(email.ResetToken)),
	}
	return d.dispatch(email.To, subjectPasswordReset, resetTmpl, data)
}

func (d *Dispatcher) dispatch(to, subject string, tmpl *template.Template, data any) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s email: %w", subject, err)
	}
	return d.pub.Publish(routingKeySend, EmailMessage{
		To:      to,
		Subject: subject,
		HTML:    body.String(),
	})
}
