package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Sender delivers a rendered email. smtpSender is the production
// implementation; tests substitute their own.
type Sender interface {
	Send(msg EmailMessage) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(msg EmailMessage) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, msg.To, msg.Subject, msg.HTML)

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(body))
}

// EmailConsumer drains queued email messages and delivers them.
type EmailConsumer struct {
	sender Sender
}

func NewEmailConsumer(sender Sender) *EmailConsumer {
	return &EmailConsumer{sender: sender}
}

func (c *EmailConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			c.handleMessage(msg)
		}
		slog.Info("email consumer channel closed, stopping")
	}()
}

func (c *EmailConsumer) handleMessage(msg amqp.Delivery) {
	var email EmailMessage
	if err := json.Unmarshal(msg.Body, &email); err != nil {
		slog.Error("failed to unmarshal email message", "error", err)
		msg.Nack(false, false)
		return
	}

	if err := c.sender.Send(email); err != nil {
		slog.Error("failed to deliver email", "to", email.To, "subject", email.Subject, "error", err)
		msg.Nack(false, true) // requeue
		return
	}

	slog.Info("delivered email", "to", email.To, "subject", email.Subject)
	msg.Ack(false)
}
