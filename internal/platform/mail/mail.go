// Copyright (c) 2026 ScoreHub. All rights reserved.

/*
Package mail provides the outbound delivery channel for confirmation codes.

Delivery is a side effect of signup, never part of the response path: callers
fire sends from a goroutine and log failures. The package exposes a narrow
[Mailer] interface so services can be tested with an in-memory fake.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer delivers a single plain-text message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// # SMTP Delivery

// SMTPMailer sends mail through a relay reachable at Addr ("host:port").
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer creates a mailer that relays through the given SMTP address.
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

// Send delivers the message synchronously. Callers decide the async boundary.
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := strings.Join([]string{
		"From: " + mailer.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(mailer.addr, nil, mailer.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("mail: smtp delivery to %s failed: %w", to, err)
	}
	return nil
}

// # Development Delivery

// LogMailer writes deliveries to the structured log instead of the network.
// It is the default when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a log-backed mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send records the would-be delivery.
func (mailer *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_delivered_to_log",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
