package notification

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
)

type MailSink struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailSink(host string, port int, user, password, from string) (*MailSink, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &MailSink{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}, nil
}

func (s *MailSink) Name() string { return "smtp" }

func (s *MailSink) build(msg Message) *mailyak.MailYak {
	mail := mailyak.New(s.addr, s.auth)
	mail.To(msg.To)
	mail.From(s.from)
	mail.FromName("Reservas")
	mail.Subject(msg.Subject)
	mail.Plain().Set(msg.Body)
	return mail
}

// Send returns when ctx is done even if the SMTP exchange is stalled;
// mailyak has no cancellable send, so the exchange is left to finish on its own.
func (s *MailSink) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("message has no recipient")
	}

	mail := s.build(msg)
	result := make(chan error, 1)
	go func() { result <- mail.Send() }()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", s.addr, ctx.Err())
	}
}
