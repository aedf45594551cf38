package mail

import (
	"context"

	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase"

	"gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(cfg config.MailConfig) *Sender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send dials per message; gomail has no context support, so ctx is only
// checked before dialing.
func (s *Sender) Send(ctx context.Context, msg usecase.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return errs.Wrapf(err, "failed to send mail to %s", msg.To)
	}
	return nil
}
