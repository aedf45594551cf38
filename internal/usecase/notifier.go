package usecase

//go:generate mockgen -source=notifier.go -destination=../../tests/mock/usecase/notifier.go -package=usecasemock

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"course-enrollment/internal/pkg/errs"
	"course-enrollment/internal/usecase/shared"
)

type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// EnrollmentNotifier turns settlement events into confirmation emails.
type EnrollmentNotifier interface {
	HandleEnrollmentSettled(ctx context.Context, evt shared.EnrollmentSettledEvent) error
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<p>Hi,</p>
<p>Your enrollment in <strong>{{.ClassName}}</strong>{{if .InstructorName}} with {{.InstructorName}}{{end}} is confirmed.</p>
<p>Amount paid: {{.Amount}}<br>Transaction: {{.TransactionID}}</p>`))

type enrollmentNotifierImpl struct {
	mailer Mailer
	logger *slog.Logger
}

func NewEnrollmentNotifier(mailer Mailer, logger *slog.Logger) EnrollmentNotifier {
	return &enrollmentNotifierImpl{mailer: mailer, logger: logger}
}

func (n *enrollmentNotifierImpl) HandleEnrollmentSettled(ctx context.Context, evt shared.EnrollmentSettledEvent) error {
	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, struct {
		ClassName      string
		InstructorName string
		Amount         string
		TransactionID  string
	}{
		ClassName:      evt.ClassName,
		InstructorName: evt.InstructorName,
		Amount:         formatCents(evt.AmountCents),
		TransactionID:  evt.TransactionID,
	})
	if err != nil {
		return errs.Wrap(err, "failed to render confirmation")
	}

	msg := MailMessage{
		To:       evt.StudentEmail,
		Subject:  fmt.Sprintf("Enrollment confirmed: %s", evt.ClassName),
		HTMLBody: body.String(),
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "enrollment confirmation sent",
		"transaction_id", evt.TransactionID, "to", evt.StudentEmail)
	return nil
}

func formatCents(c int64) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
