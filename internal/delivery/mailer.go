package delivery

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
)

type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends documents as e-mail attachments over SMTP.
type Mailer struct {
	sender messageSender
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		sender: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendDocument(ctx context.Context, to, subject, body string, doc Document) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "delivery.mailer.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	msg := m.newMessage(to, subject, body, doc)
	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) newMessage(to, subject, body string, doc Document) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(
		doc.FileName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(doc.Content)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {"application/pdf"},
		}),
	)
	return msg
}
