package delivery

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/gymapi/internal/telemetry/metrics"
	"github.com/2beens/gymapi/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=delivery_mocks_test.go -package=delivery_test

type mailSender interface {
	SendDocument(ctx context.Context, to, subject, body string, doc Document) error
}

type whatsAppSender interface {
	SendDocument(ctx context.Context, to, caption string, doc Document) error
}

type documentArchiver interface {
	Archive(ctx context.Context, doc Document) (string, error)
}

type logStore interface {
	Add(ctx context.Context, entry LogEntry) (*LogEntry, error)
}

// Dispatcher delivers rendered documents over email and WhatsApp and records every attempt.
type Dispatcher struct {
	mailer         mailSender
	whatsApp       whatsAppSender
	archiver       documentArchiver
	logs           logStore
	metricsManager *metrics.Manager
}

// NewDispatcher creates the dispatcher; archiver may be nil.
func NewDispatcher(
	mailer mailSender,
	whatsApp whatsAppSender,
	archiver documentArchiver,
	logs logStore,
	metricsManager *metrics.Manager,
) *Dispatcher {
	return &Dispatcher{
		mailer:         mailer,
		whatsApp:       whatsApp,
		archiver:       archiver,
		logs:           logs,
		metricsManager: metricsManager,
	}
}

// Send delivers the document over the requested channel. For ChannelBoth every channel the
// recipient has a contact for is tried and the failures are combined.
func (d *Dispatcher) Send(ctx context.Context, req Request) (_ []Attempt, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "delivery.dispatcher.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("channel", string(req.Channel)),
		attribute.String("kind", req.Document.Kind),
		attribute.Int("reference.id", req.Document.ReferenceID),
	)

	channels, err := channelsFor(req.Channel, req.Recipient)
	if err != nil {
		return nil, err
	}

	tmpl := templateFor(req.Document.Kind)
	attempts := make([]Attempt, 0, len(channels))
	for _, channel := range channels {
		attempt, sendErr := d.sendOne(ctx, req, channel, tmpl)
		attempts = append(attempts, attempt)
		err = multierr.Append(err, sendErr)
	}

	// nothing reached the recipient, nothing to archive
	if d.archiver != nil && anySent(attempts) {
		if fileID, archiveErr := d.archiver.Archive(ctx, req.Document); archiveErr != nil {
			log.Errorf("archive %s [%d]: %s", req.Document.Kind, req.Document.ReferenceID, archiveErr)
		} else {
			log.Debugf("archived %s [%d] as %s", req.Document.Kind, req.Document.ReferenceID, fileID)
		}
	}

	return attempts, err
}

func (d *Dispatcher) sendOne(ctx context.Context, req Request, channel Channel, tmpl messageTemplate) (Attempt, error) {
	attempt := Attempt{
		Channel: channel,
		Status:  StatusSent,
	}

	var sendErr error
	switch channel {
	case ChannelEmail:
		attempt.Destination = req.Recipient.Email
		sendErr = d.mailer.SendDocument(ctx, req.Recipient.Email, tmpl.subject, tmpl.emailBody, req.Document)
	case ChannelWhatsApp:
		attempt.Destination = req.Recipient.WhatsApp
		sendErr = d.whatsApp.SendDocument(ctx, req.Recipient.WhatsApp, tmpl.caption(recipientName(req.Recipient)), req.Document)
	}

	if sendErr != nil {
		attempt.Status = StatusFailed
		attempt.Error = sendErr.Error()
		sendErr = fmt.Errorf("%s: %w", channel, sendErr)
		log.Errorf("deliver %s [%d] via %s to %s: %s", req.Document.Kind, req.Document.ReferenceID, channel, attempt.Destination, sendErr)
	}

	if d.metricsManager != nil {
		d.metricsManager.CounterDeliveries.WithLabelValues(string(channel), attempt.Status).Inc()
	}

	if _, logErr := d.logs.Add(ctx, LogEntry{
		UserID:      req.Recipient.UserID,
		SenderID:    req.SenderID,
		Kind:        req.Document.Kind,
		ReferenceID: req.Document.ReferenceID,
		Channel:     channel,
		Destination: attempt.Destination,
		Content:     tmpl.logContent(channel, attempt.Destination),
		Status:      attempt.Status,
		Error:       attempt.Error,
	}); logErr != nil {
		log.Errorf("failed to store delivery log: %s", logErr)
	}

	return attempt, sendErr
}

func channelsFor(channel Channel, recipient Recipient) ([]Channel, error) {
	switch channel {
	case ChannelEmail:
		if recipient.Email == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoContact, ChannelEmail)
		}
		return []Channel{ChannelEmail}, nil
	case ChannelWhatsApp:
		if recipient.WhatsApp == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoContact, ChannelWhatsApp)
		}
		return []Channel{ChannelWhatsApp}, nil
	case ChannelBoth:
		var channels []Channel
		if recipient.Email != "" {
			channels = append(channels, ChannelEmail)
		}
		if recipient.WhatsApp != "" {
			channels = append(channels, ChannelWhatsApp)
		}
		if len(channels) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoContact, ChannelBoth)
		}
		return channels, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
}

func anySent(attempts []Attempt) bool {
	for _, a := range attempts {
		if a.Status == StatusSent {
			return true
		}
	}
	return false
}

func recipientName(r Recipient) string {
	if r.Name == "" {
		return "Aluno"
	}
	return r.Name
}
