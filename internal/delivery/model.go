package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoContact      = errors.New("recipient has no contact for channel")
	ErrUnknownChannel = errors.New("unknown delivery channel")
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelBoth     Channel = "both"
)

func ParseChannel(s string) (Channel, error) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(s))); c {
	case ChannelEmail, ChannelWhatsApp, ChannelBoth:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

type Recipient struct {
	UserID   int
	Name     string
	Email    string
	WhatsApp string
}

// Document is a rendered report ready to be sent.
type Document struct {
	Kind        string
	ReferenceID int
	FileName    string
	Content     []byte
}

type Request struct {
	SenderID  int
	Channel   Channel
	Recipient Recipient
	Document  Document
}

// Attempt is the outcome of delivering a document over a single channel.
type Attempt struct {
	Channel     Channel `json:"channel"`
	Destination string  `json:"destination"`
	Status      string  `json:"status"`
	Error       string  `json:"error,omitempty"`
}

type LogEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	UserName    string    `json:"userName,omitempty"`
	UserEmail   string    `json:"userEmail,omitempty"`
	SenderID    int       `json:"senderId"`
	Kind        string    `json:"kind"`
	ReferenceID int       `json:"referenceId"`
	Channel     Channel   `json:"channel"`
	Destination string    `json:"destination"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
