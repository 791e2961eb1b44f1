package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
)

const DefaultUltraMsgBaseURL = "https://api.ultramsg.com"

var ErrWhatsAppNotConfigured = errors.New("whatsapp delivery not configured")

// WhatsApp sends documents through the UltraMsg document API.
type WhatsApp struct {
	baseURL    string
	instance   string
	token      string
	httpClient *http.Client
}

type ultraMsgResponse struct {
	Sent    string `json:"sent"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

func NewWhatsApp(baseURL, instance, token string, httpClient *http.Client) *WhatsApp {
	if baseURL == "" {
		baseURL = DefaultUltraMsgBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &WhatsApp{
		baseURL:    strings.TrimRight(baseURL, "/"),
		instance:   instance,
		token:      token,
		httpClient: httpClient,
	}
}

func (c *WhatsApp) SendDocument(ctx context.Context, to, caption string, doc Document) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "delivery.whatsapp.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if c.instance == "" || c.token == "" {
		return ErrWhatsAppNotConfigured
	}

	body, contentType, err := c.documentForm(to, caption, doc)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages/document", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("create ultramsg request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call ultramsg: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("read ultramsg response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ultramsg status %d: %s", resp.StatusCode, respBytes)
	}

	var ultraMsgResp ultraMsgResponse
	if err := json.Unmarshal(respBytes, &ultraMsgResp); err != nil {
		return fmt.Errorf("unmarshal ultramsg response: %w", err)
	}
	if ultraMsgResp.Error != nil {
		return fmt.Errorf("ultramsg error: %v", ultraMsgResp.Error)
	}

	return nil
}

func (c *WhatsApp) documentForm(to, caption string, doc Document) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"token", c.token},
		{"to", normalizePhone(to)},
		{"filename", doc.FileName},
		{"caption", caption},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	part, err := mw.CreateFormFile("document", doc.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create document part: %w", err)
	}
	if _, err := part.Write(doc.Content); err != nil {
		return nil, "", fmt.Errorf("write document part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

// normalizePhone keeps the leading plus sign and the digits.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var sb strings.Builder
	for i, r := range phone {
		if (r >= '0' && r <= '9') || (i == 0 && r == '+') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
