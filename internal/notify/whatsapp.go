package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"imperialvip/internal/config"
)

// ErrChannelDisabled is returned when the document channel is switched off or
// lacks credentials.
var ErrChannelDisabled = errors.New("whatsapp channel disabled or not configured")

type DocumentSender interface {
	Enabled() bool
	SendDocument(ctx context.Context, filename string, pdf []byte, caption string) error
}

// WhatsApp sends PDF documents through the Cloud API: upload the media, then
// post a document message referencing it.
type WhatsApp struct {
	Settings config.WhatsAppSettings
	HTTP     *http.Client
}

func NewWhatsApp(s config.WhatsAppSettings) WhatsApp {
	return WhatsApp{Settings: s, HTTP: &http.Client{Timeout: s.Timeout}}
}

func (w WhatsApp) Enabled() bool { return w.Settings.Configured() }

func (w WhatsApp) client() *http.Client {
	if w.HTTP != nil {
		return w.HTTP
	}
	return http.DefaultClient
}

func (w WhatsApp) endpoint(resource string) string {
	base := strings.TrimRight(w.Settings.BaseURL, "/")
	return fmt.Sprintf("%s/%s/%s/%s", base, w.Settings.APIVersion, w.Settings.PhoneNumberID, resource)
}

func (w WhatsApp) SendDocument(ctx context.Context, filename string, pdf []byte, caption string) error {
	if !w.Enabled() {
		return ErrChannelDisabled
	}
	mediaID, err := w.upload(ctx, filename, pdf)
	if err != nil {
		return err
	}
	return w.sendMessage(ctx, mediaID, filename, caption)
}

func (w WhatsApp) upload(ctx context.Context, filename string, pdf []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(pdf); err != nil {
		return "", err
	}
	_ = mw.WriteField("type", "application/pdf")
	_ = mw.WriteField("messaging_product", "whatsapp")
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint("media"), &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := w.do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || out.ID == "" {
		return "", fmt.Errorf("media upload: no id in response %s", truncate(raw))
	}
	return out.ID, nil
}

type documentMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Document         documentPayload `json:"document"`
}

type documentPayload struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Caption  string `json:"caption"`
}

func (w WhatsApp) sendMessage(ctx context.Context, mediaID, filename, caption string) error {
	payload, err := json.Marshal(documentMessage{
		MessagingProduct: "whatsapp",
		To:               w.Settings.RecipientPhone,
		Type:             "document",
		Document:         documentPayload{ID: mediaID, Filename: filename, Caption: caption},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint("messages"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if _, err := w.do(req); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func (w WhatsApp) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+w.Settings.AccessToken)
	resp, err := w.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw))
	}
	return raw, nil
}

func truncate(b []byte) string {
	const max = 300
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
