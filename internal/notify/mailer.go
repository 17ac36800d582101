package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"imperialvip/internal/config"

	"github.com/wneessen/go-mail"
)

// LogoContentID is the cid HTML bodies use to reference the inline logo.
const LogoContentID = "imperial_logo"

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is one outbound message to a single recipient.
type Email struct {
	To          string
	Subject     string
	HTML        string
	InlineLogo  bool
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// SMTPMailer delivers mail with a fresh connection per message.
type SMTPMailer struct {
	Settings config.MailSettings
	// LogoPath is read on every send so a replaced logo is picked up.
	LogoPath string
}

func (m SMTPMailer) Send(ctx context.Context, e Email) error {
	if strings.TrimSpace(m.Settings.SMTPServer) == "" {
		return errors.New("smtp server not configured")
	}
	msg, err := m.buildMessage(e)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(m.Settings.SMTPPort)}
	if m.Settings.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.Settings.Timeout))
	}
	if m.Settings.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Settings.SMTPUsername),
			mail.WithPassword(m.Settings.SMTPPassword),
		)
	}
	if m.Settings.EnableSSL {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(m.Settings.SMTPServer, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

func (m SMTPMailer) buildMessage(e Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.Settings.SenderName, m.Settings.SenderEmail); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(strings.TrimSpace(e.To)); err != nil {
		return nil, fmt.Errorf("recipient address %q: %w", e.To, err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextHTML, e.HTML)

	if e.InlineLogo && m.LogoPath != "" {
		// a missing logo only loses the image
		if logo, err := os.ReadFile(m.LogoPath); err == nil {
			if err := msg.EmbedReader("logo.png", bytes.NewReader(logo),
				mail.WithFileContentID(LogoContentID),
				mail.WithFileContentType(mail.ContentType("image/png")),
			); err != nil {
				return nil, fmt.Errorf("embed logo: %w", err)
			}
		}
	}
	for _, a := range e.Attachments {
		ct := mail.ContentType(a.ContentType)
		if ct == "" {
			ct = mail.TypeAppOctetStream
		}
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data), mail.WithFileContentType(ct)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return msg, nil
}

// PDF wraps a rendered document as an attachment.
func PDF(filename string, data []byte) Attachment {
	return Attachment{Filename: filename, ContentType: "application/pdf", Data: data}
}
