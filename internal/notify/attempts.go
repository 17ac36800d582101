package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"imperialvip/internal/utils"
)

// Channel names used in attempt records.
const (
	ChannelCustomerEmail = "customer_email"
	ChannelAdminEmail    = "admin_email"
	ChannelWhatsApp      = "whatsapp"
	ChannelContactEmail  = "contact_email"
)

// Attempt is one delivery try on one channel.
type Attempt struct {
	ReservationID int64     `json:"reservation_id"`
	Channel       string    `json:"channel"`
	Recipient     string    `json:"recipient"`
	OK            bool      `json:"ok"`
	Skipped       bool      `json:"skipped,omitempty"`
	Error         string    `json:"error,omitempty"`
	At            time.Time `json:"at"`
}

// Line renders the attempt for the diagnostic log, without the timestamp.
func (a Attempt) Line() string {
	tag := strings.ToUpper(a.Channel)
	status := "OK"
	switch {
	case a.Skipped:
		status = "ATLANDI"
		if a.Error != "" {
			status += ": " + a.Error
		}
	case !a.OK:
		tag += " HATA"
		status = "Hata: " + a.Error
	}
	subject := "İletişim formu"
	if a.ReservationID > 0 {
		subject = fmt.Sprintf("Rezervasyon #%d", a.ReservationID)
	}
	return fmt.Sprintf("[%s] %s -> %s | %s", tag, subject, dashIfEmpty(a.Recipient), status)
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// AttemptRecorder stores delivery attempts for manual follow-up.
type AttemptRecorder interface {
	Record(ctx context.Context, a Attempt) error
}

// FileLog appends "yyyy-MM-dd HH:mm:ss <line>" rows to email_log.txt.
type FileLog struct {
	Path string
	mu   sync.Mutex
}

func NewFileLog(dir string) *FileLog {
	return &FileLog{Path: filepath.Join(dir, "email_log.txt")}
}

func (l *FileLog) Record(_ context.Context, a Attempt) error {
	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	return l.Write(at, a.Line())
}

func (l *FileLog) Write(at time.Time, line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s %s\n", utils.FormatDateTime(at), line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
