package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/notify"
	"imperialvip/internal/utils"

	"golang.org/x/sync/errgroup"
)

const defaultChannelTimeout = 60 * time.Second

type itineraryRenderer interface {
	Render(r models.Reservation, lang string) ([]byte, string, error)
}

// ReservationNotifier is what the reservation lifecycle calls after a write.
type ReservationNotifier interface {
	ReservationCreated(ctx context.Context, r models.Reservation) []notify.Attempt
	ReservationConfirmed(ctx context.Context, r models.Reservation) []notify.Attempt
}

// NotificationService fans a reservation out to the customer, the admins and
// the document channel. Each channel runs in its own goroutine with its own
// timeout; failures are recorded and never returned.
type NotificationService struct {
	Mailer     notify.Mailer
	Documents  notify.DocumentSender
	Attempts   notify.AttemptRecorder
	Itinerary  itineraryRenderer
	AdminEmail string
	// ChannelTimeout bounds one channel; zero means one minute.
	ChannelTimeout time.Duration
	Now            func() time.Time
}

func (s NotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s NotificationService) timeout() time.Duration {
	if s.ChannelTimeout > 0 {
		return s.ChannelTimeout
	}
	return defaultChannelTimeout
}

// AdminRecipients splits the configured admin list.
func (s NotificationService) AdminRecipients() []string {
	return utils.SplitList(s.AdminEmail)
}

type renderedDoc struct {
	lang     string
	filename string
	data     []byte
}

// documents renders one itinerary per language; a failed render is logged
// and the channel proceeds without that attachment.
func (s NotificationService) documents(ctx context.Context, r models.Reservation, langs ...string) []renderedDoc {
	out := []renderedDoc{}
	seen := map[string]bool{}
	for _, lang := range langs {
		lang = domain.NormalizeLang(lang)
		if seen[lang] || s.Itinerary == nil {
			continue
		}
		seen[lang] = true
		data, name, err := s.Itinerary.Render(r, lang)
		if err != nil {
			utils.LogError(utils.RequestIDFrom(ctx), "notify", "render_pdf", fmt.Sprintf("reservation_id=%d lang=%s", r.ID, lang), err)
			continue
		}
		out = append(out, renderedDoc{lang: lang, filename: name, data: data})
	}
	return out
}

func attachmentsOf(docs []renderedDoc) []notify.Attachment {
	out := make([]notify.Attachment, 0, len(docs))
	for _, d := range docs {
		out = append(out, notify.PDF(d.filename, d.data))
	}
	return out
}

// ReservationCreated sends the customer confirmation, the admin alert and
// the document message concurrently and waits for all of them.
func (s NotificationService) ReservationCreated(ctx context.Context, r models.Reservation) []notify.Attempt {
	lang := r.Lang()
	customerDocs := s.documents(ctx, r, lang)
	adminDocs := s.documents(ctx, r, domain.LangTR, lang)

	var (
		mu       sync.Mutex
		attempts []notify.Attempt
	)
	collect := func(as ...notify.Attempt) {
		mu.Lock()
		attempts = append(attempts, as...)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		collect(s.sendCustomer(ctx, r, customerDocs))
		return nil
	})
	g.Go(func() error {
		collect(s.sendAdmins(ctx, r, adminDocs)...)
		return nil
	})
	g.Go(func() error {
		collect(s.sendDocuments(ctx, r, adminDocs)...)
		return nil
	})
	_ = g.Wait()
	return attempts
}

// ReservationConfirmed re-sends the customer confirmation only.
func (s NotificationService) ReservationConfirmed(ctx context.Context, r models.Reservation) []notify.Attempt {
	docs := s.documents(ctx, r, r.Lang())
	return []notify.Attempt{s.sendCustomer(ctx, r, docs)}
}

func (s NotificationService) sendCustomer(ctx context.Context, r models.Reservation, docs []renderedDoc) notify.Attempt {
	to := strings.TrimSpace(r.CustomerEmail)
	if to == "" {
		return s.record(ctx, notify.Attempt{ReservationID: r.ID, Channel: notify.ChannelCustomerEmail, Skipped: true, Error: "müşteri e-postası yok"})
	}
	lang := r.Lang()
	body, err := ConfirmationHTML(r, lang)
	if err == nil {
		err = s.send(ctx, notify.Email{
			To:          to,
			Subject:     ConfirmationSubject(r.ID, lang),
			HTML:        body,
			InlineLogo:  true,
			Attachments: attachmentsOf(docs),
		})
	}
	return s.record(ctx, attemptFrom(r.ID, notify.ChannelCustomerEmail, to, err))
}

func (s NotificationService) sendAdmins(ctx context.Context, r models.Reservation, docs []renderedDoc) []notify.Attempt {
	recipients := s.AdminRecipients()
	if len(recipients) == 0 {
		return []notify.Attempt{s.record(ctx, notify.Attempt{ReservationID: r.ID, Channel: notify.ChannelAdminEmail, Skipped: true, Error: "admin e-postası tanımlı değil"})}
	}
	body, renderErr := AdminAlertHTML(r)
	out := make([]notify.Attempt, 0, len(recipients))
	for _, to := range recipients {
		err := renderErr
		if err == nil {
			err = s.send(ctx, notify.Email{
				To:          to,
				Subject:     AdminAlertSubject(r),
				HTML:        body,
				Attachments: attachmentsOf(docs),
			})
		}
		out = append(out, s.record(ctx, attemptFrom(r.ID, notify.ChannelAdminEmail, to, err)))
	}
	return out
}

func (s NotificationService) sendDocuments(ctx context.Context, r models.Reservation, docs []renderedDoc) []notify.Attempt {
	if s.Documents == nil || !s.Documents.Enabled() {
		return []notify.Attempt{s.record(ctx, notify.Attempt{ReservationID: r.ID, Channel: notify.ChannelWhatsApp, Skipped: true, Error: "kanal kapalı"})}
	}
	out := []notify.Attempt{}
	for _, d := range docs {
		caption := WhatsAppCaption(r)
		if d.lang != domain.LangTR {
			caption = fmt.Sprintf("📄 %s - Reservation #%d", strings.ToUpper(d.lang), r.ID)
		}
		cctx, cancel := context.WithTimeout(ctx, s.timeout())
		err := s.Documents.SendDocument(cctx, d.filename, d.data, caption)
		cancel()
		out = append(out, s.record(ctx, attemptFrom(r.ID, notify.ChannelWhatsApp, d.filename, err)))
	}
	return out
}

func (s NotificationService) send(ctx context.Context, e notify.Email) error {
	if s.Mailer == nil {
		return fmt.Errorf("mailer not configured")
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	return s.Mailer.Send(cctx, e)
}

func attemptFrom(id int64, channel, recipient string, err error) notify.Attempt {
	a := notify.Attempt{ReservationID: id, Channel: channel, Recipient: recipient, OK: err == nil}
	if err != nil {
		a.Error = err.Error()
	}
	return a
}

// record logs the attempt and appends it to the diagnostic log.
func (s NotificationService) record(ctx context.Context, a notify.Attempt) notify.Attempt {
	a.At = s.now()
	reqID := utils.RequestIDFrom(ctx)
	msg := fmt.Sprintf("reservation_id=%d channel=%s recipient=%s", a.ReservationID, a.Channel, a.Recipient)
	switch {
	case a.Skipped:
		utils.LogEvent(reqID, "notify", "skip", msg+" reason="+a.Error)
	case a.OK:
		utils.LogEvent(reqID, "notify", "sent", msg)
	default:
		utils.LogError(reqID, "notify", "failed", msg, fmt.Errorf("%s", a.Error))
	}
	if s.Attempts != nil {
		if err := s.Attempts.Record(ctx, a); err != nil {
			utils.LogWarn(reqID, "notify", "attempt_log", "diagnostic log write failed", err)
		}
	}
	return a
}

// SendContact mails a contact form to every admin and, when the sender left
// an address, an auto-reply. It reports whether all admin mails went out.
func (s NotificationService) SendContact(ctx context.Context, m models.ContactMessage) bool {
	body, err := ContactHTML(m, s.now())
	allOK := err == nil
	for _, to := range s.AdminRecipients() {
		sendErr := err
		if sendErr == nil {
			sendErr = s.send(ctx, notify.Email{To: to, Subject: ContactSubject(m.FullName), HTML: body})
		}
		if sendErr != nil {
			allOK = false
		}
		s.record(ctx, attemptFrom(0, notify.ChannelContactEmail, to, sendErr))
	}

	if email := strings.TrimSpace(m.Email); email != "" {
		reply, err := ContactAutoReplyHTML(m.FullName)
		if err == nil {
			err = s.send(ctx, notify.Email{To: email, Subject: ContactAutoReplySubject, HTML: reply})
		}
		s.record(ctx, attemptFrom(0, notify.ChannelContactEmail, email, err))
	}
	return allOK
}

// AsyncNotifier runs notifications off the request path. The request
// context's values are kept but its cancellation is not.
type AsyncNotifier struct {
	Inner ReservationNotifier
	WG    *sync.WaitGroup
}

func (a AsyncNotifier) run(ctx context.Context, fn func(context.Context)) {
	bg := context.WithoutCancel(ctx)
	if a.WG != nil {
		a.WG.Add(1)
	}
	go func() {
		if a.WG != nil {
			defer a.WG.Done()
		}
		defer func() {
			if rec := recover(); rec != nil {
				utils.LogError(utils.RequestIDFrom(bg), "notify", "panic", fmt.Sprintf("%v", rec), nil)
			}
		}()
		fn(bg)
	}()
}

func (a AsyncNotifier) ReservationCreated(ctx context.Context, r models.Reservation) []notify.Attempt {
	a.run(ctx, func(c context.Context) { a.Inner.ReservationCreated(c, r) })
	return nil
}

func (a AsyncNotifier) ReservationConfirmed(ctx context.Context, r models.Reservation) []notify.Attempt {
	a.run(ctx, func(c context.Context) { a.Inner.ReservationConfirmed(c, r) })
	return nil
}
