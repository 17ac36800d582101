package services

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"imperialvip/internal/cache"
	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/repositories"
	"imperialvip/internal/utils"
)

const (
	keyHomepageGallery = "homepage_gallery"
	keyGalleryAll      = "gallery_all_images"

	contentTTL          = time.Hour
	homepageGallerySize = 8

	defaultContactSubject = "Anasayfa İletişim Formu"
)

var settingsLanguages = domain.SupportedLanguages

func keySiteSettings(lang string) string { return "site_settings_" + lang }

type settingsStore interface {
	ListAll(ctx context.Context) ([]models.SiteSetting, error)
	Upsert(ctx context.Context, values map[string]string, keys []string, at time.Time) error
}

type galleryStore interface {
	ListActive(ctx context.Context, limit int) ([]models.GalleryImage, error)
	Create(ctx context.Context, g models.GalleryImage) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type contactStore interface {
	Insert(ctx context.Context, m models.ContactMessage) (int64, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type contactMailer interface {
	SendContact(ctx context.Context, m models.ContactMessage) bool
}

// SiteService serves marketing content: settings, gallery and the contact form.
type SiteService struct {
	Settings    settingsStore
	Gallery     galleryStore
	Contacts    contactStore
	Cache       cache.Store
	Invalidator Invalidator
	Mail        contactMailer
	Now         func() time.Time
}

func (s SiteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// langSuffix returns the language of a "_tr/_de/_ru/_en" suffixed key.
func langSuffix(key string) (base, lang string, ok bool) {
	for _, l := range settingsLanguages {
		if strings.HasSuffix(key, "_"+l) {
			return strings.TrimSuffix(key, "_"+l), l, true
		}
	}
	return key, "", false
}

// mergeSettings overlays the lang-suffixed values on the general ones.
func mergeSettings(all []models.SiteSetting, lang string) map[string]string {
	out := map[string]string{}
	overrides := map[string]string{}
	for _, st := range all {
		base, l, suffixed := langSuffix(st.Key)
		switch {
		case !suffixed:
			out[st.Key] = st.Value
		case l == lang:
			overrides[base] = st.Value
		}
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// SettingsFor returns the key/value settings for one language.
func (s SiteService) SettingsFor(ctx context.Context, lang string) (map[string]string, error) {
	lang = domain.NormalizeLang(lang)
	return cache.GetOrLoad(ctx, s.Cache, keySiteSettings(lang), contentTTL, func(ctx context.Context) (map[string]string, error) {
		all, err := s.Settings.ListAll(ctx)
		if err != nil {
			return nil, repositories.TranslateError("site setting", err)
		}
		return mergeSettings(all, lang), nil
	})
}

func (s SiteService) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	list, err := s.Settings.ListAll(ctx)
	return list, repositories.TranslateError("site setting", err)
}

// SaveSettings upserts the given keys and drops every language's cache.
func (s SiteService) SaveSettings(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		k = strings.TrimSpace(k)
		if k == "" {
			return domain.ValidationError{Field: "key", Msg: "ayar anahtarı boş olamaz"}
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	if err := s.Settings.Upsert(ctx, values, keys, s.now().UTC()); err != nil {
		return repositories.TranslateError("site setting", err)
	}
	s.Invalidator.InvalidateSettings(ctx)
	utils.LogEvent(utils.RequestIDFrom(ctx), "settings", "save", fmt.Sprintf("keys=%d", len(keys)))
	return nil
}

func (s SiteService) HomepageGallery(ctx context.Context) ([]models.GalleryImage, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyHomepageGallery, contentTTL, func(ctx context.Context) ([]models.GalleryImage, error) {
		list, err := s.Gallery.ListActive(ctx, homepageGallerySize)
		return list, repositories.TranslateError("gallery image", err)
	})
}

func (s SiteService) GalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyGalleryAll, contentTTL, func(ctx context.Context) ([]models.GalleryImage, error) {
		list, err := s.Gallery.ListActive(ctx, 0)
		return list, repositories.TranslateError("gallery image", err)
	})
}

func (s SiteService) AddGalleryImage(ctx context.Context, g models.GalleryImage) (models.GalleryImage, error) {
	if strings.TrimSpace(g.ImageURL) == "" {
		return g, domain.ValidationError{Field: "imageUrl", Msg: "görsel zorunludur"}
	}
	now := s.now().UTC()
	g.CreatedAt = &now
	id, err := s.Gallery.Create(ctx, g)
	if err != nil {
		return g, repositories.TranslateError("gallery image", err)
	}
	g.ID = id
	s.Invalidator.InvalidateGallery(ctx)
	return g, nil
}

func (s SiteService) DeleteGalleryImage(ctx context.Context, id int64) error {
	if err := s.Gallery.Delete(ctx, id); err != nil {
		return repositories.TranslateError("gallery image", err)
	}
	s.Invalidator.InvalidateGallery(ctx)
	return nil
}

// ContactInput is a contact form submission.
type ContactInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// SubmitContact stores the message and mails it. Mail failures are logged
// by the mailer and do not fail the submission.
func (s SiteService) SubmitContact(ctx context.Context, in ContactInput) (models.ContactMessage, error) {
	var fe domain.FieldErrors
	if blank(in.FullName) {
		fe.Add("fullName", "Ad Soyad zorunludur")
	}
	if blank(in.Email) {
		fe.Add("email", "E-posta zorunludur")
	} else if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		fe.Add("email", "Geçerli bir e-posta adresi giriniz")
	}
	if blank(in.Message) {
		fe.Add("message", "Mesaj zorunludur")
	}
	if err := fe.OrNil(); err != nil {
		return models.ContactMessage{}, err
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = defaultContactSubject
	}
	m := models.ContactMessage{
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   subject,
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now().UTC(),
	}
	id, err := s.Contacts.Insert(ctx, m)
	if err != nil {
		return models.ContactMessage{}, repositories.TranslateError("contact", err)
	}
	m.ID = id
	utils.LogEvent(utils.RequestIDFrom(ctx), "contact", "submit", fmt.Sprintf("contact_id=%d", id))

	if s.Mail != nil {
		s.Mail.SendContact(ctx, m)
	}
	return m, nil
}

func (s SiteService) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	list, err := s.Contacts.List(ctx)
	return list, repositories.TranslateError("contact", err)
}

func (s SiteService) MarkContactRead(ctx context.Context, id int64) error {
	return repositories.TranslateError("contact", s.Contacts.MarkRead(ctx, id))
}

func (s SiteService) DeleteContact(ctx context.Context, id int64) error {
	return repositories.TranslateError("contact", s.Contacts.Delete(ctx, id))
}
