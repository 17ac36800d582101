package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/utils"
)

// ConfirmationSubject is the customer e-mail subject in the customer's language.
func ConfirmationSubject(id int64, lang string) string {
	switch domain.NormalizeLang(lang) {
	case domain.LangDE:
		return fmt.Sprintf("Reservierungsbestätigung - #%d | Imperial VIP Transfer", id)
	case domain.LangRU:
		return fmt.Sprintf("Подтверждение бронирования - #%d | Imperial VIP Transfer", id)
	case domain.LangEN:
		return fmt.Sprintf("Reservation Confirmation - #%d | Imperial VIP Transfer", id)
	default:
		return fmt.Sprintf("Rezervasyon Onayı - #%d | Imperial VIP Transfer", id)
	}
}

func AdminAlertSubject(r models.Reservation) string {
	return fmt.Sprintf("🚗 Yeni Rezervasyon - #%d | %s", r.ID, r.CustomerName)
}

func ContactSubject(name string) string {
	return fmt.Sprintf("📩 Yeni İletişim Formu - %s | Imperial VIP", name)
}

const ContactAutoReplySubject = "Mesajınız Alındı - Imperial VIP Transfer"

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "row"}}<tr>
<td style="padding:7px 0;font-size:13px;font-weight:bold;color:#000;border-bottom:1px solid #eee;width:40%;">{{.Label}}</td>
<td style="padding:7px 0;font-size:13px;color:#000;border-bottom:1px solid #eee;">{{.Value}}</td>
</tr>{{end}}

{{define "confirmation"}}<!DOCTYPE html>
<html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1.0"></head>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,Helvetica,sans-serif;">
<table width="100%" cellpadding="0" cellspacing="0" border="0" style="max-width:600px;margin:0 auto;background:#ffffff;">
<tr><td style="background:#1B1B3A;padding:18px 30px;text-align:center;">
<img src="cid:imperial_logo" alt="Imperial VIP" height="50" style="height:50px;display:block;margin:0 auto;" />
</td></tr>
<tr><td style="padding:24px 30px 0 30px;">
<p style="font-size:16px;font-weight:bold;margin:0 0 12px 0;color:#000;">{{.Labels.ArrivalInfo}}</p>
<table width="100%" cellpadding="0" cellspacing="0" border="0">
{{range .Arrival}}{{template "row" .}}{{end}}
</table>
</td></tr>
{{if .RoundTrip}}<tr><td style="padding:24px 30px 0 30px;">
<p style="font-size:16px;font-weight:bold;margin:0 0 12px 0;color:#000;">{{.Labels.ReturnInfo}}</p>
<table width="100%" cellpadding="0" cellspacing="0" border="0">
{{range .Return}}{{template "row" .}}{{end}}
</table>
</td></tr>{{end}}
<tr><td style="background:#1B1B3A;padding:16px 30px;text-align:center;">
<p style="color:#ffffff;font-size:12px;margin:0;">Imperial VIP Transfer - 2026</p>
<p style="color:#ffffff;font-size:11px;margin:4px 0 0 0;">info@transferimperialvip.com &bull; {{.FooterPhone}}</p>
</td></tr>
</table>
</body></html>{{end}}

{{define "admin"}}<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
<div style="background:#0f172a;padding:24px;text-align:center;border-radius:10px 10px 0 0;">
<h1 style="color:#d4af37;margin:0;font-size:24px;">🚗 YENİ REZERVASYON</h1>
<p style="color:#94a3b8;margin:8px 0 0 0;">Rezervasyon No: #{{.ID}}</p>
</div>
<div style="background:#ffffff;padding:25px;border:1px solid #e2e8f0;border-top:none;">
<h2 style="color:#0f172a;margin:0 0 15px 0;">👤 Müşteri Bilgileri</h2>
<table style="width:100%;border-collapse:collapse;margin-bottom:20px;">
<tr><td><strong>Ad Soyad:</strong></td><td>{{.CustomerName}}</td></tr>
<tr><td><strong>Telefon:</strong></td><td><a href="tel:{{.CustomerPhone}}">{{.CustomerPhone}}</a></td></tr>
<tr><td><strong>E-posta:</strong></td><td>{{.Email}}</td></tr>
</table>
<h2 style="color:#0f172a;margin:0 0 15px 0;">📍 Transfer Bilgileri</h2>
<table style="width:100%;border-collapse:collapse;margin-bottom:20px;">
<tr><td><strong>Tarih &amp; Saat:</strong></td><td><strong>{{.When}}</strong></td></tr>
<tr><td><strong>Alınacak Nokta:</strong></td><td>{{.PickupKind}}<br><strong>{{.Pickup}}</strong><br><em>{{.PickupDetail}}</em></td></tr>
<tr><td><strong>Bırakılacak Nokta:</strong></td><td>{{.DropoffKind}}<br><strong>{{.Dropoff}}</strong><br><em>{{.DropoffDetail}}</em></td></tr>
<tr><td><strong>Uçuş Kodu:</strong></td><td>{{.Flight}}</td></tr>
</table>
<h2 style="color:#0f172a;margin:0 0 15px 0;">🚙 Araç &amp; Yolcu</h2>
<table style="width:100%;border-collapse:collapse;margin-bottom:20px;">
<tr><td><strong>Tercih Edilen Araç:</strong></td><td>{{.Vehicle}}</td></tr>
<tr><td><strong>Yolcu Sayısı:</strong></td><td>{{.Passengers}} kişi</td></tr>
<tr><td><strong>Bagaj Sayısı:</strong></td><td>{{.Luggage}} adet</td></tr>
<tr><td><strong>Fiyat:</strong></td><td>{{.Price}}</td></tr>
</table>
{{if .Notes}}<div style="background:#fef9e7;padding:15px;border-left:4px solid #d4af37;"><strong>📝 Müşteri Notu:</strong><br><span>{{.Notes}}</span></div>{{end}}
<div style="margin-top:20px;text-align:center;">
<a href="https://wa.me/{{.WhatsAppPhone}}" style="display:inline-block;background:#25d366;color:white;padding:15px 30px;text-decoration:none;border-radius:5px;font-weight:bold;">📱 WhatsApp ile İletişime Geç</a>
</div>
</div>
<div style="background:#0f172a;padding:15px;text-align:center;border-radius:0 0 10px 10px;">
<p style="color:#94a3b8;margin:0;font-size:12px;">Oluşturulma: {{.Created}} | Imperial VIP Transfer</p>
</div>
</body></html>{{end}}

{{define "contact"}}<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
<div style="background:#1e40af;padding:20px;text-align:center;border-radius:10px 10px 0 0;"><h1 style="color:white;margin:0;">📩 Yeni İletişim Formu</h1></div>
<div style="background:#ffffff;padding:25px;border:1px solid #e2e8f0;">
<table style="width:100%;border-collapse:collapse;">
<tr><td><strong>👤 Ad Soyad:</strong></td><td>{{.FullName}}</td></tr>
<tr><td><strong>📧 E-posta:</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
<tr><td><strong>📞 Telefon:</strong></td><td><a href="tel:{{.Phone}}">{{.Phone}}</a></td></tr>
{{if .Subject}}<tr><td><strong>📌 Konu:</strong></td><td>{{.Subject}}</td></tr>{{end}}
</table>
<div style="margin-top:20px;padding:15px;background:#f8fafc;border-left:4px solid #1e40af;">
<strong>💬 Mesaj:</strong>
<p style="margin:10px 0 0 0;white-space:pre-wrap;">{{.Message}}</p>
</div>
</div>
<div style="background:#374151;padding:15px;text-align:center;border-radius:0 0 10px 10px;">
<p style="color:#9ca3af;margin:0;font-size:12px;">Gönderilme: {{.Sent}} | Imperial VIP Web Sitesi</p>
</div>
</body></html>{{end}}

{{define "autoreply"}}<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
<div style="background:#0f172a;padding:30px;text-align:center;border-radius:10px 10px 0 0;"><h1 style="color:#d4af37;margin:0;">IMPERIAL <span style="color:white;">VIP</span></h1></div>
<div style="background:#ffffff;padding:30px;border:1px solid #e2e8f0;">
<h2 style="color:#0f172a;">Sayın {{.}},</h2>
<p>Mesajınız başarıyla tarafımıza ulaştı. En kısa sürede sizinle iletişime geçeceğiz.</p>
<p>Acil durumlar için bize doğrudan ulaşabilirsiniz:</p>
<div style="text-align:center;margin:25px 0;">
<a href="tel:+905339251020" style="display:inline-block;background:#0f172a;color:white;padding:12px 25px;text-decoration:none;border-radius:5px;margin:5px;">📞 +90 533 925 10 20</a>
<a href="https://wa.me/905339251020" style="display:inline-block;background:#25d366;color:white;padding:12px 25px;text-decoration:none;border-radius:5px;margin:5px;">💬 WhatsApp</a>
</div>
<p>Teşekkür ederiz,<br><strong>Imperial VIP Transfer Ekibi</strong></p>
</div>
</body></html>{{end}}
`))

func renderMail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", name, err)
	}
	return buf.String(), nil
}

// ConfirmationHTML is the customer e-mail body.
func ConfirmationHTML(r models.Reservation, lang string) (string, error) {
	return renderMail("confirmation", buildItineraryView(r, lang))
}

func locationKind(t domain.LocationType) string {
	if t == domain.LocationAirport {
		return "✈️ Havalimanı"
	}
	return "🏨 Otel"
}

// AdminAlertHTML is the Turkish back-office alert body.
func AdminAlertHTML(r models.Reservation) (string, error) {
	date := "-"
	if r.TransferDate != nil {
		date = utils.FormatDateTR(*r.TransferDate)
	}
	created := "-"
	if r.CreatedAt != nil {
		created = r.CreatedAt.Format("02.01.2006 15:04")
	}
	vehicle := "Belirtilmedi"
	if r.Vehicle != nil && strings.TrimSpace(r.Vehicle.Name) != "" {
		vehicle = r.Vehicle.Name
	}
	luggage := 0
	if r.LuggageCount != nil {
		luggage = *r.LuggageCount
	}
	orDefault := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return renderMail("admin", map[string]any{
		"ID":            r.ID,
		"CustomerName":  r.CustomerName,
		"CustomerPhone": r.CustomerPhone,
		"Email":         orDefault(r.CustomerEmail, "Belirtilmedi"),
		"When":          date + " - " + r.TransferTime,
		"PickupKind":    locationKind(r.PickupLocationType),
		"Pickup":        r.PickupLocation,
		"PickupDetail":  r.PickupLocationDetail,
		"DropoffKind":   locationKind(r.DropoffLocationType),
		"Dropoff":       r.DropoffLocation,
		"DropoffDetail": r.DropoffLocationDetail,
		"Flight":        orDefault(r.FlightNumber, "Belirtilmedi"),
		"Vehicle":       vehicle,
		"Passengers":    r.Passengers(),
		"Luggage":       luggage,
		"Price":         utils.DisplayPrice(r.Price(), domain.CurrencySymbol(r.CurrencyCode())),
		"Notes":         strings.TrimSpace(r.Notes),
		"WhatsAppPhone": strings.NewReplacer(" ", "", "+", "").Replace(r.CustomerPhone),
		"Created":       created,
	})
}

func ContactHTML(m models.ContactMessage, sent time.Time) (string, error) {
	return renderMail("contact", map[string]any{
		"FullName": m.FullName,
		"Email":    m.Email,
		"Phone":    m.Phone,
		"Subject":  m.Subject,
		"Message":  m.Message,
		"Sent":     sent.Format("02.01.2006 15:04"),
	})
}

func ContactAutoReplyHTML(name string) (string, error) {
	return renderMail("autoreply", name)
}

// WhatsAppCaption summarizes a reservation for the document message.
func WhatsAppCaption(r models.Reservation) string {
	kind := "Tek Yön"
	if r.HasReturnLeg() {
		kind = "Gidiş-Dönüş"
	}
	date := "-"
	if r.TransferDate != nil {
		date = utils.FormatDateTR(*r.TransferDate)
	}
	price := "-"
	if r.Price() > 0 {
		price = utils.DisplayPrice(r.Price(), domain.CurrencySymbol(r.CurrencyCode()))
	}
	lines := []string{
		fmt.Sprintf("🚗 Yeni Rezervasyon #%d", r.ID),
		"👤 " + r.CustomerName,
		"📞 " + r.CustomerPhone,
		fmt.Sprintf("📍 %s → %s", r.PickupLocation, r.DropoffLocation),
		strings.TrimSpace(fmt.Sprintf("📅 %s %s", date, r.TransferTime)),
		"🔄 " + kind,
		"💰 " + price,
	}
	if r.Vehicle != nil && strings.TrimSpace(r.Vehicle.Name) != "" {
		lines = append(lines, "🚙 "+r.Vehicle.Name)
	}
	return strings.Join(lines, "\n")
}
