package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"imperialvip/internal/domain/models"
)

func TestItineraryPageCount(t *testing.T) {
	r := sampleReservation()
	svc := ItineraryService{}

	if n := svc.build(r, "en").PageCount(); n != 1 {
		t.Fatalf("one-way pages = %d, want 1", n)
	}

	back := time.Date(2026, 7, 21, 0, 0, 0, 0, time.Local)
	r.IsReturnTransfer = true
	r.ReturnTransferDate = &back
	r.ReturnTransferTime = "18:00"
	if n := svc.build(r, "ru").PageCount(); n != 2 {
		t.Fatalf("round-trip pages = %d, want 2", n)
	}

	r.ReturnTransferDate = nil
	if n := svc.build(r, "de").PageCount(); n != 1 {
		t.Fatalf("return flag without date is one-way, pages = %d", n)
	}
}

func TestRenderProducesNamedPDF(t *testing.T) {
	data, name, err := ItineraryService{}.Render(sampleReservation(), "xx")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if name != "Rezervasyon_21_tr.pdf" {
		t.Fatalf("filename = %s", name)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestItineraryViewRows(t *testing.T) {
	r := sampleReservation()
	r.NumberOfAdults = intPtr(2)
	r.NumberOfChildren = intPtr(1)
	v := buildItineraryView(r, "tr")

	if len(v.Arrival) != 16 || v.RoundTrip() {
		t.Fatalf("arrival rows = %d, round trip = %v", len(v.Arrival), v.RoundTrip())
	}
	if v.Arrival[0].Label != "Adı Soyadı" || v.Arrival[0].Value != "John Smith" {
		t.Fatalf("first row = %+v", v.Arrival[0])
	}
	if v.FooterPhone != phoneOneWay {
		t.Fatalf("one-way footer phone = %s", v.FooterPhone)
	}
	if v.Arrival[5].Value != "14.07.2026 14:30" {
		t.Fatalf("arrival date = %q", v.Arrival[5].Value)
	}
}

func TestLabelDictionariesShareKeys(t *testing.T) {
	for _, lang := range []string{"tr", "en", "de", "ru"} {
		l := LabelsFor(lang)
		if l.FullName == "" || l.ArrivalInfo == "" || l.ReturnInfo == "" || l.SpecialNote == "" {
			t.Fatalf("%s labels incomplete: %+v", lang, l)
		}
	}
	if LabelsFor("fr") != LabelsFor("tr") {
		t.Fatalf("unknown language should use Turkish labels")
	}
}

func TestFoldToLatin1(t *testing.T) {
	if got := foldToLatin1("İmperial VİP Şoför ₺"); got != "Imperial VIP Soför TL" {
		t.Fatalf("fold = %q", got)
	}
	if got := foldToLatin1("Москва"); got != "Moskva" {
		t.Fatalf("fold = %q", got)
	}
}

func TestEmailTemplates(t *testing.T) {
	r := sampleReservation()
	r.Notes = "<script>alert(1)</script>"
	r.Vehicle = &models.Vehicle{Name: "Vito"}

	html, err := ConfirmationHTML(r, "en")
	if err != nil {
		t.Fatalf("ConfirmationHTML: %v", err)
	}
	if !strings.Contains(html, "cid:imperial_logo") || !strings.Contains(html, "John Smith") {
		t.Fatalf("confirmation body missing content")
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("notes must be escaped")
	}

	admin, err := AdminAlertHTML(r)
	if err != nil || !strings.Contains(admin, "Vito") {
		t.Fatalf("admin alert: %v", err)
	}
	if ConfirmationSubject(5, "de") != "Reservierungsbestätigung - #5 | Imperial VIP Transfer" {
		t.Fatalf("german subject = %q", ConfirmationSubject(5, "de"))
	}
	if AdminAlertSubject(r) != "🚗 Yeni Rezervasyon - #21 | John Smith" {
		t.Fatalf("admin subject = %q", AdminAlertSubject(r))
	}
}
