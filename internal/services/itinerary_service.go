package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const (
	itineraryTitle   = "İmperial VİP Turizm"
	itineraryFooter  = "Imperial VIP Transfer - 2026"
	contactEmail     = "info@transferimperialvip.com"
	phoneRoundTrip   = "+90 532 580 70 77"
	phoneOneWay      = "+90 533 925 10 20"
	unicodeFontFile  = "DejaVuSans.ttf"
	unicodeBoldFile  = "DejaVuSans-Bold.ttf"
	unicodeFontAlias = "dejavu"
)

// ItineraryFilename is the attachment name for a reservation document.
func ItineraryFilename(id int64, lang string) string {
	return fmt.Sprintf("Rezervasyon_%d_%s.pdf", id, domain.NormalizeLang(lang))
}

type itineraryRow struct {
	Label string
	Value string
}

// itineraryView is the language-resolved content shared by the PDF and the
// confirmation e-mail.
type itineraryView struct {
	Labels      ItineraryLabels
	Arrival     []itineraryRow
	Return      []itineraryRow
	FooterPhone string
	Email       string
}

func (v itineraryView) RoundTrip() bool { return len(v.Return) > 0 }

func buildItineraryView(r models.Reservation, lang string) itineraryView {
	t := LabelsFor(lang)
	symbol := domain.CurrencySymbol(r.CurrencyCode())

	arrivalDate := "-"
	if r.TransferDate != nil {
		arrivalDate = utils.FormatDateTR(*r.TransferDate)
	}
	arrivalDate = strings.TrimSpace(arrivalDate + " " + r.TransferTime)

	note := strings.TrimSpace(r.Notes)
	if note == "" {
		note = "-"
	}

	v := itineraryView{
		Labels:      t,
		FooterPhone: phoneOneWay,
		Email:       strings.TrimSpace(r.CustomerEmail),
		Arrival: []itineraryRow{
			{t.FullName, r.CustomerName},
			{t.Phone, r.CustomerPhone},
			{t.Email, utils.Dash(r.CustomerEmail)},
			{t.PickupPoint, r.PickupLocation},
			{t.DropoffPoint, r.DropoffLocation},
			{t.ArrivalDate, arrivalDate},
			{t.ArrivalFlight, utils.Dash(r.FlightNumber)},
			{t.Airline, utils.Dash(r.AirlineCompany)},
			{t.HotelName, utils.Dash(r.HotelName)},
			{t.Passengers, r.PassengerNames()},
			{t.VehicleType, r.VehicleName()},
			{t.Price, utils.DisplayPrice(r.Price(), symbol)},
			{t.Adults, strconv.Itoa(r.Adults())},
			{t.Children, strconv.Itoa(r.Children())},
			{t.ChildSeats, strconv.Itoa(r.ChildSeats())},
			{t.SpecialNote, note},
		},
	}

	if r.HasReturnLeg() {
		returnDate := utils.FormatDateTR(*r.ReturnTransferDate)
		if strings.TrimSpace(r.ReturnTransferTime) != "" {
			returnDate += " " + strings.TrimSpace(r.ReturnTransferTime)
		}
		v.Return = []itineraryRow{
			{t.ReturnDate, returnDate},
			{t.ReturnFlight, utils.Dash(r.ReturnFlightNumber)},
			{t.PickupTime, utils.Dash(r.ReturnTransferTime)},
		}
		v.FooterPhone = phoneRoundTrip
	}
	return v
}

// ItineraryService renders the reservation document. When FontDir holds
// DejaVuSans.ttf the text is embedded as UTF-8; otherwise a core font is used
// and characters outside its code page are folded to ASCII.
type ItineraryService struct {
	FontDir string
}

// Render returns the PDF bytes and the attachment filename.
func (s ItineraryService) Render(r models.Reservation, lang string) ([]byte, string, error) {
	lang = domain.NormalizeLang(lang)
	pdf := s.build(r, lang)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render itinerary %d/%s: %w", r.ID, lang, err)
	}
	return buf.Bytes(), ItineraryFilename(r.ID, lang), nil
}

func (s ItineraryService) build(r models.Reservation, lang string) *gofpdf.Fpdf {
	v := buildItineraryView(r, lang)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ItineraryFilename(r.ID, lang), true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	family, tr := s.font(pdf)
	pages := 1
	if v.RoundTrip() {
		pages = 2
	}

	page := func(n int, heading string, rows []itineraryRow, phone string) {
		pdf.AddPage()
		pdf.SetFillColor(0, 0, 0)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont(family, "B", 22)
		pdf.SetXY(0, 0)
		pdf.CellFormat(210, 24, tr(itineraryTitle), "", 1, "C", true, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetLeftMargin(15)
		pdf.SetXY(15, 36)
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 8, tr(heading), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		for _, row := range rows {
			pdf.SetFont(family, "B", 11)
			pdf.CellFormat(60, 7, tr(row.Label), "", 0, "L", false, 0, "")
			pdf.SetFont(family, "", 11)
			pdf.MultiCell(120, 7, tr(row.Value), "", "R", false)
		}

		pdf.Ln(10)
		pdf.SetFont(family, "", 11)
		pdf.CellFormat(0, 6, tr(itineraryFooter), "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(0, 6, tr(contactEmail+" • "+phone), "", 1, "L", false, 0, "")
		pdf.Ln(6)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(180, 6, fmt.Sprintf("-- %d of %d --", n, pages), "", 1, "C", false, 0, "")
	}

	page(1, v.Labels.ArrivalInfo, v.Arrival, v.FooterPhone)
	if v.RoundTrip() {
		page(2, v.Labels.ReturnInfo, v.Return, phoneRoundTrip)
	}
	return pdf
}

// font registers the embedded UTF-8 family when available and returns the
// family name with the matching text translator.
func (s ItineraryService) font(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if s.FontDir != "" {
		regular := filepath.Join(s.FontDir, unicodeFontFile)
		bold := filepath.Join(s.FontDir, unicodeBoldFile)
		if fileExists(regular) {
			pdf.AddUTF8Font(unicodeFontAlias, "", regular)
			if fileExists(bold) {
				pdf.AddUTF8Font(unicodeFontAlias, "B", bold)
			} else {
				pdf.AddUTF8Font(unicodeFontAlias, "B", regular)
			}
			if !pdf.Err() {
				return unicodeFontAlias, func(s string) string { return s }
			}
			pdf.ClearError()
		}
	}
	cp := pdf.UnicodeTranslatorFromDescriptor("")
	return "Helvetica", func(s string) string { return cp(foldToLatin1(s)) }
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var latinFold = strings.NewReplacer(
	"İ", "I", "ı", "i", "Ş", "S", "ş", "s", "Ğ", "G", "ğ", "g",
	"А", "A", "Б", "B", "В", "V", "Г", "G", "Д", "D", "Е", "E", "Ё", "E", "Ж", "Zh",
	"З", "Z", "И", "I", "Й", "Y", "К", "K", "Л", "L", "М", "M", "Н", "N", "О", "O",
	"П", "P", "Р", "R", "С", "S", "Т", "T", "У", "U", "Ф", "F", "Х", "Kh", "Ц", "Ts",
	"Ч", "Ch", "Ш", "Sh", "Щ", "Shch", "Ъ", "", "Ы", "Y", "Ь", "", "Э", "E", "Ю", "Yu", "Я", "Ya",
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "ё", "e", "ж", "zh",
	"з", "z", "и", "i", "й", "y", "к", "k", "л", "l", "м", "m", "н", "n", "о", "o",
	"п", "p", "р", "r", "с", "s", "т", "t", "у", "u", "ф", "f", "х", "kh", "ц", "ts",
	"ч", "ch", "ш", "sh", "щ", "shch", "ъ", "", "ы", "y", "ь", "", "э", "e", "ю", "yu", "я", "ya",
	"₺", "TL",
)

// foldToLatin1 maps characters missing from the core font code page.
func foldToLatin1(s string) string {
	return latinFold.Replace(s)
}
