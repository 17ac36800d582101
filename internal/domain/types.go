package domain

import "strings"

// ReservationStatus values match the integer codes stored in reservations.status.
type ReservationStatus int

const (
	StatusPending ReservationStatus = iota
	StatusConfirmed
	StatusCompleted
	StatusCancelled
)

func (s ReservationStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s ReservationStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// CanTransitionTo reports whether an admin may move a reservation from s to next.
// Re-applying the current status is allowed so notes can be edited.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// ParseReservationStatus accepts either the name or the numeric code.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "0":
		return StatusPending, true
	case "confirmed", "1":
		return StatusConfirmed, true
	case "completed", "2":
		return StatusCompleted, true
	case "cancelled", "canceled", "3":
		return StatusCancelled, true
	}
	return 0, false
}

// LocationType is the kind of a pickup/dropoff point.
type LocationType int

const (
	LocationAirport LocationType = iota
	LocationHotel
	LocationAddress
)

// Supported site languages. Turkish is the fallback.
const (
	LangTR = "tr"
	LangDE = "de"
	LangRU = "ru"
	LangEN = "en"
)

var SupportedLanguages = []string{LangTR, LangDE, LangRU, LangEN}

// NormalizeLang maps anything unsupported to Turkish.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, l := range SupportedLanguages {
		if l == lang {
			return l
		}
	}
	return LangTR
}

// Currency codes. EUR is the canonical base; other rates mean "1 EUR = rate units".
const (
	CurrencyEUR = "EUR"
	CurrencyTRY = "TRY"
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
)

// CurrencySymbol returns the display symbol for a stored currency code.
func CurrencySymbol(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case CurrencyUSD:
		return "$"
	case CurrencyTRY:
		return "₺"
	case CurrencyGBP:
		return "£"
	default:
		return "€"
	}
}
