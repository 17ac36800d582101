package models

import (
	"strings"
	"time"

	"imperialvip/internal/domain"
)

// Reservation is a transfer booking. Nullable columns are pointers; the
// accessor methods below are the single place defaults are applied on read.
type Reservation struct {
	ID                       int64                    `json:"id"`
	CustomerName             string                   `json:"customerName"`
	CustomerPhone            string                   `json:"customerPhone"`
	CustomerEmail            string                   `json:"customerEmail"`
	PickupLocationType       domain.LocationType      `json:"pickupLocationType"`
	PickupLocation           string                   `json:"pickupLocation"`
	PickupLocationDetail     string                   `json:"pickupLocationDetail"`
	DropoffLocationType      domain.LocationType      `json:"dropoffLocationType"`
	DropoffLocation          string                   `json:"dropoffLocation"`
	DropoffLocationDetail    string                   `json:"dropoffLocationDetail"`
	TransferDate             *time.Time               `json:"transferDate,omitempty"`
	TransferTime             string                   `json:"transferTime"`
	RegionID                 *int64                   `json:"regionId,omitempty"`
	FlightNumber             string                   `json:"flightNumber"`
	AirlineCompany           string                   `json:"airlineCompany"`
	HotelName                string                   `json:"hotelName"`
	IsReturnTransfer         bool                     `json:"isReturnTransfer"`
	ReturnTransferDate       *time.Time               `json:"returnTransferDate,omitempty"`
	ReturnTransferTime       string                   `json:"returnTransferTime"`
	ReturnFlightNumber       string                   `json:"returnFlightNumber"`
	PassengerCount           *int                     `json:"passengerCount,omitempty"`
	NumberOfAdults           *int                     `json:"numberOfAdults,omitempty"`
	NumberOfChildren         *int                     `json:"numberOfChildren,omitempty"`
	ChildSeatCount           *int                     `json:"childSeatCount,omitempty"`
	LuggageCount             *int                     `json:"luggageCount,omitempty"`
	ChildNames               string                   `json:"childNames"`
	Language                 string                   `json:"language"`
	VehicleID                *int64                   `json:"vehicleId,omitempty"`
	AdditionalPassengerNames string                   `json:"additionalPassengerNames"`
	DistanceKm               *float64                 `json:"distanceKm,omitempty"`
	EstimatedPrice           *float64                 `json:"estimatedPrice,omitempty"`
	Currency                 string                   `json:"currency"`
	Notes                    string                   `json:"notes"`
	Status                   domain.ReservationStatus `json:"status"`
	AdminNotes               string                   `json:"adminNotes"`
	CreatedAt                *time.Time               `json:"createdAt,omitempty"`
	UpdatedAt                *time.Time               `json:"updatedAt,omitempty"`
	ConfirmedAt              *time.Time               `json:"confirmedAt,omitempty"`

	Vehicle *Vehicle `json:"vehicle,omitempty"`
	Region  *Region  `json:"region,omitempty"`
}

// Adults defaults to the stored passenger count, then 1, for legacy rows.
func (r Reservation) Adults() int {
	if r.NumberOfAdults != nil {
		return *r.NumberOfAdults
	}
	if r.PassengerCount != nil {
		return *r.PassengerCount
	}
	return 1
}

func (r Reservation) Children() int {
	if r.NumberOfChildren != nil {
		return *r.NumberOfChildren
	}
	return 0
}

func (r Reservation) ChildSeats() int {
	if r.ChildSeatCount != nil {
		return *r.ChildSeatCount
	}
	return 0
}

func (r Reservation) Passengers() int {
	if r.PassengerCount != nil && *r.PassengerCount > 0 {
		return *r.PassengerCount
	}
	return 1
}

func (r Reservation) Price() float64 {
	if r.EstimatedPrice != nil && *r.EstimatedPrice > 0 {
		return *r.EstimatedPrice
	}
	return 0
}

func (r Reservation) Distance() float64 {
	if r.DistanceKm != nil {
		return *r.DistanceKm
	}
	return 0
}

func (r Reservation) CurrencyCode() string {
	c := strings.ToUpper(strings.TrimSpace(r.Currency))
	if c == "" {
		return domain.CurrencyEUR
	}
	return c
}

// Lang is the customer's language; legacy rows without one read as English.
func (r Reservation) Lang() string {
	if strings.TrimSpace(r.Language) == "" {
		return domain.LangEN
	}
	return domain.NormalizeLang(r.Language)
}

// HasReturnLeg is true only when the return flag is set and a return date exists.
func (r Reservation) HasReturnLeg() bool {
	return r.IsReturnTransfer && r.ReturnTransferDate != nil
}

// PassengerNames lists the customer first, then any additional names.
func (r Reservation) PassengerNames() string {
	extra := strings.TrimSpace(r.AdditionalPassengerNames)
	if extra == "" {
		return r.CustomerName
	}
	return r.CustomerName + ", " + extra
}

func (r Reservation) VehicleName() string {
	if r.Vehicle == nil || strings.TrimSpace(r.Vehicle.Name) == "" {
		return "-"
	}
	return r.Vehicle.Name
}
