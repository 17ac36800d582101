package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/repositories"
	"imperialvip/internal/utils"
)

// MinLeadTime is how far ahead a public booking must be.
const MinLeadTime = time.Hour

type reservationStore interface {
	Insert(ctx context.Context, m models.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (models.Reservation, error)
	List(ctx context.Context, status *domain.ReservationStatus, limit int) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminNotes *string, updatedAt time.Time, confirmedAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int, error)
}

type vehicleByID interface {
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
}

// catalogLookup is the cached catalog used for pricing and document refs.
type catalogLookup interface {
	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)
	GetRegion(ctx context.Context, id int64) (models.Region, error)
}

// ReservationInput is a booking request as submitted. Optional numbers are
// nil when the form left them out.
type ReservationInput struct {
	CustomerName             string              `json:"customerName"`
	CustomerPhone            string              `json:"customerPhone"`
	CustomerEmail            string              `json:"customerEmail"`
	PickupLocationType       domain.LocationType `json:"pickupLocationType"`
	PickupLocation           string              `json:"pickupLocation"`
	PickupLocationDetail     string              `json:"pickupLocationDetail"`
	DropoffLocationType      domain.LocationType `json:"dropoffLocationType"`
	DropoffLocation          string              `json:"dropoffLocation"`
	DropoffLocationDetail    string              `json:"dropoffLocationDetail"`
	TransferDate             string              `json:"transferDate"`
	TransferTime             string              `json:"transferTime"`
	RegionID                 *int64              `json:"regionId"`
	VehicleID                int64               `json:"vehicleId"`
	FlightNumber             string              `json:"flightNumber"`
	AirlineCompany           string              `json:"airlineCompany"`
	HotelName                string              `json:"hotelName"`
	IsReturnTransfer         bool                `json:"isReturnTransfer"`
	ReturnTransferDate       string              `json:"returnTransferDate"`
	ReturnTransferTime       string              `json:"returnTransferTime"`
	ReturnFlightNumber       string              `json:"returnFlightNumber"`
	NumberOfAdults           *int                `json:"numberOfAdults"`
	NumberOfChildren         *int                `json:"numberOfChildren"`
	ChildSeatCount           *int                `json:"childSeatCount"`
	LuggageCount             *int                `json:"luggageCount"`
	ChildNames               string              `json:"childNames"`
	AdditionalPassengerNames string              `json:"additionalPassengerNames"`
	DistanceKm               *float64            `json:"distanceKm"`
	EstimatedPrice           *float64            `json:"estimatedPrice"`
	Currency                 string              `json:"currency"`
	Language                 string              `json:"language"`
	Notes                    string              `json:"notes"`
}

// CreateMode distinguishes customer bookings from back-office entries.
type CreateMode int

const (
	// PublicBooking enforces the lead-time rule.
	PublicBooking CreateMode = iota
	// ManualEntry is an admin booking taken by phone; a region is required and
	// the lead-time rule does not apply.
	ManualEntry
)

// ReservationService owns the reservation lifecycle.
type ReservationService struct {
	Repo     reservationStore
	Vehicles vehicleByID
	Catalog  catalogLookup
	Notifier ReservationNotifier
	Now      func() time.Time
}

func (s ReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// validate reports every missing field at once, then the lead-time rule.
func (s ReservationService) validate(in ReservationInput, mode CreateMode, now time.Time) (transferDate *time.Time, returnDate *time.Time, err error) {
	var fe domain.FieldErrors
	if blank(in.CustomerName) {
		fe.Add("customerName", "Ad Soyad zorunludur.")
	}
	if blank(in.CustomerPhone) {
		fe.Add("customerPhone", "Telefon numarası zorunludur.")
	}
	if blank(in.PickupLocation) {
		fe.Add("pickupLocation", "Alınacak nokta zorunludur.")
	}
	if blank(in.DropoffLocation) {
		fe.Add("dropoffLocation", "Bırakılacak nokta zorunludur.")
	}
	if in.VehicleID < 1 {
		fe.Add("vehicleId", "Araç seçimi zorunludur.")
	}
	if mode == ManualEntry && (in.RegionID == nil || *in.RegionID < 1) {
		fe.Add("regionId", "Lütfen bir bölge seçiniz.")
	}
	for _, c := range []struct {
		field string
		n     *int
	}{
		{"numberOfAdults", in.NumberOfAdults},
		{"numberOfChildren", in.NumberOfChildren},
		{"childSeatCount", in.ChildSeatCount},
		{"luggageCount", in.LuggageCount},
	} {
		if c.n != nil && *c.n < 0 {
			fe.Add(c.field, "Negatif olamaz.")
		}
	}

	if !blank(in.TransferDate) {
		d, perr := utils.ParseDate(in.TransferDate)
		if perr != nil {
			fe.Add("transferDate", "Geçersiz tarih, YYYY-AA-GG bekleniyor.")
		} else {
			transferDate = &d
		}
	}
	if in.IsReturnTransfer && !blank(in.ReturnTransferDate) {
		d, perr := utils.ParseDate(in.ReturnTransferDate)
		if perr != nil {
			fe.Add("returnTransferDate", "Geçersiz tarih, YYYY-AA-GG bekleniyor.")
		} else {
			returnDate = &d
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, nil, err
	}

	if mode == PublicBooking && !blank(in.TransferTime) {
		day := utils.StartOfDay(now.In(time.Local))
		if transferDate != nil {
			day = *transferDate
		}
		at, cerr := utils.CombineDateClock(day, in.TransferTime)
		// an unparsable clock is stored as typed, like any free-text time
		if cerr == nil && at.Before(now.Add(MinLeadTime)) {
			return nil, nil, domain.FieldErrors{{Field: "transferTime", Msg: "Rezervasyon en az 1 saat sonrası için yapılabilir."}}
		}
	}
	return transferDate, returnDate, nil
}

// Build turns valid input into the row to insert, applying defaults.
func buildReservation(in ReservationInput, transferDate, returnDate *time.Time, lang string, now time.Time) models.Reservation {
	adults := 1
	if in.NumberOfAdults != nil {
		adults = *in.NumberOfAdults
	}
	children := 0
	if in.NumberOfChildren != nil {
		children = *in.NumberOfChildren
	}
	passengers := adults + children
	if passengers < 1 {
		passengers = 1
	}
	seats := 0
	if in.ChildSeatCount != nil {
		seats = *in.ChildSeatCount
	}
	distance := 0.0
	if in.DistanceKm != nil {
		distance = *in.DistanceKm
	}
	price := 0.0
	if in.EstimatedPrice != nil && *in.EstimatedPrice > 0 {
		price = *in.EstimatedPrice
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = domain.CurrencyEUR
	}
	if !blank(in.Language) {
		lang = in.Language
	}
	vehicleID := in.VehicleID
	created := now.UTC()

	m := models.Reservation{
		CustomerName:             strings.TrimSpace(in.CustomerName),
		CustomerPhone:            strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:            strings.TrimSpace(in.CustomerEmail),
		PickupLocationType:       in.PickupLocationType,
		PickupLocation:           strings.TrimSpace(in.PickupLocation),
		PickupLocationDetail:     strings.TrimSpace(in.PickupLocationDetail),
		DropoffLocationType:      in.DropoffLocationType,
		DropoffLocation:          strings.TrimSpace(in.DropoffLocation),
		DropoffLocationDetail:    strings.TrimSpace(in.DropoffLocationDetail),
		TransferDate:             transferDate,
		TransferTime:             strings.TrimSpace(in.TransferTime),
		RegionID:                 in.RegionID,
		FlightNumber:             strings.TrimSpace(in.FlightNumber),
		AirlineCompany:           strings.TrimSpace(in.AirlineCompany),
		HotelName:                strings.TrimSpace(in.HotelName),
		IsReturnTransfer:         in.IsReturnTransfer,
		PassengerCount:           &passengers,
		NumberOfAdults:           &adults,
		NumberOfChildren:         &children,
		ChildSeatCount:           &seats,
		LuggageCount:             in.LuggageCount,
		ChildNames:               strings.TrimSpace(in.ChildNames),
		Language:                 domain.NormalizeLang(lang),
		VehicleID:                &vehicleID,
		AdditionalPassengerNames: strings.TrimSpace(in.AdditionalPassengerNames),
		DistanceKm:               &distance,
		EstimatedPrice:           &price,
		Currency:                 currency,
		Notes:                    strings.TrimSpace(in.Notes),
		Status:                   domain.StatusPending,
		CreatedAt:                &created,
	}
	if in.IsReturnTransfer {
		m.ReturnTransferDate = returnDate
		m.ReturnTransferTime = strings.TrimSpace(in.ReturnTransferTime)
		m.ReturnFlightNumber = strings.TrimSpace(in.ReturnFlightNumber)
	}
	return m
}

// Create validates, persists and notifies. routeLang is the language of the
// page the booking came from and is used when the input names none.
func (s ReservationService) Create(ctx context.Context, in ReservationInput, routeLang string, mode CreateMode) (models.Reservation, error) {
	now := s.now()
	transferDate, returnDate, err := s.validate(in, mode, now)
	if err != nil {
		return models.Reservation{}, err
	}

	m := buildReservation(in, transferDate, returnDate, routeLang, now)
	id, err := s.Repo.Insert(ctx, m)
	if err != nil {
		return models.Reservation{}, repositories.TranslateError("reservation", err)
	}
	m.ID = id
	utils.LogEvent(utils.RequestIDFrom(ctx), "reservation", "create", fmt.Sprintf("reservation_id=%d vehicle_id=%d lang=%s", id, in.VehicleID, m.Language))

	s.attachRefs(ctx, &m)
	if s.Notifier != nil {
		s.Notifier.ReservationCreated(ctx, m)
	}
	return m, nil
}

// attachRefs loads vehicle and region for documents; a missing one is
// left nil.
func (s ReservationService) attachRefs(ctx context.Context, m *models.Reservation) {
	if m.VehicleID != nil && s.Vehicles != nil {
		if v, err := s.Vehicles.GetByID(ctx, *m.VehicleID); err == nil {
			m.Vehicle = &v
		}
	}
	if m.RegionID != nil && s.Catalog != nil {
		if r, err := s.Catalog.GetRegion(ctx, *m.RegionID); err == nil {
			m.Region = &r
		}
	}
}

// Get returns a reservation with its vehicle and region.
func (s ReservationService) Get(ctx context.Context, id int64) (models.Reservation, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Reservation{}, repositories.TranslateError("reservation", err)
	}
	s.attachRefs(ctx, &m)
	return m, nil
}

// List returns the newest reservations, optionally only one status.
func (s ReservationService) List(ctx context.Context, status *domain.ReservationStatus, limit int) ([]models.Reservation, error) {
	list, err := s.Repo.List(ctx, status, limit)
	return list, repositories.TranslateError("reservation", err)
}

func (s ReservationService) Summary(ctx context.Context) (map[string]int, error) {
	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, repositories.TranslateError("reservation", err)
	}
	out := map[string]int{"total": 0}
	for _, st := range []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled} {
		out[strings.ToLower(st.String())] = counts[st]
		out["total"] += counts[st]
	}
	return out, nil
}

// UpdateStatus moves a reservation along the status graph. Entering
// Confirmed stamps ConfirmedAt and re-sends the customer confirmation when an
// address is on file.
func (s ReservationService) UpdateStatus(ctx context.Context, id int64, next domain.ReservationStatus, adminNote string) (models.Reservation, error) {
	if !next.Valid() {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "geçersiz durum"}
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Reservation{}, repositories.TranslateError("reservation", err)
	}
	if !current.Status.CanTransitionTo(next) {
		return models.Reservation{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("%s durumundan %s durumuna geçilemez", current.Status, next),
		}
	}

	now := s.now().UTC()
	var note *string
	if n := strings.TrimSpace(adminNote); n != "" {
		note = &n
		current.AdminNotes = n
	}
	entering := next == domain.StatusConfirmed && current.Status != domain.StatusConfirmed
	var confirmedAt *time.Time
	if entering {
		confirmedAt = &now
		current.ConfirmedAt = &now
	}
	if err := s.Repo.UpdateStatus(ctx, id, next, note, now, confirmedAt); err != nil {
		return models.Reservation{}, repositories.TranslateError("reservation", err)
	}
	current.Status = next
	current.UpdatedAt = &now
	utils.LogEvent(utils.RequestIDFrom(ctx), "reservation", "update_status", fmt.Sprintf("reservation_id=%d status=%s", id, next))

	if entering && !blank(current.CustomerEmail) && s.Notifier != nil {
		s.attachRefs(ctx, &current)
		s.Notifier.ReservationConfirmed(ctx, current)
	}
	return current, nil
}

func (s ReservationService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return repositories.TranslateError("reservation", err)
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "reservation", "delete", fmt.Sprintf("reservation_id=%d", id))
	return nil
}

// PriceQuote is the booking page price answer. Found is false for an
// unknown vehicle.
type PriceQuote struct {
	Found          bool    `json:"success"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formattedPrice"`
	Currency       string  `json:"currency"`
	DistanceKm     float64 `json:"distanceKm"`
	VehicleName    string  `json:"vehicleName"`
}

// CalculatePrice quotes the vehicle's flat transfer fee. Distance is
// validated but never changes the price.
func (s ReservationService) CalculatePrice(ctx context.Context, vehicleID int64, distanceKm float64) (PriceQuote, error) {
	var fe domain.FieldErrors
	if vehicleID < 1 {
		fe.Add("vehicleId", "Araç seçimi zorunludur.")
	}
	if distanceKm <= 0 {
		fe.Add("distanceKm", "Mesafe 0'dan büyük olmalıdır.")
	}
	if err := fe.OrNil(); err != nil {
		return PriceQuote{}, err
	}

	v, err := s.Catalog.GetVehicle(ctx, vehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return PriceQuote{Found: false, DistanceKm: distanceKm}, nil
		}
		return PriceQuote{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(v.Currency))
	if currency == "" {
		currency = domain.CurrencyEUR
	}
	return PriceQuote{
		Found:          true,
		Price:          v.MinimumPrice,
		FormattedPrice: utils.FormatMoney(v.MinimumPrice) + " " + domain.CurrencySymbol(currency),
		Currency:       currency,
		DistanceKm:     distanceKm,
		VehicleName:    v.Name,
	}, nil
}
