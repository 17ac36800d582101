package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/http/middleware"
	"imperialvip/internal/services"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

const defaultReservationListLimit = 200

// confirmationView is what the public confirmation page may see of a booking.
type confirmationView struct {
	ID                 int64      `json:"id"`
	CustomerName       string     `json:"customerName"`
	PickupLocation     string     `json:"pickupLocation"`
	DropoffLocation    string     `json:"dropoffLocation"`
	TransferDate       *time.Time `json:"transferDate,omitempty"`
	TransferTime       string     `json:"transferTime"`
	IsReturnTransfer   bool       `json:"isReturnTransfer"`
	ReturnTransferDate *time.Time `json:"returnTransferDate,omitempty"`
	ReturnTransferTime string     `json:"returnTransferTime"`
	PassengerCount     int        `json:"passengerCount"`
	VehicleName        string     `json:"vehicleName"`
	EstimatedPrice     float64    `json:"estimatedPrice"`
	Currency           string     `json:"currency"`
	Status             string     `json:"status"`
	Language           string     `json:"language"`
}

func newConfirmationView(r models.Reservation) confirmationView {
	return confirmationView{
		ID:                 r.ID,
		CustomerName:       r.CustomerName,
		PickupLocation:     r.PickupLocation,
		DropoffLocation:    r.DropoffLocation,
		TransferDate:       r.TransferDate,
		TransferTime:       r.TransferTime,
		IsReturnTransfer:   r.IsReturnTransfer,
		ReturnTransferDate: r.ReturnTransferDate,
		ReturnTransferTime: r.ReturnTransferTime,
		PassengerCount:     r.Passengers(),
		VehicleName:        r.VehicleName(),
		EstimatedPrice:     r.Price(),
		Currency:           r.CurrencyCode(),
		Status:             r.Status.String(),
		Language:           r.Lang(),
	}
}

// POST /api/:lang/reservations
func (h Handler) CreateReservation(c *gin.Context) {
	var in services.ReservationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := h.Reservations.Create(c.Request.Context(), in, lang(c), services.PublicBooking)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": m.ID})
}

// GET /api/:lang/reservations/:id
func (h Handler) ReservationConfirmation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	m, err := h.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, newConfirmationView(m))
}

func (h Handler) renderItinerary(c *gin.Context, id int64, l string, inline bool) {
	m, err := h.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, filename, err := h.Itinerary.Render(m, l)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "PDF oluşturulamadı", Err: err})
		return
	}
	sendPDF(c, data, filename, inline)
}

type priceRequest struct {
	VehicleID  int64   `json:"vehicleId"`
	DistanceKm float64 `json:"distanceKm"`
}

// POST /api/price
func (h Handler) CalculatePrice(c *gin.Context) {
	var req priceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.Reservations.CalculatePrice(c.Request.Context(), req.VehicleID, req.DistanceKm)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !q.Found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

// =======================
// ADMIN
// =======================

// GET /api/admin/reservations?status=pending&limit=200
func (h Handler) AdminListReservations(c *gin.Context) {
	var status *domain.ReservationStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s, ok := domain.ParseReservationStatus(raw)
		if !ok {
			respondError(c, http.StatusBadRequest, "invalid_status", "geçersiz durum", nil)
			return
		}
		status = &s
	}
	limit := defaultReservationListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_limit", "geçersiz limit", nil)
			return
		}
		limit = n
	}
	items, err := h.Reservations.List(c.Request.Context(), status, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) AdminReservationSummary(c *gin.Context) {
	counts, err := h.Reservations.Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h Handler) AdminGetReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	m, err := h.Reservations.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// AdminCreateReservation records a phone booking. The language comes from
// the body and defaults to Turkish.
func (h Handler) AdminCreateReservation(c *gin.Context) {
	var in services.ReservationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := h.Reservations.Create(c.Request.Context(), in, domain.LangTR, services.ManualEntry)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "reservation", "manual_create",
		"by "+middleware.AdminUsername(c)+" id="+strconv.FormatInt(m.ID, 10))
	c.JSON(http.StatusCreated, m)
}

type statusRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"adminNote"`
}

// PUT /api/admin/reservations/:id/status
func (h Handler) AdminUpdateReservationStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	next, ok := domain.ParseReservationStatus(req.Status)
	if !ok {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "geçersiz durum"})
		return
	}
	m, err := h.Reservations.UpdateStatus(c.Request.Context(), id, next, req.AdminNote)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h Handler) AdminDeleteReservation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Reservations.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminReservationPDF renders the itinerary in ?lang (Turkish by default).
func (h Handler) AdminReservationPDF(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.renderItinerary(c, id, domain.NormalizeLang(c.Query("lang")), c.Query("inline") == "1")
}
