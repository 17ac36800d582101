package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/services"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

// Fakes embed the handler interfaces so each test only implements what it calls.

type fakeReservations struct {
	reservationManager
	created   services.ReservationInput
	routeLang string
	mode      services.CreateMode
	createErr error
	stored    models.Reservation
	quote     services.PriceQuote
	updated   bool
}

func (f *fakeReservations) Create(_ context.Context, in services.ReservationInput, routeLang string, mode services.CreateMode) (models.Reservation, error) {
	f.created, f.routeLang, f.mode = in, routeLang, mode
	if f.createErr != nil {
		return models.Reservation{}, f.createErr
	}
	return models.Reservation{ID: 42}, nil
}

func (f *fakeReservations) Get(_ context.Context, id int64) (models.Reservation, error) {
	if id != f.stored.ID {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return f.stored, nil
}

func (f *fakeReservations) CalculatePrice(context.Context, int64, float64) (services.PriceQuote, error) {
	return f.quote, nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, id int64, next domain.ReservationStatus, note string) (models.Reservation, error) {
	f.updated = true
	return models.Reservation{ID: id, Status: next, AdminNotes: note}, nil
}

type fakeRates struct {
	rateManager
	saved []float64
}

func (f *fakeRates) SaveRates(_ context.Context, try, usd, gbp float64) error {
	f.saved = []float64{try, usd, gbp}
	return nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) InvalidateRates(context.Context) { c.n++ }

type fakeCatalog struct {
	catalogReader
	regions []models.Region
	active  []models.Region
}

func (f fakeCatalog) ListActiveVehicles(context.Context) ([]models.Vehicle, error) {
	return []models.Vehicle{{ID: 1, Name: "Vito", IsActive: true}}, nil
}

func (f fakeCatalog) ListActiveRegions(context.Context) ([]models.Region, error) {
	return f.active, nil
}

func (f fakeCatalog) ListAllRegions(context.Context) ([]models.Region, error) {
	return f.regions, nil
}

func (f fakeCatalog) GetRegionDetail(_ context.Context, id int64) (models.Region, error) {
	for _, r := range f.regions {
		if r.ID == id && r.IsActive {
			return r, nil
		}
	}
	return models.Region{}, domain.NotFoundError{Resource: "region"}
}

type fakeRenderer struct{ lang string }

func (f *fakeRenderer) Render(r models.Reservation, lang string) ([]byte, string, error) {
	f.lang = lang
	return []byte("%PDF-1.3"), services.ItineraryFilename(r.ID, lang), nil
}

func serve(method, path string, body any, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	r := gin.New()
	register(r)
	var rd *bytes.Reader
	if body != nil {
		bs, _ := json.Marshal(body)
		rd = bytes.NewReader(bs)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateReservationUsesRouteLanguage(t *testing.T) {
	fr := &fakeReservations{}
	h := Handler{Reservations: fr}
	w := serve(http.MethodPost, "/api/en/reservations", map[string]any{"customerName": "John", "vehicleId": 1},
		func(r *gin.Engine) { r.POST("/api/:lang/reservations", h.CreateReservation) })

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if got := decode(t, w); got["id"] != float64(42) || got["success"] != true {
		t.Fatalf("body = %v", got)
	}
	if fr.routeLang != "en" || fr.mode != services.PublicBooking || fr.created.CustomerName != "John" {
		t.Fatalf("service saw lang=%q mode=%v in=%+v", fr.routeLang, fr.mode, fr.created)
	}
}

func TestCreateReservationReportsFieldErrors(t *testing.T) {
	var fe domain.FieldErrors
	fe.Add("customerName", "Ad Soyad zorunludur.")
	fe.Add("vehicleId", "Araç seçimi zorunludur.")
	h := Handler{Reservations: &fakeReservations{createErr: fe}}

	w := serve(http.MethodPost, "/api/tr/reservations", map[string]any{},
		func(r *gin.Engine) { r.POST("/api/:lang/reservations", h.CreateReservation) })

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	details, _ := decode(t, w)["details"].(map[string]any)
	if details["customerName"] == nil || details["vehicleId"] == nil {
		t.Fatalf("details = %v", details)
	}
}

func TestCreateReservationEmptyBody(t *testing.T) {
	h := Handler{Reservations: &fakeReservations{}}
	w := serve(http.MethodPost, "/api/tr/reservations", nil,
		func(r *gin.Engine) { r.POST("/api/:lang/reservations", h.CreateReservation) })
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestConfirmationOmitsContactDetails(t *testing.T) {
	email := "john@example.com"
	h := Handler{Reservations: &fakeReservations{stored: models.Reservation{
		ID: 9, CustomerName: "John", CustomerPhone: "+90555", CustomerEmail: email,
		Language: "de", Status: domain.StatusPending,
	}}}
	w := serve(http.MethodGet, "/api/de/reservations/9", nil,
		func(r *gin.Engine) { r.GET("/api/:lang/reservations/:id", h.ReservationConfirmation) })

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "+90555") || strings.Contains(body, email) {
		t.Fatalf("contact data leaked: %s", body)
	}
	if got := decode(t, w); got["status"] != "Pending" || got["vehicleName"] != "-" {
		t.Fatalf("body = %v", got)
	}
}

func TestConfirmationUnknownAndBadID(t *testing.T) {
	h := Handler{Reservations: &fakeReservations{stored: models.Reservation{ID: 1}}}
	reg := func(r *gin.Engine) { r.GET("/api/:lang/reservations/:id", h.ReservationConfirmation) }

	if w := serve(http.MethodGet, "/api/tr/reservations/2", nil, reg); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id: %d", w.Code)
	}
	if w := serve(http.MethodGet, "/api/tr/reservations/abc", nil, reg); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
}

func TestCalculatePrice(t *testing.T) {
	found := &fakeReservations{quote: services.PriceQuote{Found: true, Price: 75, FormattedPrice: "75.00 €", Currency: "EUR", DistanceKm: 40}}
	h := Handler{Reservations: found}
	w := serve(http.MethodPost, "/api/price", map[string]any{"vehicleId": 1, "distanceKm": 40},
		func(r *gin.Engine) { r.POST("/api/price", h.CalculatePrice) })
	if w.Code != http.StatusOK || decode(t, w)["price"] != float64(75) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}

	h = Handler{Reservations: &fakeReservations{quote: services.PriceQuote{Found: false}}}
	w = serve(http.MethodPost, "/api/price", map[string]any{"vehicleId": 99, "distanceKm": 40},
		func(r *gin.Engine) { r.POST("/api/price", h.CalculatePrice) })
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w); got["success"] != false || got["message"] != "not found" {
		t.Fatalf("body = %v", got)
	}
}

func TestAdminUpdateStatus(t *testing.T) {
	fr := &fakeReservations{}
	h := Handler{Reservations: fr}
	reg := func(r *gin.Engine) { r.PUT("/admin/reservations/:id/status", h.AdminUpdateReservationStatus) }

	w := serve(http.MethodPut, "/admin/reservations/5/status", map[string]any{"status": "bogus"}, reg)
	if w.Code != http.StatusBadRequest || fr.updated {
		t.Fatalf("bogus status: %d updated=%v", w.Code, fr.updated)
	}

	w = serve(http.MethodPut, "/admin/reservations/5/status", map[string]any{"status": "confirmed", "adminNote": "ok"}, reg)
	if w.Code != http.StatusOK || !fr.updated {
		t.Fatalf("confirm: %d updated=%v", w.Code, fr.updated)
	}
	if got := decode(t, w); got["status"] != float64(domain.StatusConfirmed) || got["adminNotes"] != "ok" {
		t.Fatalf("body = %v", got)
	}
}

func TestAdminReservationPDFUsesQueryLanguage(t *testing.T) {
	fr := &fakeRenderer{}
	h := Handler{Reservations: &fakeReservations{stored: models.Reservation{ID: 3}}, Itinerary: fr}
	w := serve(http.MethodGet, "/admin/reservations/3/pdf?lang=ru", nil,
		func(r *gin.Engine) { r.GET("/admin/reservations/:id/pdf", h.AdminReservationPDF) })

	if w.Code != http.StatusOK || fr.lang != "ru" {
		t.Fatalf("status=%d lang=%q", w.Code, fr.lang)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, "_ru.pdf") {
		t.Fatalf("disposition = %q", cd)
	}
}

func TestAdminSaveRates(t *testing.T) {
	rates := &fakeRates{}
	inv := &countingInvalidator{}
	h := Handler{Rates: rates, RateCache: inv}
	reg := func(r *gin.Engine) { r.PUT("/admin/rates", h.AdminSaveRates) }

	w := serve(http.MethodPut, "/admin/rates", map[string]any{"try": "38,27", "USD": 1.08, "GBP": "0.86"}, reg)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if len(rates.saved) != 3 || rates.saved[0] != 38.27 || rates.saved[1] != 1.08 || rates.saved[2] != 0.86 {
		t.Fatalf("saved = %v", rates.saved)
	}
	if inv.n != 1 {
		t.Fatalf("invalidations = %d", inv.n)
	}

	rates.saved = nil
	w = serve(http.MethodPut, "/admin/rates", map[string]any{"TRY": 0, "USD": "abc"}, reg)
	if w.Code != http.StatusBadRequest || rates.saved != nil {
		t.Fatalf("invalid rates: %d saved=%v", w.Code, rates.saved)
	}
	details, _ := decode(t, w)["details"].(map[string]any)
	for _, code := range []string{"TRY", "USD", "GBP"} {
		if details[code] == nil {
			t.Fatalf("missing detail for %s: %v", code, details)
		}
	}
	if inv.n != 1 {
		t.Fatalf("invalidated on failure")
	}
}

func TestRegionsAreLocalized(t *testing.T) {
	h := Handler{Catalog: fakeCatalog{regions: []models.Region{
		{ID: 1, Name: "Kemer Merkez", NameEn: "Kemer Centre", Price: 40, IsActive: true},
		{ID: 2, Name: "Side", Price: 55, IsActive: false},
	}}}
	reg := func(r *gin.Engine) {
		r.GET("/api/:lang/regions", h.ListRegions)
		r.GET("/api/:lang/regions/:id", h.GetRegion)
	}

	w := serve(http.MethodGet, "/api/en/regions", nil, reg)
	var list []models.LocalizedRegion
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list[0].Name != "Kemer Centre" || list[1].Name != "Side" || list[0].StartPoint != models.DefaultStartPoint {
		t.Fatalf("list = %+v", list)
	}

	w = serve(http.MethodGet, "/api/tr/regions/1", nil, reg)
	if got := decode(t, w); got["name"] != "Kemer Merkez" {
		t.Fatalf("tr detail = %v", got)
	}
	if w = serve(http.MethodGet, "/api/tr/regions/2", nil, reg); w.Code != http.StatusNotFound {
		t.Fatalf("inactive region status = %d", w.Code)
	}
}

func TestBookingFormListsActiveRegions(t *testing.T) {
	h := Handler{Catalog: fakeCatalog{active: []models.Region{
		{ID: 4, Name: "Alanya Merkez", NameEn: "Alanya Centre", IsActive: true},
		{ID: 1, Name: "Kemer Merkez", IsActive: true},
	}}}
	w := serve(http.MethodGet, "/api/de/booking-form", nil,
		func(r *gin.Engine) { r.GET("/api/:lang/booking-form", h.BookingForm) })
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Vehicles []models.Vehicle         `json:"vehicles"`
		Regions  []models.LocalizedRegion `json:"regions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Vehicles) != 1 || len(out.Regions) != 2 {
		t.Fatalf("form = %+v", out)
	}
	if out.Regions[0].ID != 4 || out.Regions[0].Name != "Alanya Centre" || out.Regions[1].Name != "Kemer Merkez" {
		t.Fatalf("regions = %+v", out.Regions)
	}
}

func multipartRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminUploadImage(t *testing.T) {
	root := t.TempDir()
	h := Handler{Uploads: Uploader{Root: root}}
	r := gin.New()
	r.POST("/admin/uploads/:kind", h.AdminUploadImage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/admin/uploads/hero", "Slide.PNG", []byte("png-bytes")))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	url, _ := decode(t, w)["url"].(string)
	if !strings.HasPrefix(url, "/uploads/hero/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}
	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/"))))
	if err != nil || string(got) != "png-bytes" {
		t.Fatalf("stored file: %q %v", got, err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/admin/uploads/hero", "anim.gif", []byte("gif")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("gif status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/admin/uploads/vehicles", "car.jpg", []byte("jpg")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("vehicles via generic upload = %d", w.Code)
	}
}

func TestUploaderSizeLimit(t *testing.T) {
	fh := &multipart.FileHeader{Filename: "big.jpg", Size: 21 << 20}
	_, err := Uploader{Root: t.TempDir()}.Save(fh, UploadGallery)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v", err)
	}
	if _, err := (Uploader{Root: t.TempDir()}).Save(&multipart.FileHeader{Filename: "x.jpg"}, "docs"); err == nil {
		t.Fatal("unknown kind accepted")
	}
}
