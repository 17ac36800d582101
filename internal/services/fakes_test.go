package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/notify"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.Local)

func clockAt(t time.Time) func() time.Time { return func() time.Time { return t } }

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

type fakeRates struct {
	rows    map[string]float64
	listN   int
	listErr error
	saveErr error
}

func (f *fakeRates) List(context.Context) ([]models.CurrencyRate, error) {
	f.listN++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.CurrencyRate{}
	for code, rate := range f.rows {
		out = append(out, models.CurrencyRate{CurrencyCode: code, Rate: rate})
	}
	return out, nil
}

func (f *fakeRates) UpsertAll(_ context.Context, rates []models.CurrencyRate, _ time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.rows == nil {
		f.rows = map[string]float64{}
	}
	for _, r := range rates {
		f.rows[r.CurrencyCode] = r.Rate
	}
	return nil
}

// fakeVehicles serves every vehicle interface the services depend on.
type fakeVehicles struct {
	mu      sync.Mutex
	byID    map[int64]models.Vehicle
	listN   int
	nextID  int64
	listErr error
}

func newFakeVehicles(vs ...models.Vehicle) *fakeVehicles {
	f := &fakeVehicles{byID: map[int64]models.Vehicle{}, nextID: 100}
	for _, v := range vs {
		if v.Images == nil {
			v.Images = []models.VehicleImage{}
		}
		f.byID[v.ID] = v
	}
	return f
}

func (f *fakeVehicles) sorted(activeOnly bool) []models.Vehicle {
	out := []models.Vehicle{}
	for _, v := range f.byID {
		if activeOnly && !v.IsActive {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeVehicles) ListActive(context.Context) ([]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listN++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(true), nil
}

func (f *fakeVehicles) ListAll(context.Context) ([]models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(false), nil
}

func (f *fakeVehicles) GetByID(_ context.Context, id int64) (models.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return models.Vehicle{}, sql.ErrNoRows
	}
	return v, nil
}

func (f *fakeVehicles) Create(_ context.Context, v models.Vehicle) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	v.ID = f.nextID
	f.byID[v.ID] = v
	return v.ID, nil
}

func (f *fakeVehicles) Update(_ context.Context, v models.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[v.ID]; !ok {
		return sql.ErrNoRows
	}
	f.byID[v.ID] = v
	return nil
}

func (f *fakeVehicles) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeVehicles) SetActive(_ context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	v.IsActive = active
	f.byID[id] = v
	return nil
}

func (f *fakeVehicles) SetImageURL(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.byID[id]
	v.ImageURL = url
	f.byID[id] = v
	return nil
}

func (f *fakeVehicles) AddImage(_ context.Context, vehicleID int64, url string, sortOrder int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byID[vehicleID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	f.nextID++
	v.Images = append(v.Images, models.VehicleImage{ID: f.nextID, VehicleID: vehicleID, ImageURL: url, SortOrder: sortOrder})
	f.byID[vehicleID] = v
	return f.nextID, nil
}

func (f *fakeVehicles) DeleteImage(_ context.Context, vehicleID, imageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.byID[vehicleID]
	for i, img := range v.Images {
		if img.ID == imageID {
			v.Images = append(v.Images[:i], v.Images[i+1:]...)
			f.byID[vehicleID] = v
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeRegions struct {
	byID   map[int64]models.Region
	nextID int64
}

func newFakeRegions(rs ...models.Region) *fakeRegions {
	f := &fakeRegions{byID: map[int64]models.Region{}, nextID: 50}
	for _, r := range rs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRegions) list(activeOnly bool, less func(a, b models.Region) bool) []models.Region {
	out := []models.Region{}
	for _, r := range f.byID {
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func bySortOrder(a, b models.Region) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	return a.ID < b.ID
}

func byName(a, b models.Region) bool { return a.Name < b.Name }

func (f *fakeRegions) ListActive(context.Context) ([]models.Region, error) {
	return f.list(true, bySortOrder), nil
}

func (f *fakeRegions) ListAll(context.Context) ([]models.Region, error) {
	return f.list(false, bySortOrder), nil
}

func (f *fakeRegions) ListActiveByName(context.Context) ([]models.Region, error) {
	return f.list(true, byName), nil
}

func (f *fakeRegions) GetByID(_ context.Context, id int64) (models.Region, error) {
	r, ok := f.byID[id]
	if !ok {
		return models.Region{}, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeRegions) Create(_ context.Context, rg models.Region) (int64, error) {
	f.nextID++
	rg.ID = f.nextID
	f.byID[rg.ID] = rg
	return rg.ID, nil
}

func (f *fakeRegions) Update(_ context.Context, rg models.Region) error {
	if _, ok := f.byID[rg.ID]; !ok {
		return sql.ErrNoRows
	}
	f.byID[rg.ID] = rg
	return nil
}

func (f *fakeRegions) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRegions) SetActive(_ context.Context, id int64, active bool) error {
	r, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.IsActive = active
	f.byID[id] = r
	return nil
}

type fakeReservations struct {
	mu       sync.Mutex
	rows     map[int64]models.Reservation
	nextID   int64
	inserted []models.Reservation
	updates  int
}

func newFakeReservations(rs ...models.Reservation) *fakeReservations {
	f := &fakeReservations{rows: map[int64]models.Reservation{}, nextID: 10}
	for _, r := range rs {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeReservations) Insert(_ context.Context, m models.Reservation) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	f.rows[m.ID] = m
	f.inserted = append(f.inserted, m)
	return m.ID, nil
}

func (f *fakeReservations) GetByID(_ context.Context, id int64) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return models.Reservation{}, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeReservations) List(_ context.Context, status *domain.ReservationStatus, _ int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Reservation{}
	for _, m := range f.rows {
		if status == nil || m.Status == *status {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReservations) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus, note *string, at time.Time, confirmedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	f.updates++
	m.Status = status
	m.UpdatedAt = &at
	if note != nil {
		m.AdminNotes = *note
	}
	if confirmedAt != nil {
		m.ConfirmedAt = confirmedAt
	}
	f.rows[id] = m
	return nil
}

func (f *fakeReservations) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeReservations) CountByStatus(context.Context) (map[domain.ReservationStatus]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[domain.ReservationStatus]int{}
	for _, m := range f.rows {
		out[m.Status]++
	}
	return out, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	created   []models.Reservation
	confirmed []models.Reservation
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, r models.Reservation) []notify.Attempt {
	n.mu.Lock()
	n.created = append(n.created, r)
	n.mu.Unlock()
	return nil
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, r models.Reservation) []notify.Attempt {
	n.mu.Lock()
	n.confirmed = append(n.confirmed, r)
	n.mu.Unlock()
	return nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []notify.Email
	failFor map[string]error
}

func (m *fakeMailer) Send(_ context.Context, e notify.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	if err, ok := m.failFor[e.To]; ok {
		return err
	}
	return nil
}

func (m *fakeMailer) to(addr string) []notify.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []notify.Email{}
	for _, e := range m.sent {
		if e.To == addr {
			out = append(out, e)
		}
	}
	return out
}

type fakeDocs struct {
	mu       sync.Mutex
	enabled  bool
	err      error
	files    []string
	captions []string
}

func (d *fakeDocs) Enabled() bool { return d.enabled }

func (d *fakeDocs) SendDocument(_ context.Context, filename string, _ []byte, caption string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files = append(d.files, filename)
	d.captions = append(d.captions, caption)
	return d.err
}

type fakeRecorder struct {
	mu       sync.Mutex
	attempts []notify.Attempt
}

func (r *fakeRecorder) Record(_ context.Context, a notify.Attempt) error {
	r.mu.Lock()
	r.attempts = append(r.attempts, a)
	r.mu.Unlock()
	return nil
}

type stubRenderer struct {
	failLang string
}

func (s stubRenderer) Render(r models.Reservation, lang string) ([]byte, string, error) {
	if lang == s.failLang {
		return nil, "", errors.New("render failed")
	}
	return []byte("%PDF-1.3 " + lang), ItineraryFilename(r.ID, lang), nil
}

type fakeEdge struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (e *fakeEdge) EvictTags(_ context.Context, tags ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, append([]string(nil), tags...))
	return e.err
}
