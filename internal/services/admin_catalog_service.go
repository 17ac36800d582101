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

type vehicleWriter interface {
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
	Create(ctx context.Context, v models.Vehicle) (int64, error)
	Update(ctx context.Context, v models.Vehicle) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetImageURL(ctx context.Context, id int64, url string) error
	AddImage(ctx context.Context, vehicleID int64, url string, sortOrder int) (int64, error)
	DeleteImage(ctx context.Context, vehicleID, imageID int64) error
}

type regionWriter interface {
	ListAll(ctx context.Context) ([]models.Region, error)
	GetByID(ctx context.Context, id int64) (models.Region, error)
	Create(ctx context.Context, rg models.Region) (int64, error)
	Update(ctx context.Context, rg models.Region) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type heroWriter interface {
	ListAll(ctx context.Context) ([]models.HeroSlide, error)
	Create(ctx context.Context, h models.HeroSlide) (int64, error)
	Update(ctx context.Context, h models.HeroSlide) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// AdminCatalogService is the write side of the catalog. Every successful
// mutation runs the matching invalidation.
type AdminCatalogService struct {
	Vehicles    vehicleWriter
	Regions     regionWriter
	Hero        heroWriter
	Invalidator Invalidator
	Now         func() time.Time
}

func (s AdminCatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func validCurrency(code string) bool {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "", domain.CurrencyEUR, domain.CurrencyTRY, domain.CurrencyUSD, domain.CurrencyGBP:
		return true
	}
	return false
}

func validateVehicle(v models.Vehicle) error {
	var fe domain.FieldErrors
	if blank(v.Name) {
		fe.Add("name", "Araç adı zorunludur")
	}
	if v.PassengerCapacity < 1 {
		fe.Add("passengerCapacity", "Yolcu kapasitesi en az 1 olmalıdır")
	}
	if v.LuggageCapacity < 0 {
		fe.Add("luggageCapacity", "Bagaj kapasitesi negatif olamaz")
	}
	if v.MinimumPrice < 0 {
		fe.Add("minimumPrice", "Fiyat negatif olamaz")
	}
	if !validCurrency(v.Currency) {
		fe.Add("currency", "Desteklenmeyen para birimi")
	}
	return fe.OrNil()
}

func (s AdminCatalogService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	list, err := s.Vehicles.ListAll(ctx)
	return list, repositories.TranslateError("vehicle", err)
}

func (s AdminCatalogService) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	v, err := s.Vehicles.GetByID(ctx, id)
	return v, repositories.TranslateError("vehicle", err)
}

func (s AdminCatalogService) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return v, err
	}
	v.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
	now := s.now().UTC()
	v.CreatedAt = &now
	id, err := s.Vehicles.Create(ctx, v)
	if err != nil {
		return v, repositories.TranslateError("vehicle", err)
	}
	v.ID = id
	s.Invalidator.InvalidateVehicles(ctx)
	utils.LogEvent(utils.RequestIDFrom(ctx), "vehicles", "create", fmt.Sprintf("vehicle_id=%d", id))
	return v, nil
}

func (s AdminCatalogService) UpdateVehicle(ctx context.Context, v models.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	v.Currency = strings.ToUpper(strings.TrimSpace(v.Currency))
	if err := s.Vehicles.Update(ctx, v); err != nil {
		return repositories.TranslateError("vehicle", err)
	}
	s.Invalidator.InvalidateVehicles(ctx)
	utils.LogEvent(utils.RequestIDFrom(ctx), "vehicles", "update", fmt.Sprintf("vehicle_id=%d", v.ID))
	return nil
}

func (s AdminCatalogService) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.Vehicles.Delete(ctx, id); err != nil {
		return repositories.TranslateError("vehicle", err)
	}
	s.Invalidator.InvalidateVehicles(ctx)
	utils.LogEvent(utils.RequestIDFrom(ctx), "vehicles", "delete", fmt.Sprintf("vehicle_id=%d", id))
	return nil
}

func (s AdminCatalogService) SetVehicleActive(ctx context.Context, id int64, active bool) error {
	if err := s.Vehicles.SetActive(ctx, id, active); err != nil {
		return repositories.TranslateError("vehicle", err)
	}
	s.Invalidator.InvalidateVehicles(ctx)
	return nil
}

// AddVehicleImage stores an uploaded image. The first image also becomes the
// vehicle's primary image when it has none.
func (s AdminCatalogService) AddVehicleImage(ctx context.Context, vehicleID int64, url string) (models.VehicleImage, error) {
	v, err := s.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return models.VehicleImage{}, repositories.TranslateError("vehicle", err)
	}
	id, err := s.Vehicles.AddImage(ctx, vehicleID, url, len(v.Images))
	if err != nil {
		return models.VehicleImage{}, repositories.TranslateError("vehicle image", err)
	}
	if v.ImageURL == "" {
		if err := s.Vehicles.SetImageURL(ctx, vehicleID, url); err != nil {
			return models.VehicleImage{}, repositories.TranslateError("vehicle", err)
		}
	}
	s.Invalidator.InvalidateVehicles(ctx)
	return models.VehicleImage{ID: id, VehicleID: vehicleID, ImageURL: url, SortOrder: len(v.Images)}, nil
}

func (s AdminCatalogService) DeleteVehicleImage(ctx context.Context, vehicleID, imageID int64) error {
	if err := s.Vehicles.DeleteImage(ctx, vehicleID, imageID); err != nil {
		return repositories.TranslateError("vehicle image", err)
	}
	s.Invalidator.InvalidateVehicles(ctx)
	return nil
}

func validateRegion(rg models.Region) error {
	var fe domain.FieldErrors
	if blank(rg.Name) {
		fe.Add("name", "Bölge adı zorunludur")
	}
	if rg.Price < 0 {
		fe.Add("price", "Fiyat negatif olamaz")
	}
	if !validCurrency(rg.Currency) {
		fe.Add("currency", "Desteklenmeyen para birimi")
	}
	if rg.DistanceKm != nil && *rg.DistanceKm < 0 {
		fe.Add("distanceKm", "Mesafe negatif olamaz")
	}
	return fe.OrNil()
}

func (s AdminCatalogService) ListRegions(ctx context.Context) ([]models.Region, error) {
	list, err := s.Regions.ListAll(ctx)
	return list, repositories.TranslateError("region", err)
}

func (s AdminCatalogService) GetRegion(ctx context.Context, id int64) (models.Region, error) {
	rg, err := s.Regions.GetByID(ctx, id)
	return rg, repositories.TranslateError("region", err)
}

func (s AdminCatalogService) CreateRegion(ctx context.Context, rg models.Region) (models.Region, error) {
	if err := validateRegion(rg); err != nil {
		return rg, err
	}
	rg.Currency = strings.ToUpper(strings.TrimSpace(rg.Currency))
	now := s.now().UTC()
	rg.CreatedAt, rg.UpdatedAt = &now, &now
	id, err := s.Regions.Create(ctx, rg)
	if err != nil {
		return rg, repositories.TranslateError("region", err)
	}
	rg.ID = id
	s.Invalidator.InvalidateRegions(ctx, &id)
	utils.LogEvent(utils.RequestIDFrom(ctx), "regions", "create", fmt.Sprintf("region_id=%d", id))
	return rg, nil
}

func (s AdminCatalogService) UpdateRegion(ctx context.Context, rg models.Region) error {
	if err := validateRegion(rg); err != nil {
		return err
	}
	rg.Currency = strings.ToUpper(strings.TrimSpace(rg.Currency))
	now := s.now().UTC()
	rg.UpdatedAt = &now
	if err := s.Regions.Update(ctx, rg); err != nil {
		return repositories.TranslateError("region", err)
	}
	s.Invalidator.InvalidateRegions(ctx, &rg.ID)
	utils.LogEvent(utils.RequestIDFrom(ctx), "regions", "update", fmt.Sprintf("region_id=%d", rg.ID))
	return nil
}

// DeleteRegion removes a region; reservations keep their row with no region.
func (s AdminCatalogService) DeleteRegion(ctx context.Context, id int64) error {
	if err := s.Regions.Delete(ctx, id); err != nil {
		return repositories.TranslateError("region", err)
	}
	s.Invalidator.InvalidateRegions(ctx, &id)
	utils.LogEvent(utils.RequestIDFrom(ctx), "regions", "delete", fmt.Sprintf("region_id=%d", id))
	return nil
}

func (s AdminCatalogService) SetRegionActive(ctx context.Context, id int64, active bool) error {
	if err := s.Regions.SetActive(ctx, id, active); err != nil {
		return repositories.TranslateError("region", err)
	}
	s.Invalidator.InvalidateRegions(ctx, &id)
	return nil
}

func (s AdminCatalogService) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	list, err := s.Hero.ListAll(ctx)
	return list, repositories.TranslateError("hero slide", err)
}

func (s AdminCatalogService) CreateHeroSlide(ctx context.Context, h models.HeroSlide) (models.HeroSlide, error) {
	if blank(h.ImageURL) {
		return h, domain.ValidationError{Field: "imageUrl", Msg: "görsel zorunludur"}
	}
	now := s.now().UTC()
	h.CreatedAt = &now
	id, err := s.Hero.Create(ctx, h)
	if err != nil {
		return h, repositories.TranslateError("hero slide", err)
	}
	h.ID = id
	s.Invalidator.InvalidateHero(ctx)
	return h, nil
}

func (s AdminCatalogService) UpdateHeroSlide(ctx context.Context, h models.HeroSlide) error {
	if blank(h.ImageURL) {
		return domain.ValidationError{Field: "imageUrl", Msg: "görsel zorunludur"}
	}
	if err := s.Hero.Update(ctx, h); err != nil {
		return repositories.TranslateError("hero slide", err)
	}
	s.Invalidator.InvalidateHero(ctx)
	return nil
}

func (s AdminCatalogService) SetHeroSlideActive(ctx context.Context, id int64, active bool) error {
	if err := s.Hero.SetActive(ctx, id, active); err != nil {
		return repositories.TranslateError("hero slide", err)
	}
	s.Invalidator.InvalidateHero(ctx)
	return nil
}

func (s AdminCatalogService) DeleteHeroSlide(ctx context.Context, id int64) error {
	if err := s.Hero.Delete(ctx, id); err != nil {
		return repositories.TranslateError("hero slide", err)
	}
	s.Invalidator.InvalidateHero(ctx)
	return nil
}
