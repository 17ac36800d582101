package handlers

import (
	"context"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/services"
)

type catalogReader interface {
	ListActiveVehicles(ctx context.Context) ([]models.Vehicle, error)
	HomepageVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicleDetail(ctx context.Context, id int64) (models.Vehicle, error)
	ListActiveRegions(ctx context.Context) ([]models.Region, error)
	ListAllRegions(ctx context.Context) ([]models.Region, error)
	HomepageRegions(ctx context.Context) ([]models.Region, error)
	RegionsForForm(ctx context.Context) ([]models.Region, error)
	GetRegionDetail(ctx context.Context, id int64) (models.Region, error)
	HeroSlides(ctx context.Context) ([]models.HeroSlide, error)
}

type siteContent interface {
	SettingsFor(ctx context.Context, lang string) (map[string]string, error)
	ListSettings(ctx context.Context) ([]models.SiteSetting, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	HomepageGallery(ctx context.Context) ([]models.GalleryImage, error)
	GalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	AddGalleryImage(ctx context.Context, g models.GalleryImage) (models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id int64) error
	SubmitContact(ctx context.Context, in services.ContactInput) (models.ContactMessage, error)
	ListContacts(ctx context.Context) ([]models.ContactMessage, error)
	MarkContactRead(ctx context.Context, id int64) error
	DeleteContact(ctx context.Context, id int64) error
}

type reservationManager interface {
	Create(ctx context.Context, in services.ReservationInput, routeLang string, mode services.CreateMode) (models.Reservation, error)
	Get(ctx context.Context, id int64) (models.Reservation, error)
	List(ctx context.Context, status *domain.ReservationStatus, limit int) ([]models.Reservation, error)
	Summary(ctx context.Context) (map[string]int, error)
	UpdateStatus(ctx context.Context, id int64, next domain.ReservationStatus, adminNote string) (models.Reservation, error)
	Delete(ctx context.Context, id int64) error
	CalculatePrice(ctx context.Context, vehicleID int64, distanceKm float64) (services.PriceQuote, error)
}

type rateManager interface {
	GetRates(ctx context.Context) (map[string]float64, error)
	SaveRates(ctx context.Context, tryRate, usdRate, gbpRate float64) error
}

type rateInvalidator interface {
	InvalidateRates(ctx context.Context)
}

type catalogAdmin interface {
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (models.Vehicle, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, v models.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
	SetVehicleActive(ctx context.Context, id int64, active bool) error
	AddVehicleImage(ctx context.Context, vehicleID int64, url string) (models.VehicleImage, error)
	DeleteVehicleImage(ctx context.Context, vehicleID, imageID int64) error

	ListRegions(ctx context.Context) ([]models.Region, error)
	GetRegion(ctx context.Context, id int64) (models.Region, error)
	CreateRegion(ctx context.Context, rg models.Region) (models.Region, error)
	UpdateRegion(ctx context.Context, rg models.Region) error
	DeleteRegion(ctx context.Context, id int64) error
	SetRegionActive(ctx context.Context, id int64, active bool) error

	ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error)
	CreateHeroSlide(ctx context.Context, h models.HeroSlide) (models.HeroSlide, error)
	UpdateHeroSlide(ctx context.Context, h models.HeroSlide) error
	SetHeroSlideActive(ctx context.Context, id int64, active bool) error
	DeleteHeroSlide(ctx context.Context, id int64) error
}

type authenticator interface {
	Login(ctx context.Context, username, password string) (string, models.AdminUser, error)
}

type documentRenderer interface {
	Render(r models.Reservation, lang string) ([]byte, string, error)
}

// Handler holds the services behind the HTTP API.
type Handler struct {
	Catalog      catalogReader
	Site         siteContent
	Reservations reservationManager
	Rates        rateManager
	RateCache    rateInvalidator
	Admin        catalogAdmin
	Auth         authenticator
	Itinerary    documentRenderer
	Uploads      Uploader
}
