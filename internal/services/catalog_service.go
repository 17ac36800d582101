package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"imperialvip/internal/cache"
	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/repositories"
	"imperialvip/internal/utils"
)

// In-process cache keys shared by the catalog and the invalidation coordinator.
const (
	keyVehiclesActive     = "vehicles_all_active"
	keyHomepageVehicles   = "homepage_vehicles"
	keyRegionsActive      = "regions_all_active"
	keyRegionsAll         = "regions_all"
	keyRegionsAlphabetic  = "regions_all_alphabetic"
	keyHomepageRegions    = "homepage_regions"
	keyHomepageRegionForm = "homepage_all_regions_form"
	keyHomepageHero       = "homepage_hero"
)

func keyVehicle(id int64) string       { return fmt.Sprintf("vehicle_%d", id) }
func keyVehicleDetail(id int64) string { return fmt.Sprintf("vehicle_detail_%d", id) }
func keyRegion(id int64) string        { return fmt.Sprintf("region_%d", id) }
func keyRegionDetail(id int64) string  { return fmt.Sprintf("region_detail_%d", id) }

const (
	vehicleTTL = 15 * time.Minute
	regionTTL  = 30 * time.Minute
	heroTTL    = 30 * time.Minute

	homepageRegionLimit  = 6
	homepageVehicleLimit = 3
)

// translated maps driver errors of a loader to domain errors.
func translated[T any](resource string, load func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		v, err := load(ctx)
		return v, repositories.TranslateError(resource, err)
	}
}

type vehicleReader interface {
	ListActive(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id int64) (models.Vehicle, error)
	SetImageURL(ctx context.Context, id int64, url string) error
}

type regionReader interface {
	ListActive(ctx context.Context) ([]models.Region, error)
	ListActiveByName(ctx context.Context) ([]models.Region, error)
	GetByID(ctx context.Context, id int64) (models.Region, error)
}

type heroReader interface {
	ListActive(ctx context.Context) ([]models.HeroSlide, error)
}

// CatalogService is the cached read side for vehicles, regions and hero slides.
type CatalogService struct {
	Vehicles vehicleReader
	Regions  regionReader
	Hero     heroReader
	Cache    cache.Store
	// WebRoot holds images/aracdetay, the pool for vehicles without images.
	WebRoot string
}

// ListActiveVehicles returns active vehicles by sort order. Vehicles with no
// image at all are given one from the fallback pool, persisted once.
func (s CatalogService) ListActiveVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyVehiclesActive, vehicleTTL, translated("vehicle", s.loadActiveVehicles))
}

func (s CatalogService) loadActiveVehicles(ctx context.Context) ([]models.Vehicle, error) {
	list, err := s.Vehicles.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	missing := []models.Vehicle{}
	for _, v := range list {
		if v.NeedsImage() {
			missing = append(missing, v)
		}
	}
	if len(missing) == 0 {
		return list, nil
	}

	pool := s.fallbackImages()
	if len(pool) == 0 {
		return list, nil
	}
	for i, v := range missing {
		url := pool[i%len(pool)]
		if err := s.Vehicles.SetImageURL(ctx, v.ID, url); err != nil {
			return nil, fmt.Errorf("assign image to vehicle %d: %w", v.ID, err)
		}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "catalog", "assign_images", fmt.Sprintf("vehicles=%d pool=%d", len(missing), len(pool)))
	return s.Vehicles.ListActive(ctx)
}

// fallbackImages lists *.jpg and *.jpeg under images/aracdetay, sorted, as site URLs.
func (s CatalogService) fallbackImages() []string {
	dir := filepath.Join(s.WebRoot, "images", "aracdetay")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	urls := make([]string, len(names))
	for i, n := range names {
		urls[i] = "/images/aracdetay/" + n
	}
	return urls
}

// HomepageVehicles is the teaser list on the home page: the first three
// active vehicles.
func (s CatalogService) HomepageVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyHomepageVehicles, vehicleTTL, func(ctx context.Context) ([]models.Vehicle, error) {
		list, err := s.ListActiveVehicles(ctx)
		if err != nil {
			return nil, err
		}
		if len(list) > homepageVehicleLimit {
			list = list[:homepageVehicleLimit]
		}
		return list, nil
	})
}

// GetVehicle is the bare lookup used for pricing. Missing vehicles are not cached.
func (s CatalogService) GetVehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyVehicle(id), vehicleTTL, func(ctx context.Context) (models.Vehicle, error) {
		v, err := s.Vehicles.GetByID(ctx, id)
		return v, repositories.TranslateError("vehicle", err)
	})
}

// GetVehicleDetail loads a vehicle with its images for the detail page.
// Inactive vehicles are reported as not found.
func (s CatalogService) GetVehicleDetail(ctx context.Context, id int64) (models.Vehicle, error) {
	v, err := cache.GetOrLoad(ctx, s.Cache, keyVehicleDetail(id), vehicleTTL, func(ctx context.Context) (models.Vehicle, error) {
		v, err := s.Vehicles.GetByID(ctx, id)
		return v, repositories.TranslateError("vehicle", err)
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	if !v.IsActive {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
	}
	return v, nil
}

// ListActiveRegions feeds the booking form, alphabetically.
func (s CatalogService) ListActiveRegions(ctx context.Context) ([]models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyRegionsActive, regionTTL, translated("region", s.Regions.ListActiveByName))
}

// ListAllRegions feeds the regions page, by sort order.
func (s CatalogService) ListAllRegions(ctx context.Context) ([]models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyRegionsAll, regionTTL, translated("region", s.Regions.ListActive))
}

func (s CatalogService) ListRegionsAlphabetic(ctx context.Context) ([]models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyRegionsAlphabetic, regionTTL, translated("region", s.Regions.ListActiveByName))
}

// HomepageRegions returns the first six active regions by name.
func (s CatalogService) HomepageRegions(ctx context.Context) ([]models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyHomepageRegions, regionTTL, func(ctx context.Context) ([]models.Region, error) {
		list, err := s.ListRegionsAlphabetic(ctx)
		if err != nil {
			return nil, err
		}
		if len(list) > homepageRegionLimit {
			list = list[:homepageRegionLimit]
		}
		return append([]models.Region(nil), list...), nil
	})
}

// RegionsForForm is the full region list of the home page booking widget.
func (s CatalogService) RegionsForForm(ctx context.Context) ([]models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyHomepageRegionForm, regionTTL, translated("region", s.Regions.ListActiveByName))
}

func (s CatalogService) GetRegion(ctx context.Context, id int64) (models.Region, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyRegion(id), regionTTL, func(ctx context.Context) (models.Region, error) {
		r, err := s.Regions.GetByID(ctx, id)
		return r, repositories.TranslateError("region", err)
	})
}

// GetRegionDetail is the public detail page. Inactive regions are reported
// as not found.
func (s CatalogService) GetRegionDetail(ctx context.Context, id int64) (models.Region, error) {
	r, err := cache.GetOrLoad(ctx, s.Cache, keyRegionDetail(id), regionTTL, func(ctx context.Context) (models.Region, error) {
		r, err := s.Regions.GetByID(ctx, id)
		return r, repositories.TranslateError("region", err)
	})
	if err != nil {
		return models.Region{}, err
	}
	if !r.IsActive {
		return models.Region{}, domain.NotFoundError{Resource: "region"}
	}
	return r, nil
}

// HeroSlides returns active slides ordered by id.
func (s CatalogService) HeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	return cache.GetOrLoad(ctx, s.Cache, keyHomepageHero, heroTTL, translated("hero slide", s.Hero.ListActive))
}
