package services

import (
	"context"
	"fmt"

	"imperialvip/internal/cache"
	"imperialvip/internal/utils"
)

// Edge cache tags. Output-cached routes register under these.
const (
	TagHomepage = "homepage"
	TagRegions  = "regions"
	TagVehicles = "vehicles"
	TagGallery  = "gallery"
	TagStatic   = "static"
)

// Invalidator walks the cache tiers after an admin mutation. Edge failures
// are logged as warnings and never returned.
type Invalidator struct {
	Cache cache.Store
	Edge  cache.TagEvictor
}

func (s Invalidator) evict(ctx context.Context, action string, tags ...string) {
	if s.Edge == nil || len(tags) == 0 {
		return
	}
	if err := s.Edge.EvictTags(ctx, tags...); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "cache", action, fmt.Sprintf("edge eviction failed tags=%v", tags), err)
	}
}

// InvalidateRegions clears the region lists and, when id is set, that
// region's entries.
func (s Invalidator) InvalidateRegions(ctx context.Context, id *int64) {
	keys := []string{
		keyHomepageRegions,
		keyHomepageRegionForm,
		keyRegionsAll,
		keyRegionsAlphabetic,
		keyRegionsActive,
	}
	if id != nil {
		keys = append(keys, keyRegionDetail(*id), keyRegion(*id))
	}
	s.Cache.Delete(keys...)
	s.evict(ctx, "invalidate_regions", TagRegions, TagHomepage)
}

// InvalidateVehicles clears the vehicle lists only. Per-id entries run out on
// their own TTL and the edge tier is left alone.
func (s Invalidator) InvalidateVehicles(ctx context.Context) {
	s.Cache.Delete(keyHomepageVehicles, keyVehiclesActive)
}

func (s Invalidator) InvalidateHero(ctx context.Context) {
	s.Cache.Delete(keyHomepageHero)
	s.evict(ctx, "invalidate_hero", TagHomepage)
}

// InvalidateRates drops cached rates and every edge page showing prices.
func (s Invalidator) InvalidateRates(ctx context.Context) {
	s.Cache.Delete(ratesCacheKey)
	s.evict(ctx, "invalidate_rates", TagHomepage, TagRegions, TagVehicles, TagGallery, TagStatic)
}

func (s Invalidator) InvalidateGallery(ctx context.Context) {
	s.Cache.Delete(keyHomepageGallery, keyGalleryAll)
	s.evict(ctx, "invalidate_gallery", TagGallery, TagHomepage)
}

func (s Invalidator) InvalidateSettings(ctx context.Context) {
	keys := make([]string, 0, len(settingsLanguages))
	for _, lang := range settingsLanguages {
		keys = append(keys, keySiteSettings(lang))
	}
	s.Cache.Delete(keys...)
	s.evict(ctx, "invalidate_settings", TagHomepage, TagStatic)
}
