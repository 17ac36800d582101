package handlers

import (
	"net/http"

	"imperialvip/internal/domain/models"
	"imperialvip/internal/services"

	"github.com/gin-gonic/gin"
)

func localize(regions []models.Region, lang string) []models.LocalizedRegion {
	out := make([]models.LocalizedRegion, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Localize(lang))
	}
	return out
}

// Home serves the landing page bundle.
func (h Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	l := lang(c)

	vehicles, err := h.Catalog.HomepageVehicles(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	hero, err := h.Catalog.HeroSlides(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	regions, err := h.Catalog.HomepageRegions(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	formRegions, err := h.Catalog.RegionsForForm(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	gallery, err := h.Site.HomepageGallery(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	settings, err := h.Site.SettingsFor(ctx, l)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lang":        l,
		"vehicles":    vehicles,
		"heroSlides":  hero,
		"regions":     localize(regions, l),
		"formRegions": localize(formRegions, l),
		"gallery":     gallery,
		"settings":    settings,
	})
}

func (h Handler) ListVehicles(c *gin.Context) {
	items, err := h.Catalog.ListActiveVehicles(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) GetVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	v, err := h.Catalog.GetVehicleDetail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ListRegions serves the regions page: active regions by sort order.
func (h Handler) ListRegions(c *gin.Context) {
	items, err := h.Catalog.ListAllRegions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, localize(items, lang(c)))
}

func (h Handler) GetRegion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	r, err := h.Catalog.GetRegionDetail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r.Localize(lang(c)))
}

// BookingForm returns what the reservation page needs to render its selects.
func (h Handler) BookingForm(c *gin.Context) {
	ctx := c.Request.Context()
	vehicles, err := h.Catalog.ListActiveVehicles(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	regions, err := h.Catalog.ListActiveRegions(ctx)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"regions":  localize(regions, lang(c)),
	})
}

func (h Handler) Gallery(c *gin.Context) {
	items, err := h.Site.GalleryImages(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) Settings(c *gin.Context) {
	values, err := h.Site.SettingsFor(c.Request.Context(), lang(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h Handler) SubmitContact(c *gin.Context) {
	var in services.ContactInput
	if !BindJSONOrError(c, &in) {
		return
	}
	msg, err := h.Site.SubmitContact(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": msg.ID})
}
