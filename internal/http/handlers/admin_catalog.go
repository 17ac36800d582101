package handlers

import (
	"net/http"

	"imperialvip/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type activeRequest struct {
	IsActive *bool `json:"isActive"`
}

// bindActive reads {"isActive": bool}; the field is required.
func bindActive(c *gin.Context) (bool, bool) {
	var req activeRequest
	if !BindJSONOrError(c, &req) {
		return false, false
	}
	if req.IsActive == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "isActive zorunludur", map[string]string{"isActive": "zorunlu"})
		return false, false
	}
	return *req.IsActive, true
}

// =======================
// VEHICLES
// =======================

// GET /api/admin/vehicles
func (h Handler) AdminListVehicles(c *gin.Context) {
	items, err := h.Admin.ListVehicles(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) AdminGetVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	v, err := h.Admin.GetVehicle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/admin/vehicles
func (h Handler) AdminCreateVehicle(c *gin.Context) {
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	created, err := h.Admin.CreateVehicle(c.Request.Context(), v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/admin/vehicles/:id
func (h Handler) AdminUpdateVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	v.ID = id
	if err := h.Admin.UpdateVehicle(c.Request.Context(), v); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handler) AdminDeleteVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Admin.DeleteVehicle(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PATCH /api/admin/vehicles/:id/active
func (h Handler) AdminToggleVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}
	if err := h.Admin.SetVehicleActive(c.Request.Context(), id, active); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isActive": active})
}

// POST /api/admin/vehicles/:id/images (multipart "file")
func (h Handler) AdminUploadVehicleImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	url, ok := h.saveUpload(c, UploadVehicles)
	if !ok {
		return
	}
	img, err := h.Admin.AddVehicleImage(c.Request.Context(), id, url)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DELETE /api/admin/vehicles/:id/images/:imageId
func (h Handler) AdminDeleteVehicleImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}
	if err := h.Admin.DeleteVehicleImage(c.Request.Context(), id, imageID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =======================
// REGIONS
// =======================

func (h Handler) AdminListRegions(c *gin.Context) {
	items, err := h.Admin.ListRegions(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) AdminGetRegion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	r, err := h.Admin.GetRegion(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h Handler) AdminCreateRegion(c *gin.Context) {
	var r models.Region
	if !BindJSONOrError(c, &r) {
		return
	}
	created, err := h.Admin.CreateRegion(c.Request.Context(), r)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handler) AdminUpdateRegion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var r models.Region
	if !BindJSONOrError(c, &r) {
		return
	}
	r.ID = id
	if err := h.Admin.UpdateRegion(c.Request.Context(), r); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DELETE /api/admin/regions/:id
// Reservations keep their row; region_id is set to NULL by the FK.
func (h Handler) AdminDeleteRegion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Admin.DeleteRegion(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handler) AdminToggleRegion(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}
	if err := h.Admin.SetRegionActive(c.Request.Context(), id, active); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isActive": active})
}

// =======================
// HERO SLIDES
// =======================

func (h Handler) AdminListHeroSlides(c *gin.Context) {
	items, err := h.Admin.ListHeroSlides(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) AdminCreateHeroSlide(c *gin.Context) {
	var s models.HeroSlide
	if !BindJSONOrError(c, &s) {
		return
	}
	created, err := h.Admin.CreateHeroSlide(c.Request.Context(), s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h Handler) AdminUpdateHeroSlide(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var s models.HeroSlide
	if !BindJSONOrError(c, &s) {
		return
	}
	s.ID = id
	if err := h.Admin.UpdateHeroSlide(c.Request.Context(), s); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h Handler) AdminToggleHeroSlide(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}
	if err := h.Admin.SetHeroSlideActive(c.Request.Context(), id, active); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isActive": active})
}

func (h Handler) AdminDeleteHeroSlide(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Admin.DeleteHeroSlide(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/admin/uploads/:kind (multipart "file")
// Stores a hero or region image and returns its URL for a later create/update.
func (h Handler) AdminUploadImage(c *gin.Context) {
	kind := c.Param("kind")
	if kind != UploadHero && kind != UploadRegions {
		respondError(c, http.StatusBadRequest, "invalid_kind", "geçersiz yükleme türü", nil)
		return
	}
	url, ok := h.saveUpload(c, kind)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
