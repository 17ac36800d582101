package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
)

// =======================
// GALLERY
// =======================

func (h Handler) AdminListGallery(c *gin.Context) {
	items, err := h.Site.GalleryImages(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/admin/gallery (multipart "file", optional title/description/category)
func (h Handler) AdminUploadGalleryImage(c *gin.Context) {
	url, ok := h.saveUpload(c, UploadGallery)
	if !ok {
		return
	}
	g, err := h.Site.AddGalleryImage(c.Request.Context(), models.GalleryImage{
		ImageURL:    url,
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		IsActive:    true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h Handler) AdminDeleteGalleryImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Site.DeleteGalleryImage(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =======================
// SETTINGS
// =======================

func (h Handler) AdminListSettings(c *gin.Context) {
	items, err := h.Site.ListSettings(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// PUT /api/admin/settings  {"phone": "...", "address_en": "..."}
func (h Handler) AdminSaveSettings(c *gin.Context) {
	var values map[string]string
	if !BindJSONOrError(c, &values) {
		return
	}
	if err := h.Site.SaveSettings(c.Request.Context(), values); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "saved": len(values)})
}

// =======================
// RATES
// =======================

// GET /api/rates
func (h Handler) CurrencyRates(c *gin.Context) {
	rates, err := h.Rates.GetRates(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

// rateValue accepts a JSON number or a decimal string such as "38,27".
func rateValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		return utils.ParseDecimal(v)
	case nil:
		return 0, fmt.Errorf("missing")
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

// PUT /api/admin/rates  {"TRY": 38.27, "USD": "1,08", "GBP": 0.86}
func (h Handler) AdminSaveRates(c *gin.Context) {
	var body map[string]any
	if !BindJSONOrError(c, &body) {
		return
	}
	upper := make(map[string]any, len(body))
	for k, v := range body {
		upper[strings.ToUpper(strings.TrimSpace(k))] = v
	}

	var fe domain.FieldErrors
	parsed := make(map[string]float64, 3)
	for _, code := range []string{domain.CurrencyTRY, domain.CurrencyUSD, domain.CurrencyGBP} {
		v, err := rateValue(upper[code])
		if err != nil {
			fe.Add(code, "geçerli bir kur giriniz")
			continue
		}
		if v <= 0 {
			fe.Add(code, "kur 0'dan büyük olmalıdır")
			continue
		}
		parsed[code] = v
	}
	if err := fe.OrNil(); err != nil {
		RespondDomainError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.Rates.SaveRates(ctx, parsed[domain.CurrencyTRY], parsed[domain.CurrencyUSD], parsed[domain.CurrencyGBP]); err != nil {
		RespondDomainError(c, err)
		return
	}
	if h.RateCache != nil {
		h.RateCache.InvalidateRates(ctx)
	}
	c.JSON(http.StatusOK, parsed)
}

// =======================
// CONTACTS
// =======================

func (h Handler) AdminListContacts(c *gin.Context) {
	items, err := h.Site.ListContacts(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h Handler) AdminMarkContactRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Site.MarkContactRead(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isRead": true})
}

func (h Handler) AdminDeleteContact(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Site.DeleteContact(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
