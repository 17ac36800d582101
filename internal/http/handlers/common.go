package handlers

import (
	"net/http"
	"strconv"

	"imperialvip/internal/domain"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "istek gövdesi boş", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "geçersiz istek gövdesi", err.Error())
		return false
	}
	return true
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "geçersiz "+name, nil)
		return 0, false
	}
	return id, true
}

// lang reads the :lang route segment, falling back to Turkish.
func lang(c *gin.Context) string {
	return domain.NormalizeLang(c.Param("lang"))
}

func sendPDF(c *gin.Context, data []byte, filename string, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}
