package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"imperialvip/internal/domain"
	"imperialvip/internal/http/middleware"
	"imperialvip/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Upload kinds; each is a directory under <web root>/uploads.
const (
	UploadVehicles = "vehicles"
	UploadGallery  = "gallery"
	UploadHero     = "hero"
	UploadRegions  = "regions"
)

const mb = 1 << 20

var uploadLimits = map[string]int64{
	UploadVehicles: 20 * mb,
	UploadGallery:  20 * mb,
	UploadRegions:  20 * mb,
	UploadHero:     50 * mb,
}

var uploadExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// Uploader stores admin images below Root/uploads and returns their site URL.
type Uploader struct {
	Root string
}

func (u Uploader) Save(fh *multipart.FileHeader, kind string) (string, error) {
	limit, ok := uploadLimits[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !uploadExtensions[ext] {
		return "", domain.ValidationError{Field: "file", Msg: "yalnızca jpg, jpeg, png ve webp dosyaları yüklenebilir"}
	}
	if fh.Size > limit {
		return "", domain.ValidationError{Field: "file", Msg: fmt.Sprintf("dosya boyutu %d MB sınırını aşıyor", limit/mb)}
	}

	dir := filepath.Join(u.Root, "uploads", kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(dst, io.LimitReader(src, limit+1)); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return "/uploads/" + kind + "/" + name, nil
}

// saveUpload stores the "file" form field and writes the error response
// itself when it fails.
func (h Handler) saveUpload(c *gin.Context, kind string) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploadLimits[kind]+mb)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondDomainError(c, domain.ValidationError{Field: "file", Msg: fmt.Sprintf("dosya boyutu %d MB sınırını aşıyor", uploadLimits[kind]/mb)})
			return "", false
		}
		respondError(c, http.StatusBadRequest, "missing_file", "dosya seçilmedi", nil)
		return "", false
	}
	url, err := h.Uploads.Save(fh, kind)
	if err != nil {
		RespondDomainError(c, err)
		return "", false
	}
	utils.LogEvent(middleware.GetRequestID(c), "upload", kind, url)
	return url, true
}
