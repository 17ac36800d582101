package models

import (
	"strings"
	"time"

	"imperialvip/internal/domain"
)

const DefaultStartPoint = "Antalya Airport"

// Region is a destination zone with a EUR-denominated price.
type Region struct {
	ID                       int64      `json:"id"`
	Name                     string     `json:"name"`
	NameEn                   string     `json:"nameEn"`
	Description              string     `json:"description"`
	DescriptionEn            string     `json:"descriptionEn"`
	ImageURL                 string     `json:"imageUrl"`
	Price                    float64    `json:"price"`
	Currency                 string     `json:"currency"`
	StartPoint               string     `json:"startPoint"`
	StartPointEn             string     `json:"startPointEn"`
	DistanceKm               *float64   `json:"distanceKm,omitempty"`
	EstimatedDurationMinutes *int       `json:"estimatedDurationMinutes,omitempty"`
	SortOrder                int        `json:"sortOrder"`
	IsActive                 bool       `json:"isActive"`
	CreatedAt                *time.Time `json:"createdAt,omitempty"`
	UpdatedAt                *time.Time `json:"updatedAt,omitempty"`
}

// LocalizedRegion is the public projection of a region for one language.
type LocalizedRegion struct {
	ID                       int64    `json:"id"`
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	StartPoint               string   `json:"startPoint"`
	ImageURL                 string   `json:"imageUrl"`
	Price                    float64  `json:"price"`
	Currency                 string   `json:"currency"`
	DistanceKm               *float64 `json:"distanceKm,omitempty"`
	EstimatedDurationMinutes *int     `json:"estimatedDurationMinutes,omitempty"`
}

// Localize picks the Turkish texts for "tr" and the English ones otherwise,
// falling back to Turkish when an English text is empty.
func (r Region) Localize(lang string) LocalizedRegion {
	name, desc, start := r.Name, r.Description, r.StartPoint
	if domain.NormalizeLang(lang) != domain.LangTR {
		name = firstNonBlank(r.NameEn, r.Name)
		desc = firstNonBlank(r.DescriptionEn, r.Description)
		start = firstNonBlank(r.StartPointEn, r.StartPoint)
	}
	return LocalizedRegion{
		ID:                       r.ID,
		Name:                     name,
		Description:              desc,
		StartPoint:               firstNonBlank(start, DefaultStartPoint),
		ImageURL:                 r.ImageURL,
		Price:                    r.Price,
		Currency:                 firstNonBlank(r.Currency, domain.CurrencyEUR),
		DistanceKm:               r.DistanceKm,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
	}
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
