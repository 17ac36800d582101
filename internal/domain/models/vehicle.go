package models

import "time"

// Vehicle is a bookable car. MinimumPrice is the flat transfer fee and the only
// authoritative price; the per-km columns are kept for compatibility and are
// never used for pricing.
type Vehicle struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	Brand             string         `json:"brand"`
	Model             string         `json:"model"`
	PassengerCapacity int            `json:"passengerCapacity"`
	LuggageCapacity   int            `json:"luggageCapacity"`
	Description       string         `json:"description"`
	Features          string         `json:"features"`
	ImageURL          string         `json:"imageUrl"`
	PricePerKm        float64        `json:"pricePerKm"`
	PricePerKmUSD     *float64       `json:"pricePerKmUsd,omitempty"`
	PricePerKmTRY     *float64       `json:"pricePerKmTry,omitempty"`
	MinimumPrice      float64        `json:"minimumPrice"`
	MinimumPriceUSD   *float64       `json:"minimumPriceUsd,omitempty"`
	MinimumPriceTRY   *float64       `json:"minimumPriceTry,omitempty"`
	Currency          string         `json:"currency"`
	IsActive          bool           `json:"isActive"`
	SortOrder         int            `json:"sortOrder"`
	CreatedAt         *time.Time     `json:"createdAt,omitempty"`
	Images            []VehicleImage `json:"images"`
}

// NeedsImage reports whether the vehicle has neither a primary image nor gallery rows.
func (v Vehicle) NeedsImage() bool {
	return v.ImageURL == "" && len(v.Images) == 0
}

type VehicleImage struct {
	ID        int64  `json:"id"`
	VehicleID int64  `json:"vehicleId"`
	ImageURL  string `json:"imageUrl"`
	SortOrder int    `json:"sortOrder"`
}
