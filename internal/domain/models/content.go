package models

import "time"

// CurrencyRate means "1 EUR = Rate units of CurrencyCode".
type CurrencyRate struct {
	ID           int64     `json:"id"`
	CurrencyCode string    `json:"currencyCode"`
	Rate         float64   `json:"rate"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type HeroSlide struct {
	ID        int64      `json:"id"`
	ImageURL  string     `json:"imageUrl"`
	SortOrder int        `json:"sortOrder"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type GalleryImage struct {
	ID          int64      `json:"id"`
	ImageURL    string     `json:"imageUrl"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type SiteSetting struct {
	ID          int64      `json:"id"`
	Key         string     `json:"key"`
	Value       string     `json:"value"`
	Description string     `json:"description"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type AdminUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
