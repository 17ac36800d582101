package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"imperialvip/internal/cache"
	"imperialvip/internal/domain"
	"imperialvip/internal/domain/models"
	"imperialvip/internal/repositories"
	"imperialvip/internal/utils"
)

const (
	ratesCacheKey = "currency_rates_eur"
	ratesCacheTTL = 10 * time.Minute
)

// DefaultRates apply when a currency has no stored row.
var DefaultRates = map[string]float64{
	domain.CurrencyTRY: 38.27,
	domain.CurrencyUSD: 1.05,
	domain.CurrencyGBP: 0.83,
}

var storedCurrencies = []string{domain.CurrencyTRY, domain.CurrencyUSD, domain.CurrencyGBP}

type rateStore interface {
	List(ctx context.Context) ([]models.CurrencyRate, error)
	UpsertAll(ctx context.Context, rates []models.CurrencyRate, at time.Time) error
}

// RateService serves EUR-based exchange rates through a short-lived cache.
type RateService struct {
	Repo     rateStore
	Cache    cache.Store
	Defaults map[string]float64
	Now      func() time.Time
}

func (s RateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s RateService) defaultFor(code string) float64 {
	if v, ok := s.Defaults[code]; ok && v > 0 {
		return v
	}
	return DefaultRates[code]
}

// GetRates returns {EUR:1, TRY, USD, GBP}. The returned map is a copy and may
// be modified by the caller.
func (s RateService) GetRates(ctx context.Context) (map[string]float64, error) {
	rates, err := cache.GetOrLoad(ctx, s.Cache, ratesCacheKey, ratesCacheTTL, s.loadRates)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rates))
	for k, v := range rates {
		out[k] = v
	}
	return out, nil
}

func (s RateService) loadRates(ctx context.Context) (map[string]float64, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, repositories.TranslateError("currency rate", err)
	}
	stored := make(map[string]float64, len(rows))
	for _, r := range rows {
		stored[strings.ToUpper(r.CurrencyCode)] = r.Rate
	}

	out := map[string]float64{domain.CurrencyEUR: 1}
	for _, code := range storedCurrencies {
		if v, ok := stored[code]; ok {
			out[code] = v
		} else {
			out[code] = s.defaultFor(code)
		}
	}
	return out, nil
}

// SaveRates upserts the three rates in one transaction and evicts the cache so
// the next read sees them. Non-positive rates are rejected.
func (s RateService) SaveRates(ctx context.Context, tryRate, usdRate, gbpRate float64) error {
	rates := []models.CurrencyRate{
		{CurrencyCode: domain.CurrencyTRY, Rate: tryRate},
		{CurrencyCode: domain.CurrencyUSD, Rate: usdRate},
		{CurrencyCode: domain.CurrencyGBP, Rate: gbpRate},
	}
	var fe domain.FieldErrors
	for _, r := range rates {
		if r.Rate <= 0 {
			fe.Add(r.CurrencyCode, "kur 0'dan büyük olmalıdır")
		}
	}
	if err := fe.OrNil(); err != nil {
		return err
	}

	if err := s.Repo.UpsertAll(ctx, rates, s.now().UTC()); err != nil {
		return repositories.TranslateError("currency rate", err)
	}
	s.Cache.Delete(ratesCacheKey)
	utils.LogEvent(utils.RequestIDFrom(ctx), "rates", "save", fmt.Sprintf("TRY=%.4f USD=%.4f GBP=%.4f", tryRate, usdRate, gbpRate))
	return nil
}

// Convert turns a EUR amount into currency using the current rates.
func (s RateService) Convert(ctx context.Context, amountEUR float64, currency string) (float64, error) {
	rates, err := s.GetRates(ctx)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[strings.ToUpper(currency)]
	if !ok {
		return 0, domain.ValidationError{Field: "currency", Msg: "desteklenmeyen para birimi"}
	}
	return amountEUR * rate, nil
}
