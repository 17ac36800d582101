package services

import (
	"context"
	"errors"
	"testing"

	"imperialvip/internal/cache"
	"imperialvip/internal/domain"
)

func TestSaveThenGetRatesSeesNewValues(t *testing.T) {
	repo := &fakeRates{rows: map[string]float64{"TRY": 35, "USD": 1.1, "GBP": 0.8}}
	svc := RateService{Repo: repo, Cache: cache.NewMemory(nil), Now: clockAt(fixedNow)}
	ctx := context.Background()

	if _, err := svc.GetRates(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if err := svc.SaveRates(ctx, 38.50, 1.05, 0.83); err != nil {
		t.Fatalf("SaveRates: %v", err)
	}
	got, err := svc.GetRates(ctx)
	if err != nil {
		t.Fatalf("GetRates: %v", err)
	}
	want := map[string]float64{"EUR": 1, "TRY": 38.50, "USD": 1.05, "GBP": 0.83}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: got %v, want %v", k, got[k], v)
		}
	}
}

func TestGetRatesFallsBackToDefaultsAndCaches(t *testing.T) {
	repo := &fakeRates{rows: map[string]float64{"USD": 1.2, "JPY": 160}}
	svc := RateService{Repo: repo, Cache: cache.NewMemory(nil)}

	got, err := svc.GetRates(context.Background())
	if err != nil {
		t.Fatalf("GetRates: %v", err)
	}
	if got["TRY"] != 38.27 || got["GBP"] != 0.83 || got["USD"] != 1.2 {
		t.Fatalf("unexpected rates %v", got)
	}
	if _, ok := got["JPY"]; ok {
		t.Fatalf("only EUR/TRY/USD/GBP may be returned")
	}

	got["TRY"] = 0
	again, _ := svc.GetRates(context.Background())
	if again["TRY"] != 38.27 {
		t.Fatalf("caller mutation leaked into the cache")
	}
	if repo.listN != 1 {
		t.Fatalf("expected one store read, got %d", repo.listN)
	}
}

func TestSaveRatesRejectsNonPositive(t *testing.T) {
	repo := &fakeRates{}
	svc := RateService{Repo: repo, Cache: cache.NewMemory(nil)}

	err := svc.SaveRates(context.Background(), 0, -1, 0.8)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := domain.ValidationDetails(err)
	if _, ok := fields["TRY"]; !ok {
		t.Fatalf("TRY should be reported: %v", fields)
	}
	if _, ok := fields["USD"]; !ok {
		t.Fatalf("USD should be reported: %v", fields)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestGetRatesErrorIsNotCached(t *testing.T) {
	repo := &fakeRates{listErr: errors.New("connection refused")}
	svc := RateService{Repo: repo, Cache: cache.NewMemory(nil)}

	if _, err := svc.GetRates(context.Background()); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	repo.listErr = nil
	if _, err := svc.GetRates(context.Background()); err != nil {
		t.Fatalf("second read should reach the store: %v", err)
	}
	if repo.listN != 2 {
		t.Fatalf("expected 2 store reads, got %d", repo.listN)
	}
}

func TestConvert(t *testing.T) {
	repo := &fakeRates{rows: map[string]float64{"TRY": 40}}
	svc := RateService{Repo: repo, Cache: cache.NewMemory(nil)}

	got, err := svc.Convert(context.Background(), 50, "try")
	if err != nil || got != 2000 {
		t.Fatalf("Convert = %v, %v", got, err)
	}
	if _, err := svc.Convert(context.Background(), 1, "CHF"); !domain.IsValidation(err) {
		t.Fatalf("unsupported currency should be a validation error, got %v", err)
	}
}
