package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCleaningFeeFallsBack(t *testing.T) {
	AppConfig.CleaningFee = "not-a-number"
	if fee := CleaningFee(); !fee.Equal(decimal.NewFromInt(85)) {
		t.Fatalf("expected fallback fee 85, got %s", fee)
	}
	AppConfig.CleaningFee = "42.50"
	if fee := CleaningFee(); fee.StringFixed(2) != "42.50" {
		t.Fatalf("expected 42.50, got %s", fee)
	}
}

func TestLocation(t *testing.T) {
	AppConfig.Timezone = "Nowhere/Invalid"
	if Location() != time.UTC {
		t.Fatal("expected UTC for an unknown zone")
	}
	AppConfig.Timezone = "UTC"
	if Location().String() != "UTC" {
		t.Fatalf("unexpected location %s", Location())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	LoadConfig()
	if AppConfig.AppPort != "9090" {
		t.Fatalf("expected env override 9090, got %s", AppConfig.AppPort)
	}
	if AppConfig.DatabaseName != "havenstay" || AppConfig.Currency != "usd" {
		t.Fatalf("unexpected defaults %+v", AppConfig)
	}
}
