package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/frontdesk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("default env must be development")
	}
	if cfg.DisplayTimezone != "Asia/Kolkata" {
		t.Errorf("display timezone = %q", cfg.DisplayTimezone)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool bounds = %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/frontdesk")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
}

func TestValidate_ProductionRequiresJWTSecret(t *testing.T) {
	cfg := &Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for production without JWT_SECRET")
	}
	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_DisplayTimezone(t *testing.T) {
	cfg := &Config{Env: "development", DisplayTimezone: "Not/AZone"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bogus timezone")
	}
	cfg.DisplayTimezone = "Asia/Kolkata"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_ReceiptCounterURL(t *testing.T) {
	cfg := &Config{Env: "development", ReceiptCounterURL: "ftp://counter"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http counter URL")
	}
	cfg.ReceiptCounterURL = "http://counter:9000"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
