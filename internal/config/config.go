package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret         string   `mapstructure:"JWT_SECRET"`
	JWTIssuer         string   `mapstructure:"JWT_ISSUER"`
	ReceiptCounterURL string   `mapstructure:"RECEIPT_COUNTER_URL"`
	DisplayTimezone   string   `mapstructure:"DISPLAY_TIMEZONE"`
	HospitalName      string   `mapstructure:"HOSPITAL_NAME"`
	HospitalAddress   string   `mapstructure:"HOSPITAL_ADDRESS"`
	HospitalPhone     string   `mapstructure:"HOSPITAL_PHONE"`
	HospitalLogoURL   string   `mapstructure:"HOSPITAL_LOGO_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DISPLAY_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("HOSPITAL_NAME", "City Hospital")
	v.SetDefault("JWT_ISSUER", "frontdesk")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ISSUER")
	v.BindEnv("RECEIPT_COUNTER_URL")
	v.BindEnv("DISPLAY_TIMEZONE")
	v.BindEnv("HOSPITAL_NAME")
	v.BindEnv("HOSPITAL_ADDRESS")
	v.BindEnv("HOSPITAL_PHONE")
	v.BindEnv("HOSPITAL_LOGO_URL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: DevAuthMiddleware is active, all requests get admin access.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Production requires
// a real JWT secret, and the display timezone must resolve against the tz
// database so documents never render with a bogus clock.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.DisplayTimezone != "" {
		if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
			return fmt.Errorf("DISPLAY_TIMEZONE %q is not a valid tz database name: %w", c.DisplayTimezone, err)
		}
	}
	if c.ReceiptCounterURL != "" && !strings.HasPrefix(c.ReceiptCounterURL, "http://") && !strings.HasPrefix(c.ReceiptCounterURL, "https://") {
		return fmt.Errorf("RECEIPT_COUNTER_URL must be an http(s) URL, got %q", c.ReceiptCounterURL)
	}
	return nil
}
