package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the portal's application configuration, loaded once at startup
// from environment variables. A .env file is honoured in development.
type Config struct {
	// Env selects the runtime environment ("DEV" or "PROD").
	Env string `env:"ENV" envDefault:"DEV"`

	// AppName is used for the startup banner.
	AppName string `env:"APP_NAME" envDefault:"Donor Portal"`

	// Port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DataFolder holds the remembered-session database file.
	DataFolder string `env:"FOLDER" envDefault:"./data"`

	API     APIConfig     `envPrefix:"API_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Geo     GeoConfig     `envPrefix:"GEO_"`
}

// APIConfig describes the coordination backend the portal talks to.
type APIConfig struct {
	// BaseURL is the backend REST API root.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5004/api"`

	// TimeoutSeconds bounds each backend call.
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" envDefault:"15"`
}

// SessionConfig controls browser-context session behaviour.
type SessionConfig struct {
	// CookieName is the browser-context cookie carrying the context ID.
	CookieName string `env:"COOKIE_NAME" envDefault:"sid"`

	// RememberedDays is the cookie lifetime for remember-me logins.
	RememberedDays int `env:"REMEMBERED_DAYS" envDefault:"30"`
}

// GeoConfig lists the best-effort location providers, tried in order.
type GeoConfig struct {
	// IPLookupURLs are IP-geolocation endpoints returning JSON coordinates.
	IPLookupURLs []string `env:"IP_LOOKUP_URLS" envSeparator:";" envDefault:"https://ipapi.co/json/;http://ip-api.com/json/;https://ipwho.is/"`

	// ReverseGeocodeURLs are reverse-geocoding endpoints, primary first.
	ReverseGeocodeURLs []string `env:"REVERSE_GEOCODE_URLS" envSeparator:";" envDefault:"https://nominatim.openstreetmap.org/reverse;https://api.bigdatacloud.net/data/reverse-geocode-client"`

	// TimeoutSeconds bounds each provider attempt.
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" envDefault:"5"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	c.Sanitize()
	return c, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	c.Env = strings.ToUpper(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = "DEV"
	}
	if !strings.HasPrefix(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.Session.RememberedDays <= 0 {
		c.Session.RememberedDays = 30
	}
	if c.Geo.TimeoutSeconds <= 0 {
		c.Geo.TimeoutSeconds = 5
	}
}

// IsDev reports whether the portal runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "DEV"
}
