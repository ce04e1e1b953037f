package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"venue-radar/internal/venue_radar/model"
)

type ProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	OAuthToken   string `yaml:"oauth_token"`
	BaseURL      string `yaml:"base_url"`
	Version      string `yaml:"version"`
	RadiusMeters int    `yaml:"radius_meters"`
	Limit        int    `yaml:"limit"`
}

type PollerConfig struct {
	Workers         int `yaml:"workers"`
	IntervalMinutes int `yaml:"interval_minutes"`
}

type MongoConfig struct {
	Host       string `yaml:"host"`
	DBName     string `yaml:"dbname"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
}

type StorageConfig struct {
	Type        string      `yaml:"type"` // "fs" | "mongo"
	Dir         string      `yaml:"dir"`
	SyncSeconds int         `yaml:"sync_seconds"`
	Mongo       MongoConfig `yaml:"mongo"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Provider ProviderConfig   `yaml:"provider"`
	Poller   PollerConfig     `yaml:"poller"`
	Grid     []model.GeoPoint `yaml:"grid"`
	Storage  StorageConfig    `yaml:"storage"`
	Server   ServerConfig     `yaml:"server"`
}

// defaultGrid covers the Riyadh metropolitan area. Kept as static data so the
// sampled region stays reproducible between runs.
var defaultGrid = []model.GeoPoint{
	{Lat: 24.980807, Lng: 46.537516},
	{Lat: 24.894888, Lng: 46.639137},
	{Lat: 24.957157, Lng: 46.792259},
	{Lat: 24.779878, Lng: 46.637650},
	{Lat: 24.826640, Lng: 46.815044},
	{Lat: 24.712434, Lng: 46.764911},
	{Lat: 24.617157, Lng: 46.622923},
	{Lat: 24.576487, Lng: 46.771912},
}

// Load reads and validates the configuration file, applying defaults for
// everything optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Provider.ClientID == "" || cfg.Provider.ClientSecret == "" {
		return nil, fmt.Errorf("provider.client_id and provider.client_secret are required")
	}
	if cfg.Provider.OAuthToken == "" {
		return nil, fmt.Errorf("provider.oauth_token is required")
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.foursquare.com/v2"
	}
	if cfg.Provider.Version == "" {
		cfg.Provider.Version = "20250101"
	}
	if cfg.Provider.RadiusMeters <= 0 {
		cfg.Provider.RadiusMeters = 10000
	}
	if cfg.Provider.Limit <= 0 {
		cfg.Provider.Limit = 30
	}

	if cfg.Poller.Workers <= 0 {
		cfg.Poller.Workers = 3
	}
	if cfg.Poller.IntervalMinutes <= 0 {
		cfg.Poller.IntervalMinutes = 30
	}

	if len(cfg.Grid) == 0 {
		cfg.Grid = defaultGrid
	}

	switch cfg.Storage.Type {
	case "":
		cfg.Storage.Type = "fs"
	case "fs", "mongo":
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "fs" && cfg.Storage.Dir == "" {
		cfg.Storage.Dir = ".cache"
	}
	if cfg.Storage.Type == "mongo" && cfg.Storage.Mongo.Host == "" {
		return nil, fmt.Errorf("storage.mongo.host is required when storage type is mongo")
	}
	if cfg.Storage.SyncSeconds <= 0 {
		cfg.Storage.SyncSeconds = 5
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	return &cfg, nil
}
