package utils

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Store StoreConfig
	Mock  MockConfig
}

type AppConfig struct {
	Name          string
	Debug         bool
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

type APIConfig struct {
	BaseURL         string
	Token           string
	TimeoutSecs     int
	UsersListPath   string
	UsersDeletePath string
}

type StoreConfig struct {
	MutationPolicy string
	OwnershipMode  string
	BannerSeconds  int
}

type MockConfig struct {
	Port       string
	AdminToken string
}

const (
	MutationPolicyReject = "reject"
	MutationPolicyQueue  = "queue"

	OwnershipByName = "name"
	OwnershipByID   = "id"
)

func LoadConfig() (*Config, error) {
	// .env is optional outside local development
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "movie-catalog")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 7)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("API_URL", "http://localhost:3000/api")
	v.SetDefault("API_TIMEOUT_SECS", 10)
	v.SetDefault("USERS_LIST_PATH", "/user/admin/all-users")
	v.SetDefault("USERS_DELETE_PATH", "/user/admin/delete-user")
	v.SetDefault("MUTATION_POLICY", MutationPolicyReject)
	v.SetDefault("OWNERSHIP_MODE", OwnershipByName)
	v.SetDefault("BANNER_SECONDS", 3)
	v.SetDefault("MOCK_PORT", "3000")

	config := &Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Debug:         v.GetBool("DEBUG"),
			LogPath:       v.GetString("LOG_PATH"),
			LogMaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			LogMaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			LogMaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(v.GetString("API_URL"), "/"),
			Token:           v.GetString("API_TOKEN"),
			TimeoutSecs:     v.GetInt("API_TIMEOUT_SECS"),
			UsersListPath:   v.GetString("USERS_LIST_PATH"),
			UsersDeletePath: strings.TrimRight(v.GetString("USERS_DELETE_PATH"), "/"),
		},
		Store: StoreConfig{
			MutationPolicy: strings.ToLower(v.GetString("MUTATION_POLICY")),
			OwnershipMode:  strings.ToLower(v.GetString("OWNERSHIP_MODE")),
			BannerSeconds:  v.GetInt("BANNER_SECONDS"),
		},
		Mock: MockConfig{
			Port:       v.GetString("MOCK_PORT"),
			AdminToken: v.GetString("MOCK_ADMIN_TOKEN"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.App.LogMaxSizeMB <= 0 || c.App.LogMaxBackups < 0 || c.App.LogMaxAgeDays < 0 {
		return fmt.Errorf("LOG_MAX_SIZE_MB must be positive and log retention must not be negative")
	}
	if c.API.TimeoutSecs <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECS must be positive")
	}
	if !strings.HasPrefix(c.API.UsersListPath, "/") || !strings.HasPrefix(c.API.UsersDeletePath, "/") {
		return fmt.Errorf("USERS_LIST_PATH and USERS_DELETE_PATH must start with /")
	}
	switch c.Store.MutationPolicy {
	case MutationPolicyReject, MutationPolicyQueue:
	default:
		return fmt.Errorf("MUTATION_POLICY must be one of: reject, queue")
	}
	switch c.Store.OwnershipMode {
	case OwnershipByName, OwnershipByID:
	default:
		return fmt.Errorf("OWNERSHIP_MODE must be one of: name, id")
	}
	if c.Store.BannerSeconds <= 0 {
		return fmt.Errorf("BANNER_SECONDS must be positive")
	}
	return nil
}
