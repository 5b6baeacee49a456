package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Cache      CacheConfig
	Log        LogConfig
	Migrations MigrationConfig
}

type AppConfig struct {
	Port        string
	Env         string
	Timezone    string
	CORSOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type CacheConfig struct {
	MedicineSearchTTL time.Duration
}

type LogConfig struct {
	Level string
}

type MigrationConfig struct {
	Path string
}

// Location resolves the configured clinic timezone, falling back to UTC.
// "Today" for schedule validation is computed in this location.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	medicineTTL, err := time.ParseDuration(viper.GetString("MEDICINE_CACHE_TTL"))
	if err != nil {
		medicineTTL = 10 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			Timezone:    viper.GetString("APP_TIMEZONE"),
			CORSOrigins: splitList(viper.GetString("APP_CORS_ORIGINS")),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Cache: CacheConfig{
			MedicineSearchTTL: medicineTTL,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Migrations: MigrationConfig{
			Path: viper.GetString("MIGRATIONS_PATH"),
		},
	}

	return config, nil
}

// splitList parses a comma separated env value, dropping blank entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
