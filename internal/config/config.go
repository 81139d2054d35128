package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Port         string
	DBDriver     string // sqlite | pgx
	DBDSN        string
	LogFile      string
	LogLevel     string
	TemplatesDir string
	StaticDir    string
	CookieSecure bool
	RateLimit    int // requests per minute per IP

	SeedDemo      bool
	AdminUsername string
	AdminPassword string
}

// Load reads settings from the environment, falling back to an optional .env
// file in the working directory. Environment variables win.
func Load() Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "stockroom.db") // sqlite file in project root
	v.SetDefault("LOG_FILE", "./stockroom.log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("SEED_DEMO", false)

	return Config{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:         v.GetString("DB_DSN"),
		LogFile:       v.GetString("LOG_FILE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		TemplatesDir:  v.GetString("TEMPLATES_DIR"),
		StaticDir:     v.GetString("STATIC_DIR"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),
		RateLimit:     v.GetInt("RATE_LIMIT_PER_MINUTE"),
		SeedDemo:      v.GetBool("SEED_DEMO"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
}
