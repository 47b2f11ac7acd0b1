package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string

	// CacheTTL bounds how stale a cached report view may get when tag
	// invalidation is missed.
	CacheTTL time.Duration
	// TxTimeout bounds every lifecycle transaction.
	TxTimeout time.Duration

	// ReportTimezoneOffset is the fixed UTC offset, in hours, report schedule
	// times are interpreted in.
	ReportTimezoneOffset int
	ReportSchedulesSpec  string
	DueMaintenanceSpec   string
}

// Load loads config from env and an optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	cacheTTL := viper.GetDuration("CACHE_TTL")
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	txTimeout := viper.GetDuration("TX_TIMEOUT")
	if txTimeout == 0 {
		txTimeout = 30 * time.Second
	}

	offset := 8
	if viper.IsSet("REPORT_TIMEZONE_OFFSET") {
		offset = viper.GetInt("REPORT_TIMEZONE_OFFSET")
	}

	schedSpec := viper.GetString("REPORT_SCHEDULES_CRON")
	if schedSpec == "" {
		schedSpec = "*/5 * * * *"
	}
	maintSpec := viper.GetString("DUE_MAINTENANCE_CRON")
	if maintSpec == "" {
		maintSpec = "0 8 * * *"
	}

	return &Config{
		Env:                  env,
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             viper.GetString("REDIS_URL"),
		CacheTTL:             cacheTTL,
		TxTimeout:            txTimeout,
		ReportTimezoneOffset: offset,
		ReportSchedulesSpec:  schedSpec,
		DueMaintenanceSpec:   maintSpec,
	}, nil
}
