package config

import (
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the server configuration read from the environment.
type Config struct {
	Port           string
	JWTSecret      string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Scheduler      SchedulerConfig
}

// SchedulerConfig controls the daily recurring transaction run.
type SchedulerConfig struct {
	Enabled  bool
	Timezone string
	LockTTL  time.Duration
}

// Location resolves the scheduler timezone, falling back to UTC.
func (s SchedulerConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		log.Printf("[CONFIG] unknown scheduler timezone %q, using UTC: %v", s.Timezone, err)
		return time.UTC
	}
	return loc
}

var envKeys = map[string]string{
	"database.host":              "DATABASE_HOST",
	"database.port":              "DATABASE_PORT",
	"database.user":              "DATABASE_USER",
	"database.password":          "DATABASE_PASSWORD",
	"database.name":              "DATABASE_NAME",
	"database.ssl_mode":          "DATABASE_SSL_MODE",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key": "JWT_SECRET_KEY",

	"server.port":            "PORT",
	"server.allowed_origins": "ALLOWED_ORIGINS",
	"server.request_timeout": "REQUEST_TIMEOUT",

	"scheduler.enabled":  "SCHEDULER_ENABLED",
	"scheduler.timezone": "SCHEDULER_TIMEZONE",
	"scheduler.lock_ttl": "SCHEDULER_LOCK_TTL",
}

// Init loads envFile (if any) into the process environment and binds every
// known key to its environment variable. Variables already set win over the file.
func Init(envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Config file not found, using defaults: %v", err)
		}
	}
	viper.AutomaticEnv()

	for key, env := range envKeys {
		viper.BindEnv(key, env)
	}

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.request_timeout", 60*time.Second)
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.timezone", "UTC")
	viper.SetDefault("scheduler.lock_ttl", 10*time.Minute)
}

// Load reads the bound keys. Call Init first.
func Load() *Config {
	var origins []string
	for _, o := range strings.Split(viper.GetString("server.allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:           viper.GetString("server.port"),
		JWTSecret:      viper.GetString("jwt.secret_key"),
		AllowedOrigins: origins,
		RequestTimeout: viper.GetDuration("server.request_timeout"),
		Scheduler: SchedulerConfig{
			Enabled:  viper.GetBool("scheduler.enabled"),
			Timezone: viper.GetString("scheduler.timezone"),
			LockTTL:  viper.GetDuration("scheduler.lock_ttl"),
		},
	}
}
