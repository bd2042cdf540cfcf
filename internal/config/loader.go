package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// StoreKind selects the persistence backend.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreSQLite StoreKind = "sqlite"
	StoreRedis  StoreKind = "redis"
)

// Config captures environment driven configuration values for the booking service.
type Config struct {
	HTTPPort           int
	Store              StoreKind
	SQLiteDSN          string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisKeyPrefix     string
	AMQPURL            string
	AMQPQueue          string
	AuditoriumCapacity int
	CatalogFile        string
	AsyncPersist       bool
	CORSOrigins        []string
}

// EventsEnabled reports whether mutation events should be published.
func (c Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; every invalid value is reported in a
// single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:           8080,
		Store:              StoreSQLite,
		SQLiteDSN:          "roombook.db",
		RedisAddr:          "localhost:6379",
		RedisKeyPrefix:     "roombook:",
		AMQPQueue:          "roombook.events",
		AuditoriumCapacity: 100,
		CORSOrigins:        []string{"*"},
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := env("ROOMBOOK_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "ROOMBOOK_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if store := env("ROOMBOOK_STORE"); store != "" {
		switch kind := StoreKind(strings.ToLower(store)); kind {
		case StoreMemory, StoreSQLite, StoreRedis:
			cfg.Store = kind
		default:
			invalid = append(invalid, "ROOMBOOK_STORE")
		}
	}

	if dsn := env("ROOMBOOK_SQLITE_DSN"); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if addr := env("ROOMBOOK_REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	cfg.RedisPassword = os.Getenv("ROOMBOOK_REDIS_PASSWORD")
	if dbValue := env("ROOMBOOK_REDIS_DB"); dbValue != "" {
		db, err := strconv.Atoi(dbValue)
		if err != nil || db < 0 {
			invalid = append(invalid, "ROOMBOOK_REDIS_DB")
		} else {
			cfg.RedisDB = db
		}
	}
	if prefix := env("ROOMBOOK_REDIS_KEY_PREFIX"); prefix != "" {
		cfg.RedisKeyPrefix = prefix
	}

	cfg.AMQPURL = env("ROOMBOOK_AMQP_URL")
	if queue := env("ROOMBOOK_AMQP_QUEUE"); queue != "" {
		cfg.AMQPQueue = queue
	}

	if capacityValue := env("ROOMBOOK_AUDITORIUM_CAPACITY"); capacityValue != "" {
		capacity, err := strconv.Atoi(capacityValue)
		if err != nil || capacity < 1 {
			invalid = append(invalid, "ROOMBOOK_AUDITORIUM_CAPACITY")
		} else {
			cfg.AuditoriumCapacity = capacity
		}
	}

	cfg.CatalogFile = env("ROOMBOOK_CATALOG_FILE")

	if asyncValue := env("ROOMBOOK_ASYNC_PERSIST"); asyncValue != "" {
		async, err := strconv.ParseBool(asyncValue)
		if err != nil {
			invalid = append(invalid, "ROOMBOOK_ASYNC_PERSIST")
		} else {
			cfg.AsyncPersist = async
		}
	}

	if originsValue := env("ROOMBOOK_CORS_ORIGINS"); originsValue != "" {
		origins := splitList(originsValue)
		if len(origins) == 0 {
			invalid = append(invalid, "ROOMBOOK_CORS_ORIGINS")
		} else {
			cfg.CORSOrigins = origins
		}
	}

	switch {
	case cfg.Store == StoreSQLite && cfg.SQLiteDSN == "":
		missing = append(missing, "ROOMBOOK_SQLITE_DSN")
	case cfg.Store == StoreRedis && cfg.RedisAddr == "":
		missing = append(missing, "ROOMBOOK_REDIS_ADDR")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
