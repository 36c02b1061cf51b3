// Package config loads whichx settings from the environment (.env files
// included) and an optional TOML file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port uint

	LogLevel string

	ModelName    string
	StopWords    []string
	SyncInterval time.Duration

	Backend    string
	DBString   string
	DBSchema   string
	RedisHost  string
	RedisPort  string
	SQLitePath string
	DiskDir    string
}

// fileConfig mirrors the TOML layout:
//
//	[classifier]
//	stopwords = ["a", "the"]
//
//	[store]
//	backend = "sqlite"
//	sqlite_path = "whichx.db"
type fileConfig struct {
	Server struct {
		Port uint `toml:"port"`
	} `toml:"server"`
	Classifier struct {
		Model        string    `toml:"model"`
		StopWords    *[]string `toml:"stopwords"`
		SyncInterval string    `toml:"sync_interval"`
	} `toml:"classifier"`
	Store struct {
		Backend    string `toml:"backend"`
		DBString   string `toml:"db_string"`
		DBSchema   string `toml:"db_schema"`
		RedisHost  string `toml:"redis_host"`
		RedisPort  string `toml:"redis_port"`
		SQLitePath string `toml:"sqlite_path"`
		DiskDir    string `toml:"disk_dir"`
	} `toml:"store"`
}

// Load reads environment variables and, when path is not empty, overlays
// the TOML file at path. StopWords stays nil unless the file sets it.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:         getEnvUint("PORT", 7898),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ModelName:    getEnv("MODEL_NAME", "default"),
		SyncInterval: getEnvDuration("SYNC_INTERVAL", 10*time.Second),
		Backend:      getEnv("STORE_BACKEND", "disk"),
		DBString:     os.Getenv("DB_STRING"),
		DBSchema:     getEnv("DB_SCHEMA", "public"),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		SQLitePath:   getEnv("SQLITE_PATH", "whichx.db"),
		DiskDir:      getEnv("DISK_DIR", "models"),
	}
	if path == "" {
		return cfg, nil
	}

	f := new(fileConfig)
	if _, err := toml.DecodeFile(path, f); err != nil {
		return nil, err
	}
	if f.Server.Port != 0 {
		cfg.Port = f.Server.Port
	}
	setString(&cfg.ModelName, f.Classifier.Model)
	if f.Classifier.StopWords != nil {
		cfg.StopWords = *f.Classifier.StopWords
	}
	if f.Classifier.SyncInterval != "" {
		d, err := time.ParseDuration(f.Classifier.SyncInterval)
		if err != nil {
			return nil, err
		}
		cfg.SyncInterval = d
	}
	setString(&cfg.Backend, f.Store.Backend)
	setString(&cfg.DBString, f.Store.DBString)
	setString(&cfg.DBSchema, f.Store.DBSchema)
	setString(&cfg.RedisHost, f.Store.RedisHost)
	setString(&cfg.RedisPort, f.Store.RedisPort)
	setString(&cfg.SQLitePath, f.Store.SQLitePath)
	setString(&cfg.DiskDir, f.Store.DiskDir)
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvUint(key string, fallback uint) uint {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 32)
	if err != nil {
		return fallback
	}
	return uint(v)
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
