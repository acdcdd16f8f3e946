package config

import (
	"os"

	"github.com/videoclub/rental/internal/util"
)

type Config struct {
	Addr        string
	DBPath      string
	DatabaseDSN string
	CacheURL    string
	MQURL       string
}

// LoadConfig reads configuration from the environment (and .env if present).
// DBPath points at the embedded database file and is used unless DATABASE_DSN
// selects a postgres server instead. CacheURL and MQURL are optional; empty
// values disable the cache and the event pipeline.
func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	cfg := &Config{
		Addr:        os.Getenv("ADDR"),
		DBPath:      os.Getenv("DB_PATH"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		CacheURL:    os.Getenv("CACHE_URL"),
		MQURL:       os.Getenv("RABBIT_MQ_URL"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":4000"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "db/videoclub.db"
	}
	return cfg, nil
}
