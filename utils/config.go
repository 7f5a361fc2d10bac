package utils

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Configuration struct {
	// Database holds the MongoDB connection for shared queries and
	// feedback. Leaving SHARE_DB_URL unset disables persistence.
	Database struct {
		Url      string `env:"SHARE_DB_URL"`
		Name     string `env:"SHARE_DB_NAME" envDefault:"dpofinder"`
		User     string `env:"SHARE_DB_USER"`
		Password string `env:"SHARE_DB_PASSWORD"`
	}
	ResolutionCache struct {
		Url      string `env:"RESOLUTION_CACHE_URL" envDefault:"localhost:6379"`
		Password string `env:"RESOLUTION_CACHE_PASSWORD"`
		TTL      int64  `env:"RESOLUTION_CACHE_TTL_SEC" envDefault:"3600"` // 1 hour
	}
	SuggestionCache struct {
		Url      string `env:"SUGGESTION_CACHE_URL" envDefault:"localhost:6379"`
		Password string `env:"SUGGESTION_CACHE_PASSWORD"`
		TTL      int64  `env:"SUGGESTION_CACHE_TTL_SEC" envDefault:"300"` // 5 minutes
	}
	Data struct {
		DirectoryCSV string `env:"POSTAL_DATA_CSV" envDefault:"data/postal_data.csv"`
	}
	Server struct {
		Port              uint   `env:"SERVER_PORT" envDefault:"8080"`
		ResolveTimeoutSec uint   `env:"RESOLVE_TIMEOUT_SEC" envDefault:"10"`
		RetryFrequencySec []uint `env:"RETRY_FREQUENCY_SEC" envDefault:"1,2,3"`
		SuggestionLimit   int    `env:"SUGGESTION_LIMIT" envDefault:"5"`
	}

	Debug bool `env:"DEBUG" envDefault:"false"`
}

var (
	Cfg Configuration
)

func LoadConfig() Configuration {
	err := godotenv.Load(".env")
	if err != nil {
		log.WithError(err).Warn("Error loading .env file")
	}

	err = env.Parse(&Cfg)
	if err != nil {
		log.WithError(err).Fatal("Error parsing environment variables")
	}

	if Cfg.Debug {
		log.SetLevel(log.DebugLevel)
		log.Warn("DEBUG MODE ENABLED")
	}

	return Cfg
}
