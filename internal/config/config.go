package config

import (
	"moneymaster-server/internal/util"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Money Master server
type Config struct {
	loaded bool
	Store  struct {
		// Driver is one of memory, postgres or sqlite
		Driver         string `yaml:"driver" envconfig:"driver"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
		SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"store"`
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Game struct {
		Rounds                  int           `yaml:"rounds" envconfig:"rounds"`
		SeedEarningsFromHistory bool          `yaml:"seedEarningsFromHistory" envconfig:"seed_earnings_from_history"`
		PersistTimeout          time.Duration `yaml:"persistTimeout" envconfig:"persist_timeout"`
		SessionTTL              time.Duration `yaml:"sessionTTL" envconfig:"session_ttl"`
	} `yaml:"game"`
	Post struct {
		Title   string `yaml:"title" envconfig:"title"`
		Preview string `yaml:"preview" envconfig:"preview"`
		BaseURL string `yaml:"baseUrl" envconfig:"base_url"`
	} `yaml:"post"`
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.Store.Driver = "memory"
	cfg.Store.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.Store.SQLitePath = "moneymaster.db"
	cfg.Store.MigrationsPath = "./sql"
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.Game.Rounds = 10
	cfg.Game.SeedEarningsFromHistory = true
	cfg.Game.PersistTimeout = time.Second * 5
	cfg.Game.SessionTTL = time.Hour * 24
	cfg.Post.Title = "Money Master Challenge 💰"
	cfg.Post.Preview = "Loading Money Game... 💰"
	cfg.Post.BaseURL = "http://localhost:5000"
	cfg.Log.Level = "info"

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing configuration file is not an error, the defaults are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("MM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("mm", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
