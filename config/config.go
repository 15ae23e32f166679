package config

import (
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/gatefig/gatefig/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var validate = validator.New()

// defaultConfig fills any field left unset by the config file and ENV.
// The API origin intentionally defaults to empty: with no new service
// running yet, the gateway serves its built-in stub under /api.
var defaultConfig = Config{
	Server: ServerConfig{
		Host: "0.0.0.0",
		Port: 5173,
	},
	Upstreams: UpstreamsConfig{
		API: UpstreamConfig{
			Timeout: 15 * time.Second,
		},
		Legacy: UpstreamConfig{
			Origin:  "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
	},
	Proxy: ProxyConfig{
		BreakerFailureThreshold: 5,
		BreakerCooldown:         30 * time.Second,
		ProbeInterval:           30 * time.Second,
		ProbeTimeout:            5 * time.Second,
	},
	UI: UIConfig{
		SessionTTL: 12 * time.Hour,
	},
	Log: LogConfig{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
	},
}

// LoadConfig loads the config file and ENV variables into a Config struct
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("GATEFIG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Running without a config file is supported: the gateway
		// starts on defaults and ENV alone.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, err
		}
		log.Warn("no config file found, using defaults and ENV")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	// Short aliases for the two values every deployment has to set
	for key, env := range map[string]string{
		"upstreams.api.origin":    "GATEFIG_API_ORIGIN",
		"upstreams.legacy.origin": "GATEFIG_LEGACY_ORIGIN",
		"ui.session_secret":       "GATEFIG_SESSION_SECRET",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("Error binding environment variable: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&cfg, defaultConfig); err != nil {
		return nil, err
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Warn(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}

// ConfigureLogging applies the log config: level first, then the
// optional rotating file output.
func ConfigureLogging(cfg *Config) {
	SetLogLevel(cfg)
	if cfg.Log.File != "" {
		internal.SetLogFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}
}
