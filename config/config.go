package config

import (
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultConfigPath = "config/config.toml"
	ConfigFileName    = "config.toml"
	ConfigExtension   = ".toml"
	DefaultEnvFile    = ".env"

	DefaultLedgerEndpoint  = "wss://s.altnet.rippletest.net:51233"
	DefaultSigningBaseURL  = "https://xumm.app/api/v1"
	DefaultPayloadExpire   = 5 * time.Minute
	DefaultBoltDBFile      = "credential-service.db"
	DefaultStorageProvider = "memory"

	EnvironmentDev  Environment = "dev"
	EnvironmentTest Environment = "test"
	EnvironmentProd Environment = "prod"
)

type (
	Environment string
	EnvVar      string
)

// Recognized environment overrides. These are applied after the TOML file and defaults.
const (
	ConfigPath    EnvVar = "CONFIG_PATH"
	Port          EnvVar = "PORT"
	LedgerURL     EnvVar = "XRPL_ENDPOINT"
	SigningKey    EnvVar = "XUMM_API_KEY"
	SigningSecret EnvVar = "XUMM_API_SECRET"
	LogLevel      EnvVar = "LOG_LEVEL"
)

func (e EnvVar) String() string {
	return string(e)
}

type CredentialServiceConfig struct {
	conf.Version
	Server  ServerConfig  `toml:"server"`
	Ledger  LedgerConfig  `toml:"ledger"`
	Signing SigningConfig `toml:"signing"`
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig represents configurable properties for the HTTP server
type ServerConfig struct {
	Environment     Environment   `toml:"env" conf:"default:dev"`
	APIHost         string        `toml:"api_host" conf:"default:0.0.0.0:3000"`
	JagerHost       string        `toml:"jager_host" conf:"default:http://jaeger:14268/api/traces"`
	JagerEnabled    bool          `toml:"jager_enabled" conf:"default:false"`
	ReadTimeout     time.Duration `toml:"read_timeout" conf:"default:5s"`
	WriteTimeout    time.Duration `toml:"write_timeout" conf:"default:60s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" conf:"default:5s"`
	LogLocation     string        `toml:"log_location" conf:"default:log"`
	LogLevel        string        `toml:"log_level" conf:"default:debug"`
	AllowedOrigins  []string      `toml:"allowed_origins" conf:"default:http://localhost:5173;http://127.0.0.1:5173"`
}

// LedgerConfig describes the websocket endpoint of the ledger node the service stays connected to.
type LedgerConfig struct {
	Endpoint     string        `toml:"endpoint" conf:"default:wss://s.altnet.rippletest.net:51233"`
	DialTimeout  time.Duration `toml:"dial_timeout" conf:"default:10s"`
	PingInterval time.Duration `toml:"ping_interval" conf:"default:30s"`
}

// SigningConfig holds the credentials and payload options handed to the wallet signing service.
// SubmitOnSign and Expire become the payload options; the signing service enforces them, this service
// never does. The signing service counts expiry in whole minutes, see ExpireMinutes.
type SigningConfig struct {
	BaseURL      string        `toml:"base_url" conf:"default:https://xumm.app/api/v1"`
	APIKey       string        `toml:"api_key" conf:"noprint"`
	APISecret    string        `toml:"api_secret" conf:"noprint"`
	SubmitOnSign bool          `toml:"submit_on_sign" conf:"default:true"`
	Expire       time.Duration `toml:"expire" conf:"default:5m"`
	Timeout      time.Duration `toml:"timeout" conf:"default:30s"`
}

// ExpireMinutes is Expire in the whole minutes the signing service takes, rounded up.
func (c SigningConfig) ExpireMinutes() int {
	return int(math.Ceil(c.Expire.Minutes()))
}

// StorageConfig selects the provider backing the signing request journal. The default memory provider
// keeps the journal in process; bolt, redis and postgres persist it and must be chosen explicitly.
type StorageConfig struct {
	Provider      string `toml:"provider" conf:"default:memory"`
	BoltFile      string `toml:"bolt_file" conf:"default:credential-service.db"`
	RedisAddress  string `toml:"redis_address"`
	RedisPassword string `toml:"redis_password" conf:"noprint"`
	SQLConnection string `toml:"sql_connection" conf:"noprint"`
}

// LoadConfig attempts to load a TOML config file from the given path, and coerce it into our object model.
// Before loading, defaults are applied on certain properties, which are overwritten if specified in the TOML file.
// Environment overrides (optionally sourced from a .env file) are applied last.
func LoadConfig(path string, args []string) (*CredentialServiceConfig, error) {
	// no path, load default config
	defaultConfig := false
	if path == "" {
		logrus.Info("no config path provided, loading default config...")
		defaultConfig = true
	} else if filepath.Ext(path) != ConfigExtension {
		return nil, fmt.Errorf("path<%s> did not match the expected TOML format", path)
	}

	var config CredentialServiceConfig

	// parse and apply defaults
	if err := conf.Parse(args, ServiceName, &config); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage(ServiceName, &config)
			if err != nil {
				return nil, errors.Wrap(err, "parsing config")
			}
			fmt.Println(usage)

			return nil, nil

		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString(ServiceName, &config)
			if err != nil {
				return nil, errors.Wrap(err, "generating config version")
			}

			fmt.Println(version)
			return nil, nil
		}

		return nil, errors.Wrap(err, "parsing config")
	}

	if !defaultConfig {
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, errors.Wrapf(err, "could not load config: %s", path)
		}
	}

	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}
	if err := applyEnvironment(&config); err != nil {
		return nil, errors.Wrap(err, "applying environment overrides")
	}
	applyDefaults(&config)

	return &config, nil
}

// loadEnvFile populates the process environment from a dotenv file. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "checking env file: %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading env file: %s", path)
	}
	logrus.Infof("loaded environment from %s", path)
	return nil
}

func applyEnvironment(config *CredentialServiceConfig) error {
	if port, ok := os.LookupEnv(Port.String()); ok && port != "" {
		host, _, err := net.SplitHostPort(config.Server.APIHost)
		if err != nil {
			return errors.Wrapf(err, "splitting api host<%s>", config.Server.APIHost)
		}
		config.Server.APIHost = net.JoinHostPort(host, port)
	}
	if endpoint, ok := os.LookupEnv(LedgerURL.String()); ok && endpoint != "" {
		config.Ledger.Endpoint = endpoint
	}
	if key, ok := os.LookupEnv(SigningKey.String()); ok && key != "" {
		config.Signing.APIKey = key
	}
	if secret, ok := os.LookupEnv(SigningSecret.String()); ok && secret != "" {
		config.Signing.APISecret = secret
	}
	if level, ok := os.LookupEnv(LogLevel.String()); ok && level != "" {
		config.Server.LogLevel = level
	}
	return nil
}

// applyDefaults fills values a partial TOML file may have left empty
func applyDefaults(config *CredentialServiceConfig) {
	if config.Ledger.Endpoint == "" {
		config.Ledger.Endpoint = DefaultLedgerEndpoint
	}
	if config.Signing.BaseURL == "" {
		config.Signing.BaseURL = DefaultSigningBaseURL
	}
	if config.Signing.Expire == 0 {
		config.Signing.Expire = DefaultPayloadExpire
	}
	if config.Storage.Provider == "" {
		config.Storage.Provider = DefaultStorageProvider
	}
	if config.Storage.Provider == "bolt" && config.Storage.BoltFile == "" {
		config.Storage.BoltFile = DefaultBoltDBFile
	}
}
