// Package config loads TiffinCRM settings from config.yaml, a .env file,
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tiffincrm/internal/paths"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys in config.yaml.
const (
	KeyPort        = "port"
	KeyEnvironment = "environment"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyDataDir     = "data_dir"
	KeyDBFile      = "db_file"
	KeyStaticDir   = "static_dir"
	KeyCORSOrigins = "cors_origins"
	KeyAPIURL      = "api_url"
)

// Defaults.
const (
	DefaultPort        = 5000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultCORSOrigin  = "http://localhost:3000"
	DefaultAPIURL      = "http://localhost:5000/api"
)

// EnvProduction is the environment name that enables static serving and
// hides internal error messages.
const EnvProduction = "production"

// Config is the resolved process configuration.
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	ConfigDir   string
	DataDir     string
	DBFile      string
	StaticDir   string
	CORSOrigins []string
	APIURL      string
}

// Options carries command-line overrides. Empty fields are ignored.
type Options struct {
	ConfigDir string
	DataDir   string
	APIURL    string
	// EnvFile is loaded before reading the environment. Defaults to ".env";
	// a missing file is not an error.
	EnvFile string
}

// Load resolves the configuration. Precedence for the directories is flag >
// config.yaml > environment > platform default; other keys use environment >
// config.yaml > default.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	configDir, err := paths.ResolveConfigDir(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(opts.DataDir, v.GetString(KeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	port, err := ParsePort(v.GetString(KeyPort))
	if err != nil {
		return nil, err
	}

	origins, err := ParseOrigins(v.GetStringSlice(KeyCORSOrigins))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        port,
		Environment: strings.ToLower(strings.TrimSpace(v.GetString(KeyEnvironment))),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		ConfigDir:   configDir,
		DataDir:     dataDir,
		DBFile:      v.GetString(KeyDBFile),
		StaticDir:   v.GetString(KeyStaticDir),
		CORSOrigins: origins,
		APIURL:      v.GetString(KeyAPIURL),
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyEnvironment, DefaultEnvironment)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyDBFile, types.DefaultDBFile)
	v.SetDefault(KeyCORSOrigins, []string{DefaultCORSOrigin})
	v.SetDefault(KeyAPIURL, DefaultAPIURL)

	_ = v.BindEnv(KeyPort, "PORT")
	_ = v.BindEnv(KeyEnvironment, "ENVIRONMENT", "NODE_ENV")
	_ = v.BindEnv(KeyLogLevel, "LOG_LEVEL")
	_ = v.BindEnv(KeyLogFormat, "LOG_FORMAT")
	_ = v.BindEnv(KeyStaticDir, "TIFFIN_STATIC_DIR")
	_ = v.BindEnv(KeyAPIURL, "TIFFIN_API_URL")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	return v
}

// ParsePort converts raw to a TCP port in 1-65535.
func ParsePort(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("port cannot be empty")
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': must be a number", raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port number %d is out of range: must be between 1 and 65535", port)
	}
	return port, nil
}

// ParseOrigins trims raw and drops blanks. Each origin must be "*" or
// carry an http:// or https:// scheme.
func ParseOrigins(raw []string) ([]string, error) {
	origins := make([]string, 0, len(raw))
	for _, o := range raw {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid cors origin '%s': must be * or start with http:// or https://", o)
		}
		origins = append(origins, o)
	}
	return origins, nil
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Store returns the storage configuration.
func (c *Config) Store() types.Config {
	return types.Config{Backend: types.BackendSQLite, DataDir: c.DataDir, DBFile: c.DBFile}
}

// fileConfig is the shape written to a fresh config.yaml.
type fileConfig struct {
	Port        int      `yaml:"port"`
	Environment string   `yaml:"environment"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	DataDir     string   `yaml:"data_dir,omitempty"`
	DBFile      string   `yaml:"db_file"`
	CORSOrigins []string `yaml:"cors_origins"`
	APIURL      string   `yaml:"api_url"`
}

// WriteDefault creates configDir and a config.yaml with default values when
// none exists. It returns the file path and whether it wrote the file.
func WriteDefault(configDir, dataDir string) (string, bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&fileConfig{
		Port:        DefaultPort,
		Environment: DefaultEnvironment,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		DataDir:     dataDir,
		DBFile:      types.DefaultDBFile,
		CORSOrigins: []string{DefaultCORSOrigin},
		APIURL:      DefaultAPIURL,
	})
	if err != nil {
		return "", false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}
	return path, true, nil
}
