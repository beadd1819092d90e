// Package config loads rota settings from .rota.yaml, the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/rota/pkg/live"
	"tableflip.dev/rota/pkg/remote"
)

const (
	KeyServer       = "server"
	KeyTimeout      = "timeout"
	KeyDebounce     = "debounce"
	KeyHistoryLimit = "history.limit"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"

	// PathEnv overrides the directory searched first for .rota.yaml.
	PathEnv = "ROTA_CONFIG_PATH"
)

// Config is the resolved configuration.
type Config struct {
	Server       string        `json:"server"`
	Timeout      time.Duration `json:"timeout"`
	Debounce     time.Duration `json:"debounce"`
	HistoryLimit int           `json:"historyLimit"`
	LogLevel     string        `json:"logLevel"`
	LogFile      string        `json:"logFile"`
	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

// Options tweak Load; the zero value reads from the usual places.
type Options struct {
	// EnvFile is the dotenv file to load; "" means ".env". A missing file is
	// not an error.
	EnvFile string
	// Paths are searched for .rota.yaml after $ROTA_CONFIG_PATH.
	Paths []string
}

func defaults(v *viper.Viper) {
	v.SetDefault(KeyServer, "http://localhost:8000")
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeyDebounce, live.DefaultDelay)
	v.SetDefault(KeyHistoryLimit, remote.DefaultHistoryLimit)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "~/.rota.log")
}

// Load resolves the configuration. Precedence, highest first: ROTA_*
// environment variables (including ones set by the dotenv file), the config
// file, defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading %s: %w", envFile, err)
	}

	v := viper.New()
	defaults(v)
	v.SetConfigName(".rota") // .yaml is implicit
	v.SetEnvPrefix("ROTA")
	// history.limit reads ROTA_HISTORY_LIMIT.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	paths := opts.Paths
	if paths == nil {
		paths = []string{"./"}
		if home, err := homedir.Dir(); err == nil {
			paths = append(paths, home)
		}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	logFile := v.GetString(KeyLogFile)
	if logFile != "" {
		expanded, err := homedir.Expand(logFile)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", KeyLogFile, err)
		}
		logFile = expanded
	}

	c := &Config{
		Server:       v.GetString(KeyServer),
		Timeout:      v.GetDuration(KeyTimeout),
		Debounce:     v.GetDuration(KeyDebounce),
		HistoryLimit: remote.ClampHistoryLimit(v.GetInt(KeyHistoryLimit)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFile:      logFile,
		File:         v.ConfigFileUsed(),
	}
	if c.Server == "" {
		return nil, errors.New("config: server must not be empty")
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Debounce <= 0 {
		c.Debounce = live.DefaultDelay
	}
	return c, nil
}
