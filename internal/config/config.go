package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Adda-Baaj/news-signature/internal/stemmer"
)

// EnvPrefix namespaces environment overrides, e.g. SIGNATURE_LOG_LEVEL.
const EnvPrefix = "SIGNATURE"

// Config is the runtime configuration of the signature CLI.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Input      InputConfig      `mapstructure:"input"`
	Publishers PublishersConfig `mapstructure:"publishers"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig tunes signature extraction.
type ExtractConfig struct {
	Workers int    `mapstructure:"workers"`
	Stemmer string `mapstructure:"stemmer"`
}

// InputConfig points at the article documents to process. "-" reads stdin.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// PublishersConfig points at the optional publisher registry file.
type PublishersConfig struct {
	File string `mapstructure:"file"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("extract.workers", 10)
	v.SetDefault("extract.stemmer", stemmer.AlgorithmSnowball)
	v.SetDefault("input.path", "-")
	v.SetDefault("publishers.file", "")
}

// RegisterFlags declares the command-line flags that can override configuration.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("input", "", "article documents file (YAML or JSON, - for stdin)")
	fs.String("publishers", "", "publisher registry file (YAML or JSON)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Int("workers", 0, "number of extraction workers")
	fs.String("stemmer", "", "stemming algorithm (snowball, porter2)")
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"input":      "input.path",
	"publishers": "publishers.file",
	"log-level":  "log.level",
	"workers":    "extract.workers",
	"stemmer":    "extract.stemmer",
}

// Load resolves configuration from defaults, an optional .env file, the config file,
// SIGNATURE_* environment variables and explicitly set flags, in increasing priority.
func Load(fs *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	path := os.Getenv(EnvPrefix + "_CONFIG")
	if fs != nil {
		if p, err := fs.GetString("config"); err == nil && p != "" {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.sanitize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) sanitize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Extract.Stemmer = strings.ToLower(strings.TrimSpace(c.Extract.Stemmer))
	c.Input.Path = strings.TrimSpace(c.Input.Path)
	c.Publishers.File = strings.TrimSpace(c.Publishers.File)
}

// Validate checks that required fields hold usable values.
func (c Config) Validate() error {
	if c.Extract.Workers <= 0 {
		return fmt.Errorf("extract.workers must be positive, got %d", c.Extract.Workers)
	}
	if _, err := stemmer.New(c.Extract.Stemmer); err != nil {
		return fmt.Errorf("extract.stemmer: %w", err)
	}
	if c.Input.Path == "" {
		return errors.New("input.path is required")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is not supported", c.Log.Format)
	}
	return nil
}
