// Package config loads run settings from defaults, an optional YAML file,
// POKEDATA_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/BielosX/wombat/poke-data/src/images"
	"github.com/BielosX/wombat/poke-data/src/pokeapi"
	"github.com/BielosX/wombat/poke-data/src/pokemon"
)

const (
	EnvPrefix = "POKEDATA"
	FileName  = "poke-data"

	DefaultDataDir = "src/data/pokemon"
	DefaultDelay   = 600 * time.Millisecond
)

type API struct {
	BaseUrl string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Delay   time.Duration `mapstructure:"delay"`
}

type Sprites struct {
	BaseUrl string `mapstructure:"base_url"`
}

type Data struct {
	Dir       string `mapstructure:"dir"`
	PublicDir string `mapstructure:"public_dir"`
}

type Index struct {
	VarietyThreshold int `mapstructure:"variety_threshold"`
}

type Transform struct {
	MaxMoves       int                           `mapstructure:"max_moves"`
	MaxFlavorTexts int                           `mapstructure:"max_flavor_texts"`
	Palettes       map[string]pokemon.TypeColors `mapstructure:"palettes"`
}

// Cache configures the response cache. An empty Dir keeps it in memory only.
type Cache struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
	Dir  string        `mapstructure:"dir"`
}

type S3 struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	API       API       `mapstructure:"api"`
	Sprites   Sprites   `mapstructure:"sprites"`
	Data      Data      `mapstructure:"data"`
	Index     Index     `mapstructure:"index"`
	Transform Transform `mapstructure:"transform"`
	Cache     Cache     `mapstructure:"cache"`
	S3        S3        `mapstructure:"s3"`
	Log       Log       `mapstructure:"log"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", pokeapi.DefaultBaseUrl)
	v.SetDefault("api.timeout", pokeapi.DefaultTimeout)
	v.SetDefault("api.delay", DefaultDelay)
	v.SetDefault("sprites.base_url", pokemon.DefaultSpriteBaseUrl)
	v.SetDefault("data.dir", DefaultDataDir)
	v.SetDefault("data.public_dir", images.DefaultPublicDir)
	v.SetDefault("index.variety_threshold", pokemon.DefaultVarietyThreshold)
	v.SetDefault("transform.max_moves", pokemon.DefaultMaxMoves)
	v.SetDefault("transform.max_flavor_texts", pokemon.DefaultMaxFlavorTexts)
	v.SetDefault("transform.palettes", map[string]any{})
	v.SetDefault("cache.size", 2000)
	v.SetDefault("cache.ttl", 2*time.Hour)
	v.SetDefault("cache.dir", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads configFile, or poke-data.yaml from the working directory when
// configFile is empty. Only an explicitly named file has to exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := url.ParseRequestURI(c.API.BaseUrl); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url %q is not a valid url", c.API.BaseUrl))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be greater than 0"))
	}
	if c.API.Delay < 0 {
		errs = append(errs, errors.New("api.delay can't be negative"))
	}
	if _, err := url.ParseRequestURI(c.Sprites.BaseUrl); err != nil {
		errs = append(errs, fmt.Errorf("sprites.base_url %q is not a valid url", c.Sprites.BaseUrl))
	}
	if c.Data.Dir == "" {
		errs = append(errs, errors.New("data.dir can't be empty"))
	}
	if c.Data.PublicDir == "" {
		errs = append(errs, errors.New("data.public_dir can't be empty"))
	}
	if c.Index.VarietyThreshold <= 0 {
		errs = append(errs, errors.New("index.variety_threshold must be greater than 0"))
	}
	if c.Transform.MaxMoves <= 0 {
		errs = append(errs, errors.New("transform.max_moves must be greater than 0"))
	}
	if c.Transform.MaxFlavorTexts <= 0 {
		errs = append(errs, errors.New("transform.max_flavor_texts must be greater than 0"))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("cache.size must be greater than 0"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be greater than 0"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Tables returns the built-in lookup tables with the configured threshold
// and palette overrides applied.
func (c *Config) Tables() (pokemon.Tables, error) {
	tables := pokemon.DefaultTables()
	tables.VarietyThreshold = c.Index.VarietyThreshold
	if len(c.Transform.Palettes) == 0 {
		return tables, nil
	}
	overrides := make(map[string]pokemon.TypeColors, len(c.Transform.Palettes))
	for name, colors := range c.Transform.Palettes {
		overrides[typeName(name)] = colors
	}
	return tables.WithPalettes(overrides)
}

// typeName restores the capitalization viper drops from map keys.
func typeName(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + strings.ToLower(key[1:])
}
