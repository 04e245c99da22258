package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/load"
	"github.com/syssam/mapperkit/dialect"
)

// EnvPrefix prefixes the environment variables overriding config keys, e.g.
// MAPPERKIT_TARGET or MAPPERKIT_DSN.
const EnvPrefix = "MAPPERKIT"

// Config is the mapperkit.yaml configuration file.
type Config struct {
	Target          string            `mapstructure:"target"`
	Package         string            `mapstructure:"package"`
	ModelPackage    string            `mapstructure:"modelPackage"`
	Header          string            `mapstructure:"header"`
	Dialect         string            `mapstructure:"dialect"`
	DSN             string            `mapstructure:"dsn"`
	Workers         int               `mapstructure:"workers"`
	Delimited       bool              `mapstructure:"delimited"`
	StrictShowField bool              `mapstructure:"strictShowField"`
	Tables          []string          `mapstructure:"tables"`
	Features        []string          `mapstructure:"features"`
	Properties      map[string]string `mapstructure:"properties"`
}

// LoadConfig reads the configuration file at path. A missing file is only an
// error when required is set. Every key may also be set from the environment.
func LoadConfig(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("target", ".")
	v.SetDefault("package", "mapper")
	v.SetDefault("modelPackage", "")
	v.SetDefault("header", "")
	v.SetDefault("dialect", dialect.MySQL)
	v.SetDefault("dsn", "")
	v.SetDefault("workers", 0)
	v.SetDefault("delimited", false)
	v.SetDefault("strictShowField", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if required || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// properties returns the raw plugin properties with their names restored to
// the spelling the generator expects. Config keys are case-insensitive.
func (c *Config) properties() map[string]string {
	props := make(map[string]string, len(c.Properties))
	for k, v := range c.Properties {
		for _, known := range []string{gen.PropUseGeneratedKeys, gen.PropAllowMultiQueries} {
			if strings.EqualFold(k, known) {
				k = known
			}
		}
		props[k] = v
	}
	return props
}

// Options returns the generator options of the configuration.
func (c *Config) Options(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(c.Target),
		gen.WithPackage(c.Package),
		gen.WithDialect(c.Dialect),
		gen.WithWorkers(c.Workers),
		gen.WithProperties(c.properties()),
		gen.WithFeatureNames(c.Features...),
		gen.WithLogger(logger),
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.DSN != "" {
		opts = append(opts, gen.WithDSN(c.DSN))
	}
	if c.StrictShowField {
		opts = append(opts, gen.WithStrictShowField())
	}
	return opts
}

// Loader returns the table loader of the configuration.
func (c *Config) Loader(logger *slog.Logger) *load.Loader {
	opts := []load.Option{
		load.WithDialect(c.Dialect),
		load.WithPackage(c.ModelPackage),
		load.WithLogger(logger),
	}
	if c.Delimited {
		opts = append(opts, load.WithDelimited())
	}
	return load.New(opts...)
}
