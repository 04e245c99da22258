package gen

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/syssam/mapperkit/dialect"
)

// Option sets one field of a Config, rejecting invalid values with a
// ConfigError.
type Option func(*Config) error

// WithHeader sets a comment written below the generated-code banner of every
// Go file. Empty clears it.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the package of the generated Go files. The last path
// element is used as the package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the directory generated files are written to.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithDialect selects the SQL dialect. Aliases such as "postgresql" or
// "sqlite" are accepted.
func WithDialect(name string) Option {
	return func(c *Config) error {
		if !dialect.Supported(name) {
			return NewConfigError("Dialect", name, "unsupported dialect; use mysql, postgres, or sqlite3")
		}
		c.Dialect = dialect.Normalize(name)
		return nil
	}
}

// WithDSN sets the connection string used to cross-check the flags.
func WithDSN(dsn string) Option {
	return func(c *Config) error {
		c.DSN = dsn
		return nil
	}
}

// WithWorkers sets the number of tables generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithProperty sets one raw property, e.g. PropAllowMultiQueries.
func WithProperty(key, value string) Option {
	return func(c *Config) error {
		if key == "" {
			return NewConfigError("Property", value, "property name cannot be empty")
		}
		if c.Properties == nil {
			c.Properties = make(map[string]string)
		}
		c.Properties[key] = value
		return nil
	}
}

// WithProperties merges props into the raw properties.
func WithProperties(props map[string]string) Option {
	return func(c *Config) error {
		if c.Properties == nil {
			c.Properties = make(map[string]string)
		}
		maps.Copy(c.Properties, props)
		return nil
	}
}

// WithFeatures enables optional synthesizers.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames is WithFeatures with names as they appear in
// configuration files.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithStrictShowField makes selective row expansion reject unknown names.
func WithStrictShowField() Option {
	return func(c *Config) error {
		c.StrictShowField = true
		return nil
	}
}

// WithLogger sets the logger. Runs log through slog.Default otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply runs every option, including those after a failing one, and
// returns their errors joined.
func (c *Config) Apply(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig returns a MySQL configuration with opts applied. All rejected
// options are reported at once.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{Dialect: dialect.MySQL}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
