package gen

import (
	"log/slog"
	"runtime"
	"slices"
)

// Config holds the global codegen configuration.
type Config struct {
	// Target is the output directory of generated files.
	Target string
	// Package is the import path of the generated package.
	Package string
	// Header is written at the top of each generated file.
	Header string
	// Dialect is the SQL dialect of the target database.
	Dialect string
	// DSN optionally holds the connection string used to cross-check flags.
	DSN string
	// Workers bounds the number of tables generated in parallel.
	Workers int
	// Properties are the raw plugin properties, e.g. "allowMultiQueries".
	Properties map[string]string
	// Features lists the enabled features. When empty, the feature defaults
	// apply.
	Features []Feature
	// StrictShowField makes selective row expansion reject unknown column
	// names instead of dropping them.
	StrictShowField bool
	// Logger receives generation logs.
	Logger *slog.Logger
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	f, ok := FeatureByName(name)
	if !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	if len(c.Features) == 0 {
		return f.Default, nil
	}
	return slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == name }), nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
