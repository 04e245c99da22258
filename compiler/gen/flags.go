package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/mapperkit/dialect"
)

// Property names of the run-wide flags.
const (
	PropUseGeneratedKeys  = "useGeneratedKeys"
	PropAllowMultiQueries = "allowMultiQueries"
)

// Flags is the run-wide configuration shared by all synthesizers. It is
// produced once by ValidateFlags and passed by value.
type Flags struct {
	// UseGeneratedKeys adds generated-key attributes to insert statements.
	UseGeneratedKeys bool
	// AllowMultiQueries enables statements made of several SQL statements
	// separated by ";".
	AllowMultiQueries bool
}

// ParseFlags reads the flags from raw properties. A missing property is
// false. A malformed one is false and yields a warning.
func ParseFlags(props map[string]string) (Flags, []string) {
	var warnings []string
	parse := func(key string) bool {
		raw, ok := props[key]
		if !ok || strings.TrimSpace(raw) == "" {
			return false
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("property %s: %q is not a boolean, using false", key, raw))
			return false
		}
		return v
	}
	return Flags{
		UseGeneratedKeys:  parse(PropUseGeneratedKeys),
		AllowMultiQueries: parse(PropAllowMultiQueries),
	}, warnings
}

// ValidateFlags parses the configured properties and cross-checks them
// against the connection string. When a MySQL DSN is configured and does not
// enable multi statements, AllowMultiQueries is forced off with a warning.
func ValidateFlags(c *Config) (Flags, []string) {
	flags, warnings := ParseFlags(c.Properties)
	if flags.AllowMultiQueries && c.DSN != "" && dialect.Normalize(c.Dialect) == dialect.MySQL {
		on, err := dialect.MultiStatements(c.DSN)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("property %s: cannot verify dsn (%v), using false", PropAllowMultiQueries, err))
			flags.AllowMultiQueries = false
		case !on:
			warnings = append(warnings, fmt.Sprintf("property %s: dsn does not set multiStatements=true, using false", PropAllowMultiQueries))
			flags.AllowMultiQueries = false
		}
	}
	return flags, warnings
}
