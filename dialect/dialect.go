package dialect

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Dialect names for external usage.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite3"
	Postgres = "postgres"
)

// Normalize maps common aliases onto the dialect constants.
// Unknown names are returned lower-cased.
func Normalize(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "mysql", "mariadb", "tidb":
		return MySQL
	case "sqlite", "sqlite3":
		return SQLite
	case "postgres", "postgresql", "pg":
		return Postgres
	default:
		return n
	}
}

// Supported reports whether the dialect is known.
func Supported(name string) bool {
	switch Normalize(name) {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Delimiters returns the identifier delimiters of the dialect.
func Delimiters(name string) (begin, end string) {
	switch Normalize(name) {
	case MySQL:
		return "`", "`"
	case SQLite, Postgres:
		return `"`, `"`
	default:
		return "", ""
	}
}

// SupportsUpsert reports whether the dialect accepts the
// "insert ... on duplicate key update" form.
func SupportsUpsert(name string) bool {
	return Normalize(name) == MySQL
}

// MultiStatements reports whether the MySQL DSN enables multi-statement
// execution (the multiStatements parameter).
func MultiStatements(dsn string) (bool, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return false, fmt.Errorf("dialect: parse mysql dsn: %w", err)
	}
	return cfg.MultiStatements, nil
}
