// Package dialect describes the SQL dialects the generator knows about.
//
// The statement synthesizers emit MySQL-flavored SQL (ON DUPLICATE KEY UPDATE,
// "from dual", "limit 1"). The other dialects are recognized so that loaders
// can parse their column types and so that dialect-specific synthesizers can
// disable themselves with a warning instead of emitting SQL the database
// would reject.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite3"
//
// # Identifier Delimiters
//
// Delimiters returns the begin/end identifier quotes of a dialect. Tables
// copy them into their descriptor so escaped column names can be derived
// without knowing the dialect:
//
//	begin, end := dialect.Delimiters(dialect.MySQL) // "`", "`"
//
// # Connection Strings
//
// MultiStatements reports whether a MySQL DSN enables multi-statement
// execution, which is required by the example-scoped upsert statements.
package dialect
