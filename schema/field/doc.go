// Package field describes column types as seen by the generator.
//
// A column type has two faces: the host (Go) type that generated method
// signatures use, and the JDBC type tag that generated bind markers carry
// (#{name,jdbcType=VARCHAR}). TypeInfo holds both.
//
// # Field Types
//
//	field.TypeInt64    // bigint
//	field.TypeDecimal  // decimal(10,2), numeric
//	field.TypeString   // varchar, char, text
//	field.TypeBytes    // blob, varbinary
//	field.TypeTime     // date, datetime, timestamp
//
// # Parsing
//
// ParseType converts a raw database column type into a TypeInfo using the
// atlas type parsers of the given dialect:
//
//	info, err := field.ParseType(dialect.MySQL, "bigint unsigned")
//	// info.Type == field.TypeUint64, info.JDBC == "BIGINT"
//
// # Large Objects
//
// Columns whose JDBC type is one of BINARY, BLOB, CLOB, LONGNVARCHAR,
// LONGVARBINARY, LONGVARCHAR, NCLOB or VARBINARY are BLOB columns. Tables
// keep them apart from the base columns and the synthesizers emit separate
// "WithBLOBs" statements for them.
package field
