package field

import (
	"strings"
)

// A Type represents a column type.
type Type uint8

// List of column types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeJSON:    "json.RawMessage",
	TypeUUID:    "[16]byte",
	TypeBytes:   "[]byte",
	TypeEnum:    "string",
	TypeString:  "string",
	TypeOther:   "other",
	TypeInt:     "int",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint:    "uint",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeDecimal: "decimal.Decimal",
}

// String returns the Go type name of the column type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports if the given type is an integer type.
func (t Type) Integer() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t < endTypes
}

// Float reports if the given type is a float type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Accumulable reports if values of the type can be added to in SQL without
// losing precision: integer kinds and exact decimals.
func (t Type) Accumulable() bool {
	return t.Integer() || t == TypeDecimal
}

// Textual reports if the given type is bound as a string.
func (t Type) Textual() bool {
	return t == TypeString || t == TypeEnum
}

// JDBC type tags carried by bind markers.
const (
	JDBCBigInt        = "BIGINT"
	JDBCBinary        = "BINARY"
	JDBCBit           = "BIT"
	JDBCBlob          = "BLOB"
	JDBCBoolean       = "BOOLEAN"
	JDBCChar          = "CHAR"
	JDBCClob          = "CLOB"
	JDBCDate          = "DATE"
	JDBCDecimal       = "DECIMAL"
	JDBCDouble        = "DOUBLE"
	JDBCFloat         = "FLOAT"
	JDBCInteger       = "INTEGER"
	JDBCLongNVarchar  = "LONGNVARCHAR"
	JDBCLongVarBinary = "LONGVARBINARY"
	JDBCLongVarchar   = "LONGVARCHAR"
	JDBCNClob         = "NCLOB"
	JDBCNumeric       = "NUMERIC"
	JDBCOther         = "OTHER"
	JDBCReal          = "REAL"
	JDBCSmallInt      = "SMALLINT"
	JDBCTime          = "TIME"
	JDBCTimestamp     = "TIMESTAMP"
	JDBCTinyInt       = "TINYINT"
	JDBCVarBinary     = "VARBINARY"
	JDBCVarchar       = "VARCHAR"
)

var blobJDBC = map[string]struct{}{
	JDBCBinary:        {},
	JDBCBlob:          {},
	JDBCClob:          {},
	JDBCLongNVarchar:  {},
	JDBCLongVarBinary: {},
	JDBCLongVarchar:   {},
	JDBCNClob:         {},
	JDBCVarBinary:     {},
}

// IsBLOBJDBC reports whether the JDBC type tag denotes a large object.
func IsBLOBJDBC(jdbc string) bool {
	_, ok := blobJDBC[strings.ToUpper(jdbc)]
	return ok
}

// TypeInfo holds the information of a column type.
type TypeInfo struct {
	Type    Type
	Ident   string // Go identifier, when it differs from Type.String().
	PkgPath string // Import path of the Go type, if any.
	JDBC    string // JDBC type tag.
	Raw     string // Raw database type, as parsed.
}

// String returns the Go type of the column.
func (t TypeInfo) String() string {
	if t.Ident != "" {
		return t.Ident
	}
	return t.Type.String()
}

// Valid reports if the type info is valid.
func (t TypeInfo) Valid() bool {
	return t.Type.Valid()
}

// Numeric reports if the column type is numeric.
func (t TypeInfo) Numeric() bool {
	return t.Type.Numeric()
}

// JDBCType returns the JDBC tag of the column, falling back to the tag
// implied by the Go type when none was recorded.
func (t TypeInfo) JDBCType() string {
	if t.JDBC != "" {
		return strings.ToUpper(t.JDBC)
	}
	return DefaultJDBC(t.Type)
}

// BLOB reports whether the column holds a large object.
func (t TypeInfo) BLOB() bool {
	return IsBLOBJDBC(t.JDBCType())
}

// DefaultJDBC returns the JDBC tag a column of the given type binds with
// when nothing more specific is known.
func DefaultJDBC(t Type) string {
	switch t {
	case TypeBool:
		return JDBCBit
	case TypeTime:
		return JDBCTimestamp
	case TypeJSON:
		return JDBCLongVarchar
	case TypeBytes:
		return JDBCLongVarBinary
	case TypeEnum, TypeUUID:
		return JDBCChar
	case TypeString:
		return JDBCVarchar
	case TypeInt8, TypeUint8:
		return JDBCTinyInt
	case TypeInt16, TypeUint16:
		return JDBCSmallInt
	case TypeInt32, TypeInt, TypeUint32:
		return JDBCInteger
	case TypeInt64, TypeUint, TypeUint64:
		return JDBCBigInt
	case TypeFloat32:
		return JDBCReal
	case TypeFloat64:
		return JDBCDouble
	case TypeDecimal:
		return JDBCDecimal
	default:
		return JDBCOther
	}
}

// DecimalPkg is the import path of the decimal type used for DECIMAL columns.
const DecimalPkg = "github.com/shopspring/decimal"

// NewTypeInfo returns the TypeInfo of the given type with its default JDBC
// tag and Go identifier.
func NewTypeInfo(t Type) *TypeInfo {
	info := &TypeInfo{Type: t, JDBC: DefaultJDBC(t)}
	switch t {
	case TypeDecimal:
		info.Ident, info.PkgPath = "decimal.Decimal", DecimalPkg
	case TypeTime:
		info.PkgPath = "time"
	case TypeJSON:
		info.PkgPath = "encoding/json"
	}
	return info
}
