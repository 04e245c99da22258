package field

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/mapperkit/dialect"
)

// ParseType parses a raw column type of the given dialect (for example
// "bigint unsigned" or "decimal(10,2)") into a TypeInfo.
func ParseType(name, raw string) (*TypeInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("field: empty column type")
	}
	var (
		t   schema.Type
		err error
		d   = dialect.Normalize(name)
	)
	switch d {
	case dialect.MySQL:
		t, err = mysql.ParseType(raw)
	case dialect.Postgres:
		t, err = postgres.ParseType(raw)
	case dialect.SQLite:
		t, err = sqlite.ParseType(raw)
	default:
		return nil, fmt.Errorf("field: unsupported dialect %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("field: parse %s type %q: %w", d, raw, err)
	}
	info := fromAtlas(d, t)
	info.Raw = raw
	return info, nil
}

// MustParseType is like ParseType but panics on error.
func MustParseType(name, raw string) *TypeInfo {
	info, err := ParseType(name, raw)
	if err != nil {
		panic(err)
	}
	return info
}

func fromAtlas(d string, t schema.Type) *TypeInfo {
	switch t := t.(type) {
	case *schema.BoolType:
		info := NewTypeInfo(TypeBool)
		if d != dialect.MySQL {
			info.JDBC = JDBCBoolean
		}
		return info
	case *mysql.BitType:
		return NewTypeInfo(TypeBool)
	case *schema.IntegerType:
		return integerInfo(d, strings.ToLower(t.T), t.Unsigned)
	case *schema.DecimalType:
		info := NewTypeInfo(TypeDecimal)
		if strings.EqualFold(t.T, "numeric") {
			info.JDBC = JDBCNumeric
		}
		return info
	case *schema.FloatType:
		switch strings.ToLower(t.T) {
		case "double", "double precision", "float8":
			return NewTypeInfo(TypeFloat64)
		case "float", "real", "float4":
			if t.Precision > 24 {
				return NewTypeInfo(TypeFloat64)
			}
			return NewTypeInfo(TypeFloat32)
		default:
			return NewTypeInfo(TypeFloat64)
		}
	case *schema.StringType:
		info := NewTypeInfo(TypeString)
		switch tt := strings.ToLower(t.T); {
		case tt == "char" || tt == "character" || tt == "nchar":
			info.JDBC = JDBCChar
		case strings.HasSuffix(tt, "text") && d == dialect.MySQL && tt != "tinytext":
			info.JDBC = JDBCLongVarchar
		case tt == "clob":
			info.JDBC = JDBCClob
		}
		return info
	case *schema.BinaryType:
		info := NewTypeInfo(TypeBytes)
		switch tt := strings.ToLower(t.T); {
		case tt == "binary" || tt == "bytea":
			info.JDBC = JDBCBinary
		case tt == "varbinary":
			info.JDBC = JDBCVarBinary
		case tt == "blob" && d == dialect.SQLite:
			info.JDBC = JDBCBlob
		}
		return info
	case *schema.TimeType:
		info := NewTypeInfo(TypeTime)
		switch tt := strings.ToLower(t.T); {
		case tt == "date" || tt == "year":
			info.JDBC = JDBCDate
		case strings.HasPrefix(tt, "time") && !strings.HasPrefix(tt, "timestamp"):
			info.JDBC = JDBCTime
		}
		return info
	case *schema.JSONType:
		info := NewTypeInfo(TypeJSON)
		if d == dialect.Postgres {
			info.JDBC = JDBCOther
		}
		return info
	case *schema.EnumType:
		return NewTypeInfo(TypeEnum)
	case *schema.UUIDType:
		info := NewTypeInfo(TypeUUID)
		info.Ident, info.PkgPath, info.JDBC = "uuid.UUID", "github.com/google/uuid", JDBCOther
		return info
	default:
		return NewTypeInfo(TypeOther)
	}
}

func integerInfo(d, name string, unsigned bool) *TypeInfo {
	var signed, usigned Type
	switch name {
	case "tinyint", "int1":
		signed, usigned = TypeInt8, TypeUint8
	case "smallint", "int2", "smallserial":
		signed, usigned = TypeInt16, TypeUint16
	case "mediumint", "int", "integer", "int4", "serial":
		signed, usigned = TypeInt32, TypeUint32
	default:
		signed, usigned = TypeInt64, TypeUint64
	}
	if unsigned {
		return NewTypeInfo(usigned)
	}
	info := NewTypeInfo(signed)
	if d == dialect.SQLite && signed == TypeInt32 {
		// SQLite integers are 64 bits wide.
		info.Type = TypeInt64
	}
	return info
}
