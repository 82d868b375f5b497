package triage

import (
	"fmt"
	"strconv"
	"time"
)

// ColumnType describes the type of the values stored in a column of a Table.
// Triage provides a handful of built-in types, which parsers use when coercing
// raw text into values.
type ColumnType interface {
	Name() string                  // returns a short name for this type, e.g. "int64"
	ToString(v interface{}) string // produces a string representation of a value of this type
}

// Int64ColumnType is a column type which stores an int64
type Int64ColumnType struct{}

// Name returns the name of this ColumnType
func (b *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return strconv.FormatInt(v.(int64), 10)
}

// Float64ColumnType is a column type which stores a float64
type Float64ColumnType struct{}

// Name returns the name of this ColumnType
func (b *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return strconv.FormatFloat(v.(float64), 'g', -1, 64)
}

// BoolColumnType is a column type which stores a boolean
type BoolColumnType struct{}

// Name returns the name of this ColumnType
func (b *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return strconv.FormatBool(v.(bool))
}

// StringColumnType is a column type which stores a string
type StringColumnType struct{}

// Name returns the name of this ColumnType
func (b *StringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return v.(string)
}

// TimeColumnType is a column type which stores a time.Time, parsed using Format
type TimeColumnType struct {
	Format string // a time.Parse layout. Defaults to time.RFC3339
}

// Name returns the name of this ColumnType
func (b *TimeColumnType) Name() string {
	return "time"
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return v.(time.Time).Format(b.Layout())
}

// Layout returns the time.Parse layout used by this column type
func (b *TimeColumnType) Layout() string {
	if len(b.Format) == 0 {
		return time.RFC3339
	}
	return b.Format
}

// FormatValue renders a single Table value using its ColumnType, or "null" for nil values
func FormatValue(colType ColumnType, v interface{}) string {
	if v == nil {
		return "null"
	}
	if colType == nil {
		return fmt.Sprintf("%v", v)
	}
	return colType.ToString(v)
}
