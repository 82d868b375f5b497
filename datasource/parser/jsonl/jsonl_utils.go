package jsonl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
	"github.com/tidwall/gjson"
)

func isNil(val gjson.Result) bool {
	return !val.Exists() || val.Type == gjson.Null
}

// isInteger is true for numbers written without a fraction or exponent which fit in an int64
func isInteger(val gjson.Result) bool {
	if val.Type != gjson.Number {
		return false
	}
	_, err := strconv.ParseInt(val.Raw, 10, 64)
	return err == nil
}

func parseValue(val gjson.Result, colType triage.ColumnType) (interface{}, error) {
	// parse type
	switch ct := colType.(type) {
	case *triage.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return nil, fmt.Errorf("not a boolean")
		}
		return val.Bool(), nil
	case *triage.Int64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("not an integer")
		}
		return strconv.ParseInt(val.Raw, 10, 64)
	case *triage.Float64ColumnType:
		if val.Type != gjson.Number {
			return nil, fmt.Errorf("not a number")
		}
		return val.Float(), nil
	case *triage.StringColumnType:
		if val.Type == gjson.String {
			return val.String(), nil
		}
		return val.Raw, nil
	case *triage.TimeColumnType:
		if val.Type != gjson.String {
			return nil, fmt.Errorf("not a string")
		}
		return time.Parse(ct.Layout(), val.String())
	default:
		return nil, fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}

// Parses the values of a JSON object into a row, according to a list of column types
func scanRow(rowNum int, names []string, colTypes []triage.ColumnType, obj gjson.Result, row []interface{}) error {
	for i, name := range names {
		val := obj.Get(name)
		if isNil(val) {
			row[i] = nil
			continue
		}
		parsed, err := parseValue(val, colTypes[i])
		if err != nil {
			return &errors.FieldParseError{
				Row:    rowNum,
				Column: name,
				Type:   colTypes[i].Name(),
				Value:  val.Raw,
				Err:    err,
			}
		}
		row[i] = parsed
	}
	return nil
}

// Picks the narrowest type which every non-nil value at a path can be parsed as.
// Mixed or nested values fall back to strings.
func inferColumnType(objects []gjson.Result, name string) triage.ColumnType {
	ints, floats, bools, others := 0, 0, 0, 0
	for _, obj := range objects {
		val := obj.Get(name)
		switch {
		case isNil(val):
		case isInteger(val):
			ints++
		case val.Type == gjson.Number:
			floats++
		case val.Type == gjson.True || val.Type == gjson.False:
			bools++
		default:
			others++
		}
	}
	switch {
	case others > 0:
		return &triage.StringColumnType{}
	case bools > 0 && ints+floats > 0:
		return &triage.StringColumnType{}
	case bools > 0:
		return &triage.BoolColumnType{}
	case floats > 0:
		return &triage.Float64ColumnType{}
	case ints > 0:
		return &triage.Int64ColumnType{}
	default:
		return &triage.StringColumnType{}
	}
}
