package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
)

func isNil(conf *ParserConf, colVal string) bool {
	return len(colVal) == 0 || colVal == conf.NilValue
}

// Parses a slice of strings into a row of values, according to a list of column types
func scanRow(conf *ParserConf, rowNum int, names []string, colTypes []triage.ColumnType, rowStrings []string, row []interface{}) error {
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if isNil(conf, colVal) {
			row[i] = nil
			continue
		}
		val, err := scanValue(colTypes[i], colVal)
		if err != nil {
			return &errors.FieldParseError{
				Row:    rowNum,
				Column: names[i],
				Type:   colTypes[i].Name(),
				Value:  colVal,
				Err:    err,
			}
		}
		row[i] = val
	}
	return nil
}

// Parses a single string according to a column type
func scanValue(colType triage.ColumnType, colVal string) (interface{}, error) {
	switch ct := colType.(type) {
	case *triage.BoolColumnType:
		return strconv.ParseBool(colVal)
	case *triage.Int64ColumnType:
		return strconv.ParseInt(colVal, 10, 64)
	case *triage.Float64ColumnType:
		return strconv.ParseFloat(colVal, 64)
	case *triage.StringColumnType:
		return colVal, nil
	case *triage.TimeColumnType:
		return time.Parse(ct.Layout(), colVal)
	default:
		return nil, fmt.Errorf("DSV parsing does not support column type %T", colType)
	}
}

// Picks the narrowest type which every non-nil value in a column can be parsed as.
// Columns containing only nils are strings.
func inferColumnType(conf *ParserConf, records [][]string, col int) triage.ColumnType {
	hasValue := false
	for _, record := range records {
		if col < len(record) && !isNil(conf, record[col]) {
			hasValue = true
			break
		}
	}
	if !hasValue {
		return &triage.StringColumnType{}
	}
	candidates := []triage.ColumnType{
		&triage.Int64ColumnType{},
		&triage.Float64ColumnType{},
		&triage.BoolColumnType{},
	}
	for _, candidate := range candidates {
		fits := true
		for _, record := range records {
			if col >= len(record) || isNil(conf, record[col]) {
				continue
			}
			if _, err := scanValue(candidate, record[col]); err != nil {
				fits = false
				break
			}
		}
		if fits {
			return candidate
		}
	}
	return &triage.StringColumnType{}
}
