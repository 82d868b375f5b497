package dsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines      int                          // The number of records to ignore before the header row. Defaults to 0.
	Delimiter        rune                         // The delimiter separating columns in the file. Defaults to ,
	Comment          rune                         // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue         string                       // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
	LazyQuotes       bool                         // If true, a quote may appear in an unquoted field and a non-doubled quote may appear in a quoted field.
	TrimLeadingSpace bool                         // If true, leading white space in a field is ignored.
	NoHeader         bool                         // If true, the first record is data, and columns are named col0, col1, ...
	Schema           map[string]triage.ColumnType // Explicit column types by column name. Columns not present are inferred (or left as strings).
	InferTypes       *bool                        // If true, columns without an explicit type are inferred as int64, float64, bool or string. Defaults to true.
}

// Parser produces Tables from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	if conf.InferTypes == nil {
		infer := true
		conf.InferTypes = &infer
	}
	if conf.Schema == nil {
		conf.Schema = make(map[string]triage.ColumnType)
	}
	return &Parser{conf: conf}
}

// Name returns the name of this Parser
func (p *Parser) Name() string {
	return "dsv"
}

// Parse parses DSV data to produce a Table
func (p *Parser) Parse(data []byte) (*triage.Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.EmptyPartitionError{}
	}
	// start parsing by creating a reader
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.LazyQuotes = p.conf.LazyQuotes
	reader.TrimLeadingSpace = p.conf.TrimLeadingSpace
	// record widths are checked against the header, not against skipped lines
	reader.FieldsPerRecord = -1

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err == io.EOF {
			return nil, errors.EmptyPartitionError{}
		} else if err != nil {
			return nil, err
		}
	}

	first, err := reader.Read()
	if err == io.EOF {
		return nil, errors.EmptyPartitionError{}
	} else if err != nil {
		return nil, err
	}

	var columns []string
	var records [][]string
	if p.conf.NoHeader {
		columns = make([]string, len(first))
		for i := range first {
			columns[i] = fmt.Sprintf("col%d", i)
		}
		records = append(records, first)
	} else {
		columns = first
		if err := checkColumnNames(columns); err != nil {
			return nil, err
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(record) != len(columns) {
			line, col := reader.FieldPos(0)
			return nil, &csv.ParseError{StartLine: line, Line: line, Column: col, Err: csv.ErrFieldCount}
		}
		records = append(records, record)
	}

	colTypes := make([]triage.ColumnType, len(columns))
	for i, name := range columns {
		if colType, ok := p.conf.Schema[name]; ok {
			colTypes[i] = colType
		} else if *p.conf.InferTypes {
			colTypes[i] = inferColumnType(p.conf, records, i)
		} else {
			colTypes[i] = &triage.StringColumnType{}
		}
	}

	rows := make([][]interface{}, len(records))
	for r, record := range records {
		row := make([]interface{}, len(columns))
		err := scanRow(p.conf, r, columns, colTypes, record, row)
		if err != nil {
			return nil, err
		}
		rows[r] = row
	}
	return &triage.Table{Columns: columns, Types: colTypes, Rows: rows}, nil
}

func checkColumnNames(columns []string) error {
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if seen[name] {
			return fmt.Errorf("header contains duplicate column %#v", name)
		}
		seen[name] = true
	}
	return nil
}
