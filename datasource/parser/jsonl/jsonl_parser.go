package jsonl

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int                          // The number of lines to ignore from the beginning of each partition. Defaults to 0.
	MaxBufferSize int                          // Maximum size in bytes of the buffer used to read lines from the partition
	Columns       []string                     // gjson paths of the columns to extract. Defaults to the top-level keys of the first object.
	Schema        map[string]triage.ColumnType // Explicit column types by column name. Columns not present are inferred.
}

// Parser produces Tables from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed lazily from each row of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	if conf.Schema == nil {
		conf.Schema = make(map[string]triage.ColumnType)
	}
	return &Parser{conf: conf}
}

// Name returns the name of this Parser
func (p *Parser) Name() string {
	return "jsonl"
}

// Parse parses JSONL data to produce a Table
func (p *Parser) Parse(data []byte) (*triage.Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.EmptyPartitionError{}
	}
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	lineNum := 0
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines && scanner.Scan(); i++ {
		lineNum++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var objects []gjson.Result
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid JSON: %.64s", lineNum, line)
		}
		obj := gjson.Parse(line)
		if !obj.IsObject() {
			return nil, fmt.Errorf("line %d is not a JSON object: %.64s", lineNum, line)
		}
		objects = append(objects, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, errors.EmptyPartitionError{}
	}

	columns := p.conf.Columns
	if len(columns) == 0 {
		columns = topLevelKeys(objects[0])
	}
	colTypes := make([]triage.ColumnType, len(columns))
	for i, name := range columns {
		if colType, ok := p.conf.Schema[name]; ok {
			colTypes[i] = colType
		} else {
			colTypes[i] = inferColumnType(objects, name)
		}
	}

	rows := make([][]interface{}, len(objects))
	for r, obj := range objects {
		row := make([]interface{}, len(columns))
		err := scanRow(r, columns, colTypes, obj, row)
		if err != nil {
			return nil, err
		}
		rows[r] = row
	}
	return &triage.Table{Columns: columns, Types: colTypes, Rows: rows}, nil
}

// topLevelKeys returns the keys of a JSON object, escaped for use as gjson paths
func topLevelKeys(obj gjson.Result) []string {
	var keys []string
	obj.ForEach(func(key, value gjson.Result) bool {
		keys = append(keys, escapePath(key.String()))
		return true
	})
	return keys
}

func escapePath(key string) string {
	var res strings.Builder
	for _, c := range key {
		switch c {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			res.WriteRune('\\')
		}
		res.WriteRune(c)
	}
	return res.String()
}
