package dsv

import (
	"encoding/csv"
	goerrors "errors"
	"testing"
	"time"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
	"github.com/stretchr/testify/require"
)

func TestDSVParserWellFormed(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	table, err := parser.Parse([]byte("a,b\n1,2\n3,4"))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, table.Columns)
	require.Equal(t, 2, table.NumRows())
	require.Equal(t, 2, table.NumColumns())
	require.Equal(t, [][]interface{}{{int64(1), int64(2)}, {int64(3), int64(4)}}, table.Rows)
	require.IsType(t, &triage.Int64ColumnType{}, table.Types[0])
}

func TestDSVParserFieldCountMismatch(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse([]byte("not,a,valid\ncsv{{{"))
	require.NotNil(t, err)
	require.True(t, goerrors.Is(err, csv.ErrFieldCount))
}

func TestDSVParserEmpty(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	for _, input := range []string{"", "\n\n", "   "} {
		_, err := parser.Parse([]byte(input))
		require.IsType(t, errors.EmptyPartitionError{}, err)
	}
}

func TestDSVParserHeaderOnly(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	table, err := parser.Parse([]byte("a,b\n"))
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b"}, table.Columns)
	require.Equal(t, 0, table.NumRows())
}

func TestDSVParserInference(t *testing.T) {
	parser := CreateParser(&ParserConf{NilValue: "null"})
	table, err := parser.Parse([]byte("i,f,b,s,n\n1,1.5,true,x,null\n2,,false,y,\n"))
	require.Nil(t, err)
	require.IsType(t, &triage.Int64ColumnType{}, table.Types[0])
	require.IsType(t, &triage.Float64ColumnType{}, table.Types[1])
	require.IsType(t, &triage.BoolColumnType{}, table.Types[2])
	require.IsType(t, &triage.StringColumnType{}, table.Types[3])
	require.IsType(t, &triage.StringColumnType{}, table.Types[4])
	require.Equal(t, []interface{}{int64(2), nil, false, "y", nil}, table.Rows[1])
}

func TestDSVParserDisableInference(t *testing.T) {
	infer := false
	parser := CreateParser(&ParserConf{InferTypes: &infer})
	table, err := parser.Parse([]byte("a\n1\n"))
	require.Nil(t, err)
	require.Equal(t, "1", table.Rows[0][0])
}

func TestDSVParserSchema(t *testing.T) {
	parser := CreateParser(&ParserConf{
		Delimiter: '\t',
		Schema: map[string]triage.ColumnType{
			"when":  &triage.TimeColumnType{Format: "2006-01-02"},
			"count": &triage.Float64ColumnType{},
		},
	})
	table, err := parser.Parse([]byte("when\tcount\n2021-04-05\t3\n"))
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 4, 5, 0, 0, 0, 0, time.UTC), table.Rows[0][0])
	require.Equal(t, float64(3), table.Rows[0][1])

	_, err = parser.Parse([]byte("when\tcount\nyesterday\t3\n"))
	var fieldErr *errors.FieldParseError
	require.True(t, goerrors.As(err, &fieldErr))
	require.Equal(t, "when", fieldErr.Column)
	require.Equal(t, 0, fieldErr.Row)
}

func TestDSVParserHeaderLinesAndComments(t *testing.T) {
	parser := CreateParser(&ParserConf{HeaderLines: 1, Comment: '#'})
	table, err := parser.Parse([]byte("generated by a tool\n# a comment\nk,v\na,1\n"))
	require.Nil(t, err)
	require.Equal(t, []string{"k", "v"}, table.Columns)
	require.Equal(t, 1, table.NumRows())
}

func TestDSVParserNoHeader(t *testing.T) {
	parser := CreateParser(&ParserConf{NoHeader: true})
	table, err := parser.Parse([]byte("1,2\n3,4\n"))
	require.Nil(t, err)
	require.Equal(t, []string{"col0", "col1"}, table.Columns)
	require.Equal(t, 2, table.NumRows())
}

func TestDSVParserDuplicateColumns(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse([]byte("a,a\n1,2\n"))
	require.NotNil(t, err)
}

func TestDSVParserBadQuotes(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse([]byte("a,b\n\"1,2\n"))
	require.NotNil(t, err)

	lazy := CreateParser(&ParserConf{LazyQuotes: true})
	_, err = lazy.Parse([]byte("a,b\n1\",2\n"))
	require.Nil(t, err)
}
