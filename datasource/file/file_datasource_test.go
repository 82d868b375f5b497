package file

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/logging"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, contents := range files {
		require.Nil(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}
	return dir
}

func drain(t *testing.T, source triage.DataSource) ([]triage.RawPartition, int) {
	pm, err := source.Analyze()
	require.Nil(t, err)
	var parts []triage.RawPartition
	loaders := 0
	for pm.HasNext() {
		loaders++
		pi, err := pm.Next().Load()
		require.Nil(t, err)
		for pi.HasNextPartition() {
			part, err := pi.NextPartition()
			require.Nil(t, err)
			parts = append(parts, part)
		}
	}
	return parts, loaders
}

func TestFileDataSourceWholeFiles(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"a.csv": "a,b\n1,2\n",
		"b.csv": "",
		"c.txt": "ignored",
	})
	parts, loaders := drain(t, CreateSource(&SourceConf{
		Glob:   filepath.Join(dir, "*.csv"),
		Logger: logging.Discard(),
	}))
	require.Equal(t, 2, loaders)
	require.Len(t, parts, 2)
	require.Equal(t, filepath.Join(dir, "a.csv"), parts[0].Source)
	require.Equal(t, []byte("a,b\n1,2\n"), parts[0].Data)
	require.Equal(t, filepath.Join(dir, "b.csv"), parts[1].Source)
	require.Equal(t, 0, parts[1].Size())
}

func TestFileDataSourceDelimited(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"1.txt": "a,b\n1,2---a,b\n3,4---",
		"2.txt": "x---y",
	})
	parts, loaders := drain(t, CreateSource(&SourceConf{
		Glob:              filepath.Join(dir, "*.txt"),
		LineDelimiter:     "---",
		FilesPerPartition: 2,
		Logger:            logging.Discard(),
	}))
	require.Equal(t, 1, loaders)
	require.Len(t, parts, 4)
	require.Equal(t, "a,b\n1,2", string(parts[0].Data))
	require.Equal(t, "a,b\n3,4", string(parts[1].Data))
	require.Equal(t, 1, parts[1].Index)
	require.Equal(t, "x", string(parts[2].Data))
	require.Equal(t, 0, parts[2].Index)
	require.Equal(t, "y", string(parts[3].Data))
}

func TestFileDataSourceNoMatches(t *testing.T) {
	_, err := CreateSource(&SourceConf{Glob: filepath.Join(t.TempDir(), "*.csv")}).Analyze()
	require.NotNil(t, err)
}

func TestFileDataSourceOnEnd(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"a.csv": "1"})
	pm, err := CreateSource(&SourceConf{Glob: filepath.Join(dir, "*"), Logger: logging.Discard()}).Analyze()
	require.Nil(t, err)
	pi, err := pm.Next().Load()
	require.Nil(t, err)
	ended := 0
	pi.OnEnd(func() { ended++ })
	for pi.HasNextPartition() {
		_, err := pi.NextPartition()
		require.Nil(t, err)
	}
	require.Equal(t, 1, ended)
}

func TestSplitOnDelimiter(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("a<|>b<|><|>c"))
	scanner.Split(SplitOnDelimiter([]byte("<|>")))
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	require.Nil(t, scanner.Err())
	require.Equal(t, []string{"a", "b", "", "c"}, tokens)

	scanner = bufio.NewScanner(strings.NewReader("no delimiter here\n"))
	scanner.Split(SplitOnDelimiter(nil))
	require.True(t, scanner.Scan())
	require.Equal(t, "no delimiter here\n", scanner.Text())
	require.False(t, scanner.Scan())
}

func TestFileDataSourceMaxPartitionSize(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"a.txt": "short\n" + strings.Repeat("x", 100) + "\n",
	})
	source := CreateSource(&SourceConf{
		Glob:             filepath.Join(dir, "*.txt"),
		LineDelimiter:    "\n",
		MaxPartitionSize: 16,
		Logger:           logging.Discard(),
	})
	pm, err := source.Analyze()
	require.Nil(t, err)
	pi, err := pm.Next().Load()
	require.Nil(t, err)
	part, err := pi.NextPartition()
	require.Nil(t, err)
	require.Equal(t, []byte("short"), part.Data)
	require.True(t, pi.HasNextPartition())
	_, err = pi.NextPartition()
	require.ErrorIs(t, err, bufio.ErrTooLong)
	require.False(t, pi.HasNextPartition())
}
