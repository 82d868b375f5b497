package quarantine

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/classify"
	"github.com/go-sif/triage/datasource/parser/dsv"
	"github.com/go-sif/triage/errors"
	"github.com/go-sif/triage/logging"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
)

func testClock() func() time.Time {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func openTestStore(t *testing.T) *Store {
	store, err := Open(filepath.Join(t.TempDir(), "quarantine"), &StoreOptions{Logger: logging.Discard(), Clock: testClock()})
	require.Nil(t, err)
	return store
}

func failure(idx int, data string) triage.Result {
	return classify.Classify(dsv.CreateParser(&dsv.ParserConf{}), triage.RawPartition{Source: "test", Index: idx, Data: []byte(data)})
}

func TestPutAndGet(t *testing.T) {
	store := openTestStore(t)
	input := "not,a,valid\ncsv{{{"
	res := failure(7, input)
	require.True(t, res.IsFailure())

	rec, err := store.Put(res)
	require.Nil(t, err)
	require.Equal(t, "test", rec.Source)
	require.Equal(t, 7, rec.Index)
	require.Equal(t, len(input), rec.Size)
	require.Equal(t, res.Err().Error(), rec.Error)

	got, data, err := store.Get(rec.ID)
	require.Nil(t, err)
	require.Equal(t, rec, got)
	require.Equal(t, []byte(input), data)
	require.Equal(t, "test#7", got.Partition().ID())
}

func TestPutEmptyPartition(t *testing.T) {
	store := openTestStore(t)
	rec, err := store.Put(failure(0, ""))
	require.Nil(t, err)
	_, data, err := store.Get(rec.ID)
	require.Nil(t, err)
	require.Len(t, data, 0)
}

func TestPutRejectsSuccess(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Put(failure(0, "a,b\n1,2"))
	require.IsType(t, errors.NotAFailureError{}, err)
}

func TestPutAllAndList(t *testing.T) {
	store := openTestStore(t)
	var parts []triage.RawPartition
	for i := 0; i < 6; i++ {
		data := fmt.Sprintf("v\n%d", i)
		if i%2 == 0 {
			data = fmt.Sprintf("v\n%d,%d", i, i)
		}
		parts = append(parts, triage.RawPartition{Source: "batch", Index: i, Data: []byte(data)})
	}
	ds := classify.NewDataset(dsv.CreateParser(&dsv.ParserConf{}), &classify.Options{Logger: logging.Discard()}, parts...)
	records, err := store.PutAll(ds.All())
	require.Nil(t, err)
	require.Len(t, records, 3)

	listed, err := store.List()
	require.Nil(t, err)
	require.Len(t, listed, 3)
	for i, rec := range listed {
		require.Equal(t, i*2, rec.Index)
	}

	require.Nil(t, store.Delete(listed[0].ID))
	listed, err = store.List()
	require.Nil(t, err)
	require.Len(t, listed, 2)
	_, _, err = store.Get(records[0].ID)
	require.True(t, goerrors.Is(err, os.ErrNotExist))
}

func TestGetDetectsCorruption(t *testing.T) {
	store := openTestStore(t)
	rec, err := store.Put(failure(0, "broken\n1,2"))
	require.Nil(t, err)

	var payload bytes.Buffer
	require.Nil(t, LZ4Codec{}.Compress(&payload, []byte("tampered\n1,2")))
	require.Nil(t, os.WriteFile(filepath.Join(store.Dir(), payloadName(rec)), payload.Bytes(), 0644))

	_, _, err = store.Get(rec.ID)
	var corrupt *errors.CorruptRecordError
	require.True(t, goerrors.As(err, &corrupt))
	require.Equal(t, rec.ID, corrupt.ID)
}

func TestInvalidIDs(t *testing.T) {
	store := openTestStore(t)
	_, _, err := store.Get("../../etc/passwd")
	require.NotNil(t, err)
	require.NotNil(t, store.Delete("not-a-uuid"))
}

func TestZstdCodec(t *testing.T) {
	store, err := Open(t.TempDir(), &StoreOptions{Logger: logging.Discard(), Codec: ZstdCodec{}})
	require.Nil(t, err)
	input := bytes.Repeat([]byte("a,b\n1,2,3\n"), 100)
	rec, err := store.Put(failure(3, string(input)))
	require.Nil(t, err)
	require.Equal(t, "zstd", rec.Codec)
	_, err = os.Stat(filepath.Join(store.Dir(), rec.ID+".raw.zstd"))
	require.Nil(t, err)

	// a Store reads Records written with any built-in codec
	reader, err := Open(store.Dir(), &StoreOptions{Logger: logging.Discard()})
	require.Nil(t, err)
	_, data, err := reader.Get(rec.ID)
	require.Nil(t, err)
	require.Equal(t, input, data)
	require.Nil(t, reader.Delete(rec.ID))
}

func TestCodecByName(t *testing.T) {
	for _, name := range []string{"", "lz4", "zstd"} {
		codec, err := CodecByName(name)
		require.Nil(t, err)
		var buf bytes.Buffer
		require.Nil(t, codec.Compress(&buf, []byte("payload")))
		data, err := codec.Decompress(&buf)
		require.Nil(t, err)
		require.Equal(t, []byte("payload"), data)
	}
	_, err := CodecByName("gzip")
	require.NotNil(t, err)
}

func TestPutRemovesPayloadWhenMetadataFails(t *testing.T) {
	store := openTestStore(t)
	id := uuid.Must(uuid.FromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	store.newID = func() (uuid.UUID, error) { return id, nil }
	// a directory in place of the metadata file makes the final rename fail
	require.Nil(t, os.Mkdir(filepath.Join(store.Dir(), id.String()+metadataSuffix), 0755))

	_, err := store.Put(failure(0, "broken\n1,2"))
	require.NotNil(t, err)
	_, err = os.Stat(filepath.Join(store.Dir(), id.String()+".raw.lz4"))
	require.True(t, goerrors.Is(err, os.ErrNotExist))
	entries, err := os.ReadDir(store.Dir())
	require.Nil(t, err)
	require.Len(t, entries, 1)
}
