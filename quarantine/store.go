package quarantine

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/triage"
	"github.com/go-sif/triage/classify"
	"github.com/go-sif/triage/errors"
	"github.com/go-sif/triage/logging"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	payloadSuffix  = ".raw."
	metadataSuffix = ".json"
)

// StoreOptions configure a Store
type StoreOptions struct {
	Logger *slog.Logger     // defaults to slog.Default()
	Clock  func() time.Time // defaults to time.Now
	Codec  Codec            // compresses payloads. Defaults to LZ4Codec.
}

// Store is a directory of quarantined partitions
type Store struct {
	dir    string
	logger *slog.Logger
	clock  func() time.Time
	codec  Codec
	newID  func() (uuid.UUID, error)
}

// Open opens (creating, if necessary) a Store rooted at dir
func Open(dir string, opts *StoreOptions) (*Store, error) {
	if opts == nil {
		opts = &StoreOptions{}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create quarantine directory %s: %w", dir, err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	codec := opts.Codec
	if codec == nil {
		codec = LZ4Codec{}
	}
	return &Store{dir: dir, logger: logging.OrDefault(opts.Logger), clock: clock, codec: codec, newID: uuid.NewV4}, nil
}

// Dir returns the directory this Store is rooted at
func (s *Store) Dir() string {
	return s.dir
}

// Put quarantines a Failure. Successes are rejected with a NotAFailureError.
func (s *Store) Put(res triage.Result) (Record, error) {
	if !res.IsFailure() {
		return Record{}, errors.NotAFailureError{ID: res.ID()}
	}
	id, err := s.newID()
	if err != nil {
		return Record{}, err
	}
	raw := res.Raw()
	rec := Record{
		ID:        id.String(),
		Source:    raw.Source,
		Index:     raw.Index,
		Error:     res.Err().Error(),
		Size:      raw.Size(),
		Checksum:  xxhash.Sum64(raw.Data),
		Codec:     s.codec.Name(),
		CreatedAt: s.clock().UTC(),
	}

	var payload bytes.Buffer
	if err := s.codec.Compress(&payload, raw.Data); err != nil {
		return Record{}, err
	}
	if err := s.writeFile(payloadName(rec), payload.Bytes()); err != nil {
		return Record{}, err
	}
	// metadata is written last, so a record is only listed once its payload exists
	if err := s.writeMetadata(rec); err != nil {
		if rmErr := os.Remove(s.path(payloadName(rec))); rmErr != nil {
			s.logger.Warn("couldn't remove orphaned payload", "id", rec.ID, "error", rmErr)
		}
		return Record{}, err
	}
	s.logger.Debug("quarantined partition", "id", rec.ID, "partition", res.ID(), "size", rec.Size)
	return rec, nil
}

// PutAll quarantines every Failure in a View, returning the Records which were written.
// Every Failure is attempted; errors are aggregated.
func (s *Store) PutAll(v *classify.View) ([]Record, error) {
	var records []Record
	var merr *multierror.Error
	it := v.Iterator()
	for it.HasNext() {
		res := it.Next()
		if !res.IsFailure() {
			continue
		}
		rec, err := s.Put(res)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("unable to quarantine %s: %w", res.ID(), err))
			continue
		}
		records = append(records, rec)
	}
	return records, merr.ErrorOrNil()
}

// List returns every Record in the Store, oldest first
func (s *Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metadataSuffix) {
			continue
		}
		rec, err := s.readRecord(strings.TrimSuffix(entry.Name(), metadataSuffix))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Get returns a Record and the exact original bytes of the quarantined partition.
// A payload which does not match its recorded checksum produces a *errors.CorruptRecordError.
func (s *Store) Get(id string) (Record, []byte, error) {
	rec, err := s.readRecord(id)
	if err != nil {
		return Record{}, nil, err
	}
	codec, err := CodecByName(rec.Codec)
	if err != nil {
		return Record{}, nil, err
	}
	f, err := os.Open(s.path(payloadName(rec)))
	if err != nil {
		return Record{}, nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("couldn't close quarantined payload", "id", id, "error", err)
		}
	}()
	data, err := codec.Decompress(f)
	if err != nil {
		return Record{}, nil, fmt.Errorf("unable to decompress quarantined record %s: %w", id, err)
	}
	if sum := xxhash.Sum64(data); sum != rec.Checksum || len(data) != rec.Size {
		return Record{}, nil, &errors.CorruptRecordError{ID: id, Expected: rec.Checksum, Actual: sum}
	}
	return rec, data, nil
}

// Delete removes a Record and its payload from the Store
func (s *Store) Delete(id string) error {
	rec, err := s.readRecord(id)
	if err != nil {
		return err
	}
	var merr *multierror.Error
	// metadata is removed first, so a partially deleted record is never listed
	for _, name := range []string{id + metadataSuffix, payloadName(rec)} {
		if err := os.Remove(s.path(name)); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

func (s *Store) readRecord(id string) (Record, error) {
	if _, err := uuid.FromString(id); err != nil {
		return Record{}, fmt.Errorf("invalid record id %#v: %w", id, err)
	}
	meta, err := os.ReadFile(s.path(id + metadataSuffix))
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(meta, &rec); err != nil {
		return Record{}, fmt.Errorf("unable to read quarantined record %s: %w", id, err)
	}
	return rec, nil
}

func (s *Store) writeMetadata(rec Record) error {
	meta, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return s.writeFile(rec.ID+metadataSuffix, meta)
}

func payloadName(rec Record) string {
	codec := rec.Codec
	if len(codec) == 0 {
		codec = DefaultCodec
	}
	return rec.ID + payloadSuffix + codec
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// writeFile writes to a temporary file and renames it into place
func (s *Store) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
