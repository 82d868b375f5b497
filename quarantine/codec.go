package quarantine

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// A Codec compresses quarantined partition payloads (and the inverse)
type Codec interface {
	Name() string                            // Name identifies this Codec in Records, and in payload file names
	Compress(w io.Writer, data []byte) error // Compress writes compressed data to a write stream
	Decompress(r io.Reader) ([]byte, error)  // Decompress reads and decompresses all data from a read stream
}

// DefaultCodec is used when StoreOptions.Codec is unset, and for Records which do not name a Codec
const DefaultCodec = "lz4"

// LZ4Codec compresses payloads using the lz4 frame format
type LZ4Codec struct{}

// Name returns the name of this Codec
func (LZ4Codec) Name() string {
	return "lz4"
}

// Compress writes lz4-compressed data to w
func (LZ4Codec) Compress(w io.Writer, data []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}

// Decompress reads lz4-compressed data from r
func (LZ4Codec) Decompress(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(lz4.NewReader(r)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ZstdCodec compresses payloads using zstd, favouring speed over ratio
type ZstdCodec struct{}

// Name returns the name of this Codec
func (ZstdCodec) Name() string {
	return "zstd"
}

// Compress writes zstd-compressed data to w
func (ZstdCodec) Compress(w io.Writer, data []byte) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Decompress reads zstd-compressed data from r
func (ZstdCodec) Decompress(r io.Reader) ([]byte, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CodecByName returns the built-in Codec with the given name. An empty name is DefaultCodec.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "lz4":
		return LZ4Codec{}, nil
	case "zstd":
		return ZstdCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %#v, expected lz4 or zstd", name)
	}
}
