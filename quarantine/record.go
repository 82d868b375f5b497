package quarantine

import (
	"time"

	"github.com/go-sif/triage"
)

// A Record describes a single quarantined partition
type Record struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Index     int       `json:"index"`
	Error     string    `json:"error"`
	Size      int       `json:"size"`     // size in bytes of the original, uncompressed partition
	Checksum  uint64    `json:"checksum"` // xxhash of the original partition
	Codec     string    `json:"codec,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Partition returns the identity of the quarantined RawPartition, without its data
func (r Record) Partition() triage.RawPartition {
	return triage.RawPartition{Source: r.Source, Index: r.Index}
}
