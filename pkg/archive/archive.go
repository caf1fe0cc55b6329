// Package archive encodes employee exports: a fixed header followed by an
// lz4 frame holding a msgpack Snapshot.
package archive

import (
	"fmt"
	"io"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// Snapshot is the payload of an export
type Snapshot struct {
	ExportedAt time.Time       `msgpack:"exported_at"`
	Employees  []domain.Record `msgpack:"employees"`
}

// NewSnapshot stamps records with the current time
func NewSnapshot(records []domain.Record) *Snapshot {
	if records == nil {
		records = []domain.Record{}
	}
	return &Snapshot{
		ExportedAt: time.Now().UTC(),
		Employees:  records,
	}
}

// Write encodes snap to w
func Write(w io.Writer, snap *Snapshot) error {
	if err := WriteHeader(w, FlagLZ4); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	zw := lz4.NewWriter(w)
	if err := msgpack.NewEncoder(zw).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}
	return nil
}

// Read decodes an export produced by Write
func Read(r io.Reader) (*Snapshot, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid file header: %w", err)
	}

	payload := r
	if header.Flags&FlagLZ4 != 0 {
		payload = lz4.NewReader(r)
	}

	dec := msgpack.NewDecoder(payload)
	dec.UseLooseInterfaceDecoding(true)

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return &snap, nil
}
