package archive

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify an employee export
	MagicBytes = "EMPL"
	// Current version
	FormatVersion = 1
	// File extension for exports
	FileExtension = ".empl"
	// ContentType served for exports
	ContentType = "application/octet-stream"
)

// FlagLZ4 marks a payload wrapped in an lz4 frame
const FlagLZ4 uint8 = 1 << 0

// FileHeader represents the header of an export
type FileHeader struct {
	Magic    [4]byte // "EMPL"
	Version  uint8   // Format version
	Flags    uint8   // Payload flags
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the file header to the given writer
func WriteHeader(w io.Writer, flags uint8) error {
	header := FileHeader{
		Magic:    [4]byte{'E', 'M', 'P', 'L'},
		Version:  FormatVersion,
		Flags:    flags,
		Reserved: [2]byte{0, 0},
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}
