package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

const (
	// Magic bytes to identify our snapshot format
	MagicBytes = "GCMS"
	// Current version
	FormatVersion = 1
	// File extension for snapshot files
	FileExtension = ".gcms"

	// FlagUncompressed marks a body stored as raw MessagePack because LZ4
	// could not shrink it.
	FlagUncompressed uint8 = 1 << 0
)

// FileHeader represents the header of a snapshot file
type FileHeader struct {
	Magic    [4]byte // "GCMS"
	Version  uint8   // Format version
	Flags    uint8   // FlagUncompressed or 0
	Reserved [2]byte // Reserved for future use
	RawSize  uint32  // Length of the MessagePack body before compression
}

// HeaderSize is the encoded length of FileHeader.
const HeaderSize = 12

// WriteHeader writes the file header to the given writer
func WriteHeader(w io.Writer, flags uint8, rawSize uint32) error {
	header := FileHeader{
		Magic:    [4]byte{'G', 'C', 'M', 'S'},
		Version:  FormatVersion,
		Flags:    flags,
		Reserved: [2]byte{0, 0},
		RawSize:  rawSize,
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate magic bytes
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	// Validate version
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// SnapshotData represents the structure stored inside a snapshot
type SnapshotData struct {
	Collections map[string][]map[string]interface{} `msgpack:"collections"`
	CreatedAt   time.Time                           `msgpack:"created_at"`
	Metadata    map[string]interface{}              `msgpack:"metadata,omitempty"`
}

// NewSnapshotData creates a new empty snapshot data structure
func NewSnapshotData(createdAt time.Time) *SnapshotData {
	return &SnapshotData{
		Collections: make(map[string][]map[string]interface{}),
		CreatedAt:   createdAt,
		Metadata:    make(map[string]interface{}),
	}
}
