package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// ErrSnapshotsDisabled is returned by snapshot operations when no snapshot
// directory is configured.
var ErrSnapshotsDisabled = domain.ErrSnapshotsDisabled

const snapshotPrefix = "snapshot_"

// EncodeSnapshot writes data as header + LZ4 block of MessagePack.
func EncodeSnapshot(w io.Writer, data *SnapshotData) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	compressedData := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, compressedData, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress data: %w", err)
	}

	// n == 0 means the input is incompressible
	flags := uint8(0)
	body := compressedData[:n]
	if n == 0 || n >= len(msgpackData) {
		flags = FlagUncompressed
		body = msgpackData
	}

	if err := WriteHeader(w, flags, uint32(len(msgpackData))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write snapshot body: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (*SnapshotData, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid file header: %w", err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	msgpackData := body
	if header.Flags&FlagUncompressed == 0 {
		msgpackData = make([]byte, header.RawSize)
		n, err := lz4.UncompressBlock(body, msgpackData)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress data: %w", err)
		}
		if n != int(header.RawSize) {
			return nil, fmt.Errorf("decompressed %d bytes, header says %d", n, header.RawSize)
		}
	}

	var data SnapshotData
	if err := msgpack.Unmarshal(msgpackData, &data); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	if data.Collections == nil {
		data.Collections = make(map[string][]map[string]interface{})
	}
	return &data, nil
}

// WriteSnapshot stores a compressed copy of the current document in the
// snapshot directory and prunes snapshots beyond the retention limit.
func (s *FileStore) WriteSnapshot() (domain.SnapshotInfo, error) {
	info, err := s.writeSnapshot()
	s.metrics.ObserveSnapshot(err)
	return info, err
}

func (s *FileStore) writeSnapshot() (domain.SnapshotInfo, error) {
	if s.snapshotDir == "" {
		return domain.SnapshotInfo{}, ErrSnapshotsDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadUnlocked()
	if err != nil {
		return domain.SnapshotInfo{}, err
	}

	createdAt := s.now()
	data := NewSnapshotData(createdAt)
	total := 0
	for name, records := range doc {
		list := make([]map[string]interface{}, len(records))
		for i, rec := range records {
			list[i] = map[string]interface{}(rec)
		}
		data.Collections[name] = list
		total += len(records)
	}
	data.Metadata["source"] = s.path
	data.Metadata["records"] = total

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, data); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	if err := os.MkdirAll(s.snapshotDir, 0755); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("%w: failed to create snapshot directory: %w", domain.ErrStorage, err)
	}

	filename := filepath.Join(s.snapshotDir, fmt.Sprintf("%s%d%s", snapshotPrefix, createdAt.UnixNano(), FileExtension))
	if err := writeFileAtomic(filename, buf.Bytes(), 0644); err != nil {
		return domain.SnapshotInfo{}, fmt.Errorf("%w: failed to write snapshot: %w", domain.ErrStorage, err)
	}
	s.dirty = false

	log.Printf("INFO: Wrote snapshot %s (%d records, %d bytes)", filename, total, buf.Len())

	if err := s.pruneSnapshots(); err != nil {
		log.Printf("WARN: Failed to prune snapshots in %s: %v", s.snapshotDir, err)
	}

	return domain.SnapshotInfo{Path: filename, Size: int64(buf.Len()), CreatedAt: createdAt}, nil
}

// ListSnapshots returns the snapshots in the snapshot directory, newest first.
func (s *FileStore) ListSnapshots() ([]domain.SnapshotInfo, error) {
	if s.snapshotDir == "" {
		return nil, ErrSnapshotsDisabled
	}

	files, err := filepath.Glob(filepath.Join(s.snapshotDir, snapshotPrefix+"*"+FileExtension))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list snapshots: %w", domain.ErrStorage, err)
	}

	snapshots := make([]domain.SnapshotInfo, 0, len(files))
	for _, file := range files {
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), snapshotPrefix), FileExtension)
		nanos, err := strconv.ParseInt(stamp, 10, 64)
		if err != nil {
			continue // Not one of ours
		}
		stat, err := os.Stat(file)
		if err != nil {
			continue // Pruned concurrently
		}
		snapshots = append(snapshots, domain.SnapshotInfo{
			Path:      file,
			Size:      stat.Size(),
			CreatedAt: time.Unix(0, nanos),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots, nil
}

// ReadSnapshot decodes the snapshot file at path.
func ReadSnapshot(path string) (*SnapshotData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open snapshot: %w", domain.ErrStorage, err)
	}
	defer file.Close()

	data, err := DecodeSnapshot(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorage, path, err)
	}
	return data, nil
}

// RestoreSnapshot replaces the backing file with the document held in the
// snapshot at path.
func (s *FileStore) RestoreSnapshot(path string) error {
	data, err := ReadSnapshot(path)
	if err != nil {
		return err
	}

	doc := make(domain.Document, len(data.Collections))
	for name, list := range data.Collections {
		records := make([]domain.Record, len(list))
		for i, rec := range list {
			records[i] = domain.Record(rec)
		}
		doc[name] = records
	}
	for _, name := range s.ContentTypeNames() {
		if doc[name] == nil {
			doc[name] = []domain.Record{}
		}
	}

	if err := s.Save(doc); err != nil {
		return err
	}

	log.Printf("INFO: Restored %s from snapshot %s taken at %s", s.path, path, data.CreatedAt.Format(time.RFC3339))
	return nil
}

// pruneSnapshots deletes all but the newest snapshotRetention snapshots.
func (s *FileStore) pruneSnapshots() error {
	if s.snapshotRetention <= 0 {
		return nil
	}

	snapshots, err := s.ListSnapshots()
	if err != nil {
		return err
	}

	var errs []error
	for _, snap := range snapshots[min(len(snapshots), s.snapshotRetention):] {
		if err := os.Remove(snap.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		log.Printf("DEBUG: Pruned snapshot %s", snap.Path)
	}
	return errors.Join(errs...)
}
