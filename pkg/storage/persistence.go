package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/adfharrison1/go-cms/pkg/domain"
)

// Load reads and parses the backing file. A missing file is created with an
// empty list per content type, and that document is returned.
func (s *FileStore) Load() (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUnlocked()
}

// Save overwrites the backing file with doc as indented JSON.
func (s *FileStore) Save(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveUnlocked(doc)
}

// Mutate loads the document, hands it to fn and saves it unless fn fails.
// The whole sequence runs under the store lock.
func (s *FileStore) Mutate(fn func(doc domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadUnlocked()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveUnlocked(doc)
}

// loadUnlocked contains the load logic without locking (caller must hold mu)
func (s *FileStore) loadUnlocked() (domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			doc := s.defaultDocument()
			if err := s.saveUnlocked(doc); err != nil {
				return nil, err
			}
			log.Printf("INFO: Initialized data file %s with %d content types", s.path, len(doc))
			return doc, nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrStorage, s.path, err)
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorage, s.path, err)
	}

	// Content types added after the file was created start out empty.
	for _, name := range s.ContentTypeNames() {
		if doc[name] == nil {
			doc[name] = []domain.Record{}
		}
	}
	return doc, nil
}

// saveUnlocked contains the save logic without locking (caller must hold mu)
func (s *FileStore) saveUnlocked(doc domain.Document) error {
	data, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to encode document: %w", domain.ErrStorage, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: failed to create data directory: %w", domain.ErrStorage, err)
		}
	}

	write := os.WriteFile
	if s.atomicWrites {
		write = writeFileAtomic
	}
	if err := write(s.path, data, fs.FileMode(s.fileMode)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", domain.ErrStorage, s.path, err)
	}

	s.dirty = true
	return nil
}

// EncodeDocument renders doc the way it is stored on disk: two-space indented
// JSON with a trailing newline.
func EncodeDocument(doc domain.Document) ([]byte, error) {
	if doc == nil {
		doc = domain.Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses the on-disk JSON form of a document.
func DecodeDocument(data []byte) (domain.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("data file is empty")
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if doc == nil {
		doc = domain.Document{}
	}
	return doc, nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName) // Clean up temp file
		return err
	}
	return nil
}
