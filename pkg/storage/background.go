package storage

import (
	"log"
	"time"
)

// StartBackgroundWorkers starts the periodic snapshot worker when both a
// snapshot directory and an interval are configured.
func (s *FileStore) StartBackgroundWorkers() {
	if s.snapshotDir == "" || s.snapshotInterval <= 0 {
		return
	}

	s.startOnce.Do(func() {
		s.backgroundWg.Add(1)
		go func() {
			defer s.backgroundWg.Done()
			ticker := time.NewTicker(s.snapshotInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					s.snapshotIfDirty()
				case <-s.stopChan:
					return
				}
			}
		}()
		log.Printf("INFO: Background snapshots enabled: every %v into %s", s.snapshotInterval, s.snapshotDir)
	})
}

// StopBackgroundWorkers stops background workers and waits for them to exit.
func (s *FileStore) StopBackgroundWorkers() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.backgroundWg.Wait()
}

// snapshotIfDirty writes a snapshot when the document was saved since the
// last one.
func (s *FileStore) snapshotIfDirty() {
	if !s.IsDirty() {
		log.Printf("DEBUG: No changes since last snapshot")
		return
	}

	start := time.Now()
	if _, err := s.WriteSnapshot(); err != nil {
		log.Printf("ERROR: Background snapshot failed: %v", err)
		return
	}
	log.Printf("INFO: Background snapshot completed in %v", time.Since(start))
}

// IsDirty reports whether the document was saved since the last snapshot.
func (s *FileStore) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}
