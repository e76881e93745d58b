package dataset

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salesdash/internal/models"
)

// cacheVersion is bumped whenever the record shape changes so stale caches
// are ignored rather than mis-decoded.
const cacheVersion = "v1"

type cacheEntry struct {
	Records []models.TransactionRecord
	SavedAt time.Time
}

func (l *Loader) cacheFilename() string {
	name := strings.ReplaceAll(l.path, string(os.PathSeparator), "_")
	return filepath.Join(l.cacheDir, fmt.Sprintf("%s_%s.gob", name, cacheVersion))
}

func (l *Loader) saveToCache(records []models.TransactionRecord) error {
	if l.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(l.cacheDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(l.cacheFilename())
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(cacheEntry{Records: records, SavedAt: time.Now()})
}

func (l *Loader) loadFromCache() (*cacheEntry, error) {
	if l.cacheDir == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(l.cacheFilename())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := gob.NewDecoder(f).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
