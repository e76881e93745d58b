package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"salesdash/internal/models"
)

// Loader reads the sales CSV into normalized records, with a gob cache to
// skip re-parsing an unchanged file across restarts.
type Loader struct {
	path     string
	cacheDir string
	logger   *slog.Logger
}

func NewLoader(path, cacheDir string, logger *slog.Logger) *Loader {
	return &Loader{path: path, cacheDir: cacheDir, logger: logger}
}

// Load returns the normalized dataset. A cache hit skips parsing entirely;
// any error (missing file, malformed CSV, empty data) is returned so the
// caller can fall back to the mock dataset.
func (l *Loader) Load(ctx context.Context) ([]models.TransactionRecord, error) {
	if cached, err := l.loadFromCache(); err == nil {
		info, statErr := os.Stat(l.path)
		if statErr == nil && info.ModTime().Before(cached.SavedAt) {
			l.logger.Info("loaded dataset from cache", "records", len(cached.Records))
			return cached.Records, nil
		}
	}

	start := time.Now()
	rows, err := l.readCSV(ctx)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows in %s", l.path)
	}

	records := Normalize(rows)

	if err := l.saveToCache(records); err != nil {
		l.logger.Warn("failed to save dataset cache", "error", err)
	}

	l.logger.Info("dataset loaded",
		"records", len(records),
		"duration", time.Since(start))
	return records, nil
}

// readCSV parses the file into header-keyed rows. Blank lines are skipped
// and short rows are padded by the header mapping; a row longer than the
// header keeps only the named columns.
func (l *Loader) readCSV(ctx context.Context) ([]Row, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := []Row{}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows)+2, err)
		}
		if isBlank(fields) {
			continue
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
