package filesource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solarfleet-cloud/internal/checksum"
	"solarfleet-cloud/internal/config"
	fleet "solarfleet-cloud/internal/fleet/domain"
)

// CSVSource loads the fleet table from a delimited text file. The first row
// is the header; malformed cells coerce to missing values rather than failing
// the load.
type CSVSource struct {
	path    string
	comma   rune
	columns config.Columns
}

// NewCSVSource builds a CSV-backed dataset source.
func NewCSVSource(path string, comma rune, columns config.Columns) (*CSVSource, error) {
	if path == "" {
		return nil, errors.New("filesource: empty csv path")
	}
	if comma == 0 {
		comma = ';'
	}
	return &CSVSource{path: path, comma: comma, columns: columns}, nil
}

// Name implements fleet.Source.
func (s *CSVSource) Name() string {
	return filepath.Base(s.path)
}

// Fingerprint implements fleet.Fingerprinter. The fingerprint combines the
// file path with a digest of its current contents.
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	digest, err := checksum.File(s.path)
	if err != nil {
		return "", err
	}
	return s.path + ":" + digest, nil
}

// Load implements fleet.Source.
func (s *CSVSource) Load(ctx context.Context) (*fleet.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("filesource: read %s: %w", s.path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = s.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("filesource: parse %s: %w", s.path, err)
	}

	records, columns := snapshotFromRows(rows, s.columns)
	return &fleet.Snapshot{
		Records:    records,
		Columns:    columns,
		SourceName: s.Name(),
		Checksum:   s.path + ":" + checksum.Bytes(data),
		LoadedAt:   time.Now().UTC(),
	}, nil
}
