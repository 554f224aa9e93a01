package filesource

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"solarfleet-cloud/internal/checksum"
	"solarfleet-cloud/internal/config"
	fleet "solarfleet-cloud/internal/fleet/domain"
)

// XLSXSource loads the fleet table from a spreadsheet workbook. An empty
// sheet name selects the first sheet.
type XLSXSource struct {
	path    string
	sheet   string
	columns config.Columns
}

// NewXLSXSource builds a spreadsheet-backed dataset source.
func NewXLSXSource(path, sheet string, columns config.Columns) (*XLSXSource, error) {
	if path == "" {
		return nil, errors.New("filesource: empty xlsx path")
	}
	return &XLSXSource{path: path, sheet: sheet, columns: columns}, nil
}

// Name implements fleet.Source.
func (s *XLSXSource) Name() string {
	return filepath.Base(s.path)
}

// Fingerprint implements fleet.Fingerprinter.
func (s *XLSXSource) Fingerprint(ctx context.Context) (string, error) {
	digest, err := checksum.File(s.path)
	if err != nil {
		return "", err
	}
	return s.path + ":" + digest, nil
}

// Load implements fleet.Source.
func (s *XLSXSource) Load(ctx context.Context) (*fleet.Snapshot, error) {
	digest, err := checksum.File(s.path)
	if err != nil {
		return nil, err
	}

	book, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("filesource: open %s: %w", s.path, err)
	}
	defer book.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("filesource: read sheet %q: %w", sheet, err)
	}

	records, columns := snapshotFromRows(rows, s.columns)
	return &fleet.Snapshot{
		Records:    records,
		Columns:    columns,
		SourceName: s.Name(),
		Checksum:   s.path + ":" + digest,
		LoadedAt:   time.Now().UTC(),
	}, nil
}
