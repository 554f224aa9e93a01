package fleet

import "time"

// ColumnSet records which logical columns the source actually carried, so
// consumers can distinguish a missing column from a column of empty cells.
type ColumnSet struct {
	Name        bool
	Power       bool
	InstalledAt bool
	OfflineAt   bool
	Generation  map[Period]bool
}

// HasGeneration reports whether the source carried the reading column for the
// given period.
func (c ColumnSet) HasGeneration(period Period) bool {
	if c.Generation == nil {
		return false
	}
	return c.Generation[period]
}

// Snapshot is one immutable load of the fleet table plus its cache identity.
type Snapshot struct {
	Records    []PlantRecord
	Columns    ColumnSet
	SourceName string
	Checksum   string
	LoadedAt   time.Time
}

// RowCount returns the number of loaded records; a nil snapshot has zero.
func (s *Snapshot) RowCount() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
