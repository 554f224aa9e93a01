package fleet

import (
	"context"
	"time"
)

// Source loads the fleet table from a backing dataset.
type Source interface {
	// Name identifies the dataset for logs and responses.
	Name() string
	// Load parses and normalizes the full table.
	Load(ctx context.Context) (*Snapshot, error)
}

// Fingerprinter is implemented by sources that can cheaply identify their
// current content. The snapshot store uses the fingerprint to decide whether
// a cached snapshot is still valid.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Clock supplies the evaluation instant for status derivation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
