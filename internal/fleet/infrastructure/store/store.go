package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	fleet "solarfleet-cloud/internal/fleet/domain"
	"solarfleet-cloud/internal/observability/metrics"
)

// SnapshotStore caches the latest loaded dataset snapshot. Sources that can
// fingerprint their content are revalidated on every acquire, so an edited
// file is picked up without restarting; other sources are cached until an
// explicit reload. Snapshots are shared read-only and must not be mutated.
type SnapshotStore struct {
	source fleet.Source
	logger *log.Logger

	mu      sync.Mutex
	current *fleet.Snapshot
}

// NewSnapshotStore constructs a store over the given dataset source.
func NewSnapshotStore(source fleet.Source, logger *log.Logger) (*SnapshotStore, error) {
	if source == nil {
		return nil, errors.New("store: nil source")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SnapshotStore{source: source, logger: logger}, nil
}

// Acquire returns the current snapshot, loading or reloading it when the
// cached one is missing or no longer matches the source fingerprint.
func (s *SnapshotStore) Acquire(ctx context.Context) (*fleet.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fingerprinter, ok := s.source.(fleet.Fingerprinter)
	if !ok {
		if s.current != nil {
			return s.current, nil
		}
		return s.loadLocked(ctx)
	}

	fingerprint, err := fingerprinter.Fingerprint(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: fingerprint dataset: %w", err)
	}
	if s.current != nil && s.current.Checksum == fingerprint {
		return s.current, nil
	}
	return s.loadLocked(ctx)
}

// Reload discards the cached snapshot and loads the dataset again.
func (s *SnapshotStore) Reload(ctx context.Context) (*fleet.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *SnapshotStore) loadLocked(ctx context.Context) (*fleet.Snapshot, error) {
	start := time.Now()
	snap, err := s.source.Load(ctx)
	if err != nil {
		metrics.ObserveDatasetLoad(metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("store: load dataset: %w", err)
	}
	if snap == nil {
		metrics.ObserveDatasetLoad(metrics.ResultError, time.Since(start))
		return nil, fleet.ErrNilSnapshot
	}
	metrics.ObserveDatasetLoad(metrics.ResultSuccess, time.Since(start))
	online, offline := 0, 0
	for _, record := range snap.Records {
		if record.OperationalStatus() == fleet.StatusOffline {
			offline++
		} else {
			online++
		}
	}
	metrics.SetFleetGauges(snap.RowCount(), online, offline)

	s.current = snap
	s.logger.Printf("dataset loaded source=%s rows=%d checksum=%s", snap.SourceName, snap.RowCount(), snap.Checksum)
	return snap, nil
}
