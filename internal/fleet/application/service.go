package application

import (
	"context"
	"errors"
	"fmt"
	"log"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

// SnapshotProvider supplies dataset snapshots.
type SnapshotProvider interface {
	Acquire(ctx context.Context) (*fleet.Snapshot, error)
	Reload(ctx context.Context) (*fleet.Snapshot, error)
}

// DashboardService evaluates fleet queries against the current snapshot.
// Statuses are derived fresh on every call so a new evaluation day changes
// warranty classifications without a dataset reload.
type DashboardService struct {
	snapshots SnapshotProvider
	clock     fleet.Clock
	logger    *log.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(snapshots SnapshotProvider, clock fleet.Clock, logger *log.Logger) (*DashboardService, error) {
	if snapshots == nil {
		return nil, errors.New("application: nil snapshot provider")
	}
	if clock == nil {
		clock = fleet.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DashboardService{snapshots: snapshots, clock: clock, logger: logger}, nil
}

func (s *DashboardService) acquire(ctx context.Context) (*fleet.Snapshot, error) {
	snap, err := s.snapshots.Acquire(ctx)
	if err != nil {
		s.logger.Printf("dataset acquire failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return snap, nil
}

// Build evaluates the full dashboard for one query. Summary counters always
// cover the unfiltered dataset. Status filters narrow the table, breakdowns
// and charts; the band filter additionally narrows each period chart whose
// period the query selected.
func (s *DashboardService) Build(ctx context.Context, filters Filters) (*Dashboard, error) {
	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if filters.Period == "" {
		filters.Period = fleet.PeriodAll
	}
	if filters.Band == "" {
		filters.Band = fleet.BandAll
	}

	eval := s.clock.Now()
	base := snap.Records
	statusFiltered := FilterByStatus(base, filters.Warranty, filters.Operational, eval)

	var warnings []Warning
	charts := make([]PeriodChart, 0, len(fleet.Periods))
	for _, period := range fleet.Periods {
		if !snap.Columns.HasGeneration(period) {
			warnings = append(warnings, missingColumnWarning(period))
			charts = append(charts, PeriodChart{
				Period:  period,
				Plants:  len(statusFiltered),
				Buckets: CountBuckets(nil, period),
			})
			continue
		}

		chartRecords := statusFiltered
		bandApplied := false
		if filters.Band != fleet.BandAll && (filters.Period == fleet.PeriodAll || filters.Period == period) {
			filtered, bandWarnings := FilterByBand(statusFiltered, snap.Columns, period, filters.Band)
			warnings = append(warnings, bandWarnings...)
			chartRecords = filtered
			bandApplied = true
		}
		charts = append(charts, PeriodChart{
			Period:      period,
			BandApplied: bandApplied,
			Plants:      len(chartRecords),
			Buckets:     CountBuckets(chartRecords, period),
		})
	}

	return &Dashboard{
		GeneratedAt: eval,
		Source:      snap.SourceName,
		Checksum:    snap.Checksum,
		Summary:     Summarize(base),
		Warranty:    CountWarranty(statusFiltered, eval),
		Operational: CountOperational(statusFiltered),
		Power:       PowerStats(statusFiltered),
		Charts:      charts,
		Plants:      NewPlantViews(statusFiltered, eval),
		Warnings:    warnings,
	}, nil
}

// Overview returns fleet-wide counters plus the identity of the snapshot
// they were computed from.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		GeneratedAt: s.clock.Now(),
		Source:      snap.SourceName,
		Checksum:    snap.Checksum,
		LoadedAt:    snap.LoadedAt,
		Rows:        snap.RowCount(),
		Summary:     Summarize(snap.Records),
	}, nil
}

// Plants returns the table rows matching the status filters.
func (s *DashboardService) Plants(ctx context.Context, warranty *fleet.WarrantyStatus, operational *fleet.OperationalStatus) ([]PlantView, error) {
	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	eval := s.clock.Now()
	return NewPlantViews(FilterByStatus(snap.Records, warranty, operational, eval), eval), nil
}

// Buckets returns the band chart for one concrete period over the records
// matching the status filters, optionally narrowed to one band first.
func (s *DashboardService) Buckets(ctx context.Context, period fleet.Period, band fleet.GenerationBand, warranty *fleet.WarrantyStatus, operational *fleet.OperationalStatus) (*BucketReport, error) {
	if period == "" || period == fleet.PeriodAll {
		return nil, fleet.ErrPeriodRequired
	}
	if band == "" {
		band = fleet.BandAll
	}
	snap, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	eval := s.clock.Now()
	records := FilterByStatus(snap.Records, warranty, operational, eval)

	var warnings []Warning
	if !snap.Columns.HasGeneration(period) {
		warnings = append(warnings, missingColumnWarning(period))
	} else if band != fleet.BandAll {
		records, warnings = FilterByBand(records, snap.Columns, period, band)
	}
	return &BucketReport{
		GeneratedAt: eval,
		Period:      period,
		Band:        band,
		Plants:      len(records),
		Buckets:     CountBuckets(records, period),
		Warnings:    warnings,
	}, nil
}

// Reload discards the cached snapshot and loads the dataset again.
func (s *DashboardService) Reload(ctx context.Context) (*ReloadResult, error) {
	snap, err := s.snapshots.Reload(ctx)
	if err != nil {
		s.logger.Printf("dataset reload failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return &ReloadResult{
		Source:   snap.SourceName,
		Checksum: snap.Checksum,
		Rows:     snap.RowCount(),
		LoadedAt: snap.LoadedAt,
	}, nil
}
