package application

import (
	"context"
	"errors"
	"testing"
	"time"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubProvider struct {
	snap    *fleet.Snapshot
	err     error
	reloads int
}

func (p *stubProvider) Acquire(ctx context.Context) (*fleet.Snapshot, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.snap, nil
}

func (p *stubProvider) Reload(ctx context.Context) (*fleet.Snapshot, error) {
	p.reloads++
	if p.err != nil {
		return nil, p.err
	}
	return p.snap, nil
}

func testSnapshot(eval time.Time) *fleet.Snapshot {
	old := eval.AddDate(-2, 0, 0)
	recent := eval.AddDate(0, -1, 0)
	offline := eval.AddDate(0, 0, -3)
	power := func(v float64) *float64 { return &v }
	value := func(v float64) fleet.Reading {
		return fleet.Reading{Raw: "raw", Value: &v}
	}

	return &fleet.Snapshot{
		Records: []fleet.PlantRecord{
			{Name: "Alpha", PowerKWp: power(75), InstalledAt: &old, Daily: value(95), Monthly: value(91)},
			{Name: "Beta", PowerKWp: power(50), InstalledAt: &recent, Daily: value(85), Monthly: value(62)},
			{Name: "Gamma", PowerKWp: power(30), InstalledAt: &old, OfflineAt: &offline, Daily: value(48), Monthly: fleet.Reading{Raw: "nd"}},
		},
		Columns: fleet.ColumnSet{
			Name:        true,
			Power:       true,
			InstalledAt: true,
			OfflineAt:   true,
			Generation: map[fleet.Period]bool{
				fleet.PeriodDaily:       true,
				fleet.PeriodFortnightly: false,
				fleet.PeriodMonthly:     true,
				fleet.PeriodAnnual:      false,
			},
		},
		SourceName: "plants.csv",
		Checksum:   "plants.csv:abc",
		LoadedAt:   eval.Add(-time.Hour),
	}
}

func newTestService(t *testing.T, eval time.Time) (*DashboardService, *stubProvider) {
	t.Helper()
	provider := &stubProvider{snap: testSnapshot(eval)}
	svc, err := NewDashboardService(provider, fixedClock{now: eval}, nil)
	if err != nil {
		t.Fatalf("NewDashboardService: %v", err)
	}
	return svc, provider
}

func TestBuildSummaryIgnoresFilters(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	offline := fleet.StatusOffline
	dash, err := svc.Build(context.Background(), Filters{Operational: &offline})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if dash.Summary.TotalPlants != 3 || dash.Summary.Online != 2 || dash.Summary.Offline != 1 {
		t.Fatalf("expected summary over the full dataset, got %+v", dash.Summary)
	}
	if len(dash.Plants) != 1 || dash.Plants[0].Name != "Gamma" {
		t.Fatalf("expected filtered table, got %+v", dash.Plants)
	}
	if dash.Operational[0].Count != 0 || dash.Operational[1].Count != 1 {
		t.Fatalf("expected breakdowns over filtered records, got %+v", dash.Operational)
	}
}

func TestBuildAppliesBandToSelectedPeriodOnly(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	dash, err := svc.Build(context.Background(), Filters{Period: fleet.PeriodDaily, Band: fleet.BandAbove90})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(dash.Charts) != len(fleet.Periods) {
		t.Fatalf("expected a chart per period, got %d", len(dash.Charts))
	}

	byPeriod := map[fleet.Period]PeriodChart{}
	for _, chart := range dash.Charts {
		byPeriod[chart.Period] = chart
	}

	daily := byPeriod[fleet.PeriodDaily]
	if !daily.BandApplied || daily.Plants != 1 {
		t.Fatalf("expected band applied to daily chart, got %+v", daily)
	}
	if daily.Buckets[0].Count != 1 {
		t.Fatalf("expected one plant above 90%%, got %+v", daily.Buckets)
	}

	monthly := byPeriod[fleet.PeriodMonthly]
	if monthly.BandApplied || monthly.Plants != 3 {
		t.Fatalf("expected monthly chart unfiltered, got %+v", monthly)
	}
}

func TestBuildAppliesBandToAllPeriods(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	dash, err := svc.Build(context.Background(), Filters{Band: fleet.Band80To90})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, chart := range dash.Charts {
		switch chart.Period {
		case fleet.PeriodDaily:
			if !chart.BandApplied || chart.Plants != 1 {
				t.Fatalf("expected daily filtered to 85%% plant, got %+v", chart)
			}
		case fleet.PeriodMonthly:
			if !chart.BandApplied || chart.Plants != 0 {
				t.Fatalf("expected monthly filtered to none, got %+v", chart)
			}
		}
	}
}

func TestBuildWarnsOnMissingColumns(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	dash, err := svc.Build(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	missing := 0
	for _, warning := range dash.Warnings {
		if warning.Code == WarnColumnMissing {
			missing++
		}
	}
	if missing != 2 {
		t.Fatalf("expected warnings for the two absent columns, got %+v", dash.Warnings)
	}
}

func TestBuildDatasetUnavailable(t *testing.T) {
	provider := &stubProvider{err: errors.New("no such file")}
	svc, err := NewDashboardService(provider, fixedClock{now: time.Now()}, nil)
	if err != nil {
		t.Fatalf("NewDashboardService: %v", err)
	}
	if _, err := svc.Build(context.Background(), Filters{}); !errors.Is(err, ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
}

func TestOverview(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Rows != 3 || overview.Source != "plants.csv" || overview.Checksum == "" {
		t.Fatalf("unexpected overview %+v", overview)
	}
	if overview.Summary.Offline != 1 {
		t.Fatalf("unexpected summary %+v", overview.Summary)
	}
}

func TestPlantsAppliesStatusFiltersOnly(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	out := fleet.WarrantyOut
	views, err := svc.Plants(context.Background(), &out, nil)
	if err != nil {
		t.Fatalf("Plants: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected two out-of-warranty plants, got %+v", views)
	}
	if views[0].WarrantyStatus != string(fleet.WarrantyOut) {
		t.Fatalf("expected derived status on view, got %+v", views[0])
	}
}

func TestBucketsRequiresConcretePeriod(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	if _, err := svc.Buckets(context.Background(), fleet.PeriodAll, fleet.BandAll, nil, nil); !errors.Is(err, fleet.ErrPeriodRequired) {
		t.Fatalf("expected ErrPeriodRequired, got %v", err)
	}

	report, err := svc.Buckets(context.Background(), fleet.PeriodDaily, fleet.BandAll, nil, nil)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if report.Plants != 3 || len(report.Buckets) != len(fleet.ChartBands) {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Buckets[0].Count != 1 {
		t.Fatalf("expected one plant above 90%%, got %+v", report.Buckets)
	}
}

func TestBucketsWarnsOnMissingColumn(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	report, err := svc.Buckets(context.Background(), fleet.PeriodAnnual, fleet.BandAll, nil, nil)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Code != WarnColumnMissing {
		t.Fatalf("expected missing column warning, got %+v", report.Warnings)
	}
	for _, bucket := range report.Buckets {
		if bucket.Count != 0 {
			t.Fatalf("expected zero buckets, got %+v", report.Buckets)
		}
	}
}

func TestBucketsNarrowsToBand(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, eval)

	report, err := svc.Buckets(context.Background(), fleet.PeriodDaily, fleet.Band80To90, nil, nil)
	if err != nil {
		t.Fatalf("Buckets: %v", err)
	}
	if report.Band != fleet.Band80To90 || report.Plants != 1 {
		t.Fatalf("expected one plant in 80-90%%, got %+v", report)
	}
	if report.Buckets[1].Count != 1 || report.Buckets[0].Count != 0 {
		t.Fatalf("expected counts only in the selected band, got %+v", report.Buckets)
	}
}

func TestReload(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc, provider := newTestService(t, eval)

	result, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if provider.reloads != 1 {
		t.Fatalf("expected one reload, got %d", provider.reloads)
	}
	if result.Rows != 3 || result.Source != "plants.csv" {
		t.Fatalf("unexpected result %+v", result)
	}
}
