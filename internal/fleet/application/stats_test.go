package application

import (
	"testing"
	"time"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

func poweredRecord(name string, power float64, offline bool) fleet.PlantRecord {
	p := power
	record := fleet.PlantRecord{Name: name, PowerKWp: &p}
	if offline {
		offlineAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		record.OfflineAt = &offlineAt
	}
	return record
}

func TestSummarize(t *testing.T) {
	records := []fleet.PlantRecord{
		poweredRecord("A", 10, false),
		poweredRecord("B", 20, true),
		poweredRecord("C", 30, true),
	}
	summary := Summarize(records)
	if summary.TotalPlants != 3 || summary.Online != 1 || summary.Offline != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	empty := Summarize(nil)
	if empty.TotalPlants != 0 || empty.Online != 0 || empty.Offline != 0 {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestCountWarrantyReportsZeros(t *testing.T) {
	eval := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	recent := eval.AddDate(0, -1, 0)
	records := []fleet.PlantRecord{
		{Name: "A", InstalledAt: &recent},
		{Name: "B"},
	}
	counts := CountWarranty(records, eval)
	if len(counts) != 2 {
		t.Fatalf("expected both statuses reported, got %+v", counts)
	}
	if counts[0].Status != string(fleet.WarrantyIn) || counts[0].Count != 2 {
		t.Fatalf("unexpected in-warranty count %+v", counts[0])
	}
	if counts[1].Status != string(fleet.WarrantyOut) || counts[1].Count != 0 {
		t.Fatalf("expected zero out-of-warranty count, got %+v", counts[1])
	}
}

func TestCountOperational(t *testing.T) {
	records := []fleet.PlantRecord{
		poweredRecord("A", 10, true),
		poweredRecord("B", 20, true),
	}
	counts := CountOperational(records)
	if counts[0].Status != string(fleet.StatusOnline) || counts[0].Count != 0 {
		t.Fatalf("expected zero online count, got %+v", counts[0])
	}
	if counts[1].Status != string(fleet.StatusOffline) || counts[1].Count != 2 {
		t.Fatalf("unexpected offline count %+v", counts[1])
	}
}

func TestPowerStats(t *testing.T) {
	records := []fleet.PlantRecord{
		poweredRecord("A", 10, false),
		poweredRecord("B", 20, false),
		poweredRecord("C", 30, false),
		poweredRecord("D", 40, false),
		poweredRecord("E", 50, false),
		{Name: "NoPower"},
	}
	dist := PowerStats(records)
	if dist == nil {
		t.Fatalf("expected distribution")
	}
	if dist.Count != 5 {
		t.Fatalf("expected 5 values, got %d", dist.Count)
	}
	if dist.Min != 10 || dist.Max != 50 {
		t.Fatalf("unexpected extremes %+v", dist)
	}
	if dist.Q1 != 20 || dist.Median != 30 || dist.Q3 != 40 {
		t.Fatalf("unexpected quartiles %+v", dist)
	}
	if dist.Mean != 30 {
		t.Fatalf("unexpected mean %+v", dist)
	}
}

func TestPowerStatsEmpty(t *testing.T) {
	if dist := PowerStats([]fleet.PlantRecord{{Name: "A"}}); dist != nil {
		t.Fatalf("expected nil distribution without power values, got %+v", dist)
	}
}
