package fleet

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestWarrantyStatusAt(t *testing.T) {
	eval := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	cutoff := time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)

	record := PlantRecord{Name: "Plant A"}
	if got := record.WarrantyStatusAt(eval); got != WarrantyIn {
		t.Fatalf("expected unset installation date to be in warranty, got %q", got)
	}

	record.InstalledAt = timePtr(cutoff)
	if got := record.WarrantyStatusAt(eval); got != WarrantyIn {
		t.Fatalf("expected installation exactly a year ago to be in warranty, got %q", got)
	}

	record.InstalledAt = timePtr(cutoff.Add(-time.Second))
	if got := record.WarrantyStatusAt(eval); got != WarrantyOut {
		t.Fatalf("expected installation beyond a year to be out of warranty, got %q", got)
	}

	record.InstalledAt = timePtr(eval.AddDate(0, -1, 0))
	if got := record.WarrantyStatusAt(eval); got != WarrantyIn {
		t.Fatalf("expected recent installation to be in warranty, got %q", got)
	}
}

func TestOperationalStatus(t *testing.T) {
	record := PlantRecord{Name: "Plant A"}
	if got := record.OperationalStatus(); got != StatusOnline {
		t.Fatalf("expected online without offline date, got %q", got)
	}
	record.OfflineAt = timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if got := record.OperationalStatus(); got != StatusOffline {
		t.Fatalf("expected offline with offline date, got %q", got)
	}
}

func TestGenerationByPeriod(t *testing.T) {
	value := 87.5
	record := PlantRecord{
		Daily:   Reading{Raw: "87,5%", Value: &value},
		Monthly: Reading{Raw: "invalid"},
	}
	if got := record.Generation(PeriodDaily); got.Value == nil || *got.Value != value {
		t.Fatalf("expected daily reading %v, got %+v", value, got)
	}
	if got := record.Generation(PeriodMonthly); got.Value != nil {
		t.Fatalf("expected monthly reading without value, got %+v", got)
	}
	if got := record.Generation(PeriodAnnual); got.Raw != "" || got.Value != nil {
		t.Fatalf("expected empty annual reading, got %+v", got)
	}
}

func TestParsePeriod(t *testing.T) {
	for input, want := range map[string]Period{
		"":            PeriodAll,
		"all":         PeriodAll,
		"Daily":       PeriodDaily,
		"fortnightly": PeriodFortnightly,
		" monthly ":   PeriodMonthly,
		"ANNUAL":      PeriodAnnual,
	} {
		got, err := ParsePeriod(input)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePeriod(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParsePeriod("weekly"); err != ErrUnknownPeriod {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestParseStatusFilters(t *testing.T) {
	if filter, err := ParseWarrantyFilter(""); err != nil || filter != nil {
		t.Fatalf("expected empty warranty filter to select all, got %v, %v", filter, err)
	}
	filter, err := ParseWarrantyFilter("out_of_warranty")
	if err != nil || filter == nil || *filter != WarrantyOut {
		t.Fatalf("expected out_of_warranty filter, got %v, %v", filter, err)
	}
	if _, err := ParseWarrantyFilter("expired"); err != ErrUnknownWarrantyStatus {
		t.Fatalf("expected ErrUnknownWarrantyStatus, got %v", err)
	}

	opFilter, err := ParseOperationalFilter("offline")
	if err != nil || opFilter == nil || *opFilter != StatusOffline {
		t.Fatalf("expected offline filter, got %v, %v", opFilter, err)
	}
	if _, err := ParseOperationalFilter("down"); err != ErrUnknownOperationalStatus {
		t.Fatalf("expected ErrUnknownOperationalStatus, got %v", err)
	}
}
