package application

import (
	"time"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

const dateLayout = "2006-01-02"

// PlantView is one row of the dashboard table with its derived statuses.
type PlantView struct {
	Name              string              `json:"name"`
	PowerKWp          *float64            `json:"power_kwp"`
	InstalledAt       *string             `json:"installed_at"`
	OfflineAt         *string             `json:"offline_at"`
	WarrantyStatus    string              `json:"warranty_status"`
	OperationalStatus string              `json:"operational_status"`
	Generation        map[string]*float64 `json:"generation"`
}

// NewPlantView derives the presentable row for a record against eval.
func NewPlantView(record fleet.PlantRecord, eval time.Time) PlantView {
	view := PlantView{
		Name:              record.Name,
		PowerKWp:          record.PowerKWp,
		WarrantyStatus:    string(record.WarrantyStatusAt(eval)),
		OperationalStatus: string(record.OperationalStatus()),
		Generation: map[string]*float64{
			string(fleet.PeriodDaily):       record.Daily.Value,
			string(fleet.PeriodFortnightly): record.Fortnightly.Value,
			string(fleet.PeriodMonthly):     record.Monthly.Value,
			string(fleet.PeriodAnnual):      record.Annual.Value,
		},
	}
	if record.InstalledAt != nil {
		formatted := record.InstalledAt.Format(dateLayout)
		view.InstalledAt = &formatted
	}
	if record.OfflineAt != nil {
		formatted := record.OfflineAt.Format(dateLayout)
		view.OfflineAt = &formatted
	}
	return view
}

// NewPlantViews derives rows for a whole record set.
func NewPlantViews(records []fleet.PlantRecord, eval time.Time) []PlantView {
	views := make([]PlantView, 0, len(records))
	for _, record := range records {
		views = append(views, NewPlantView(record, eval))
	}
	return views
}

// PeriodChart is the band chart for one period. BandApplied reports whether
// the selected band narrowed this chart's population.
type PeriodChart struct {
	Period      fleet.Period  `json:"period"`
	BandApplied bool          `json:"band_applied"`
	Plants      int           `json:"plants"`
	Buckets     []BucketCount `json:"buckets"`
}

// Dashboard is the full evaluated dashboard for one query.
type Dashboard struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source"`
	Checksum    string             `json:"checksum"`
	Summary     Summary            `json:"summary"`
	Warranty    []StatusCount      `json:"warranty_breakdown"`
	Operational []StatusCount      `json:"operational_breakdown"`
	Power       *PowerDistribution `json:"power_distribution"`
	Charts      []PeriodChart      `json:"generation_charts"`
	Plants      []PlantView        `json:"plants"`
	Warnings    []Warning          `json:"warnings,omitempty"`
}

// Overview is the lightweight fleet summary with dataset identity.
type Overview struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Checksum    string    `json:"checksum"`
	LoadedAt    time.Time `json:"loaded_at"`
	Rows        int       `json:"rows"`
	Summary     Summary   `json:"summary"`
}

// BucketReport is the standalone band chart for one period.
type BucketReport struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Period      fleet.Period         `json:"period"`
	Band        fleet.GenerationBand `json:"band"`
	Plants      int                  `json:"plants"`
	Buckets     []BucketCount        `json:"buckets"`
	Warnings    []Warning            `json:"warnings,omitempty"`
}

// ReloadResult reports the snapshot produced by a forced reload.
type ReloadResult struct {
	Source   string    `json:"source"`
	Checksum string    `json:"checksum"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}
