package application

import (
	"time"

	"github.com/go-gota/gota/series"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

// Summary holds fleet-wide counters. It is always computed over the full
// dataset, regardless of any active filters.
type Summary struct {
	TotalPlants int `json:"total_plants"`
	Online      int `json:"online"`
	Offline     int `json:"offline"`
}

// Summarize counts the fleet and its operational split.
func Summarize(records []fleet.PlantRecord) Summary {
	summary := Summary{TotalPlants: len(records)}
	for _, record := range records {
		if record.OperationalStatus() == fleet.StatusOffline {
			summary.Offline++
		} else {
			summary.Online++
		}
	}
	return summary
}

// StatusCount is one derived status with its population.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CountWarranty tallies records by warranty status derived against eval.
// Both statuses are always reported, zeros included.
func CountWarranty(records []fleet.PlantRecord, eval time.Time) []StatusCount {
	counts := []StatusCount{
		{Status: string(fleet.WarrantyIn)},
		{Status: string(fleet.WarrantyOut)},
	}
	for _, record := range records {
		if record.WarrantyStatusAt(eval) == fleet.WarrantyOut {
			counts[1].Count++
		} else {
			counts[0].Count++
		}
	}
	return counts
}

// CountOperational tallies records by operational status. Both statuses are
// always reported, zeros included.
func CountOperational(records []fleet.PlantRecord) []StatusCount {
	counts := []StatusCount{
		{Status: string(fleet.StatusOnline)},
		{Status: string(fleet.StatusOffline)},
	}
	for _, record := range records {
		if record.OperationalStatus() == fleet.StatusOffline {
			counts[1].Count++
		} else {
			counts[0].Count++
		}
	}
	return counts
}

// PowerDistribution summarizes the system power column of a record set with
// box plot statistics.
type PowerDistribution struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// PowerStats computes box plot statistics over the coercible power values of
// a record set. It returns nil when no record carries one.
func PowerStats(records []fleet.PlantRecord) *PowerDistribution {
	values := make([]float64, 0, len(records))
	for _, record := range records {
		if record.PowerKWp != nil {
			values = append(values, *record.PowerKWp)
		}
	}
	if len(values) == 0 {
		return nil
	}

	powers := series.New(values, series.Float, "system_power")
	return &PowerDistribution{
		Count:  len(values),
		Min:    powers.Min(),
		Q1:     powers.Quantile(0.25),
		Median: powers.Median(),
		Q3:     powers.Quantile(0.75),
		Max:    powers.Max(),
		Mean:   powers.Mean(),
	}
}
