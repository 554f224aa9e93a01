package application

import (
	"fmt"
	"time"

	fleet "solarfleet-cloud/internal/fleet/domain"
)

// Warning codes reported on degraded queries.
const (
	WarnColumnMissing = "generation_column_missing"
	WarnNoNumericData = "no_numeric_generation_data"
)

// Warning describes a degraded step of a query. Degraded queries still
// succeed; the warning tells the caller which part fell back.
type Warning struct {
	Code    string `json:"code"`
	Period  string `json:"period,omitempty"`
	Message string `json:"message"`
}

func missingColumnWarning(period fleet.Period) Warning {
	return Warning{
		Code:    WarnColumnMissing,
		Period:  string(period),
		Message: fmt.Sprintf("generation column for period %q is not present in the dataset", period),
	}
}

func noNumericDataWarning(period fleet.Period) Warning {
	return Warning{
		Code:    WarnNoNumericData,
		Period:  string(period),
		Message: fmt.Sprintf("no numeric generation values for period %q after coercion", period),
	}
}

// Filters carries a parsed dashboard query.
type Filters struct {
	Warranty    *fleet.WarrantyStatus
	Operational *fleet.OperationalStatus
	Period      fleet.Period
	Band        fleet.GenerationBand
}

// FilterByStatus narrows records to those matching the warranty and
// operational filters. Statuses are derived against eval on every call, never
// read from stored state. Nil filters select everything.
func FilterByStatus(records []fleet.PlantRecord, warranty *fleet.WarrantyStatus, operational *fleet.OperationalStatus, eval time.Time) []fleet.PlantRecord {
	if warranty == nil && operational == nil {
		return records
	}
	filtered := make([]fleet.PlantRecord, 0, len(records))
	for _, record := range records {
		if warranty != nil && record.WarrantyStatusAt(eval) != *warranty {
			continue
		}
		if operational != nil && record.OperationalStatus() != *operational {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// FilterByBand narrows records to those whose reading for the period falls
// inside the band. The all band is the identity and keeps records without a
// coercible reading. When the period column is absent the input is returned
// unchanged with a warning; when every reading coerces to missing the result
// is empty with a warning.
func FilterByBand(records []fleet.PlantRecord, columns fleet.ColumnSet, period fleet.Period, band fleet.GenerationBand) ([]fleet.PlantRecord, []Warning) {
	if band == fleet.BandAll {
		return records, nil
	}
	if !columns.HasGeneration(period) {
		return records, []Warning{missingColumnWarning(period)}
	}

	usable := make([]fleet.PlantRecord, 0, len(records))
	for _, record := range records {
		if record.Generation(period).Value != nil {
			usable = append(usable, record)
		}
	}
	if len(usable) == 0 {
		return []fleet.PlantRecord{}, []Warning{noNumericDataWarning(period)}
	}

	filtered := make([]fleet.PlantRecord, 0, len(usable))
	for _, record := range usable {
		if band.Contains(*record.Generation(period).Value) {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

// BucketCount is one generation band with its population.
type BucketCount struct {
	Band  fleet.GenerationBand `json:"band"`
	Count int                  `json:"count"`
}

// CountBuckets tallies records into the chart bands in fixed order. Records
// without a coercible reading for the period are skipped; bands that match
// nothing are still reported with a zero count.
func CountBuckets(records []fleet.PlantRecord, period fleet.Period) []BucketCount {
	counts := make([]BucketCount, len(fleet.ChartBands))
	for i, band := range fleet.ChartBands {
		counts[i] = BucketCount{Band: band}
	}
	for _, record := range records {
		value := record.Generation(period).Value
		if value == nil {
			continue
		}
		for i, band := range fleet.ChartBands {
			if band.Contains(*value) {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}
