package fleet

import (
	"strings"
	"time"
)

// Period identifies one of the generation reading windows tracked per plant.
type Period string

const (
	PeriodDaily       Period = "daily"
	PeriodFortnightly Period = "fortnightly"
	PeriodMonthly     Period = "monthly"
	PeriodAnnual      Period = "annual"

	// PeriodAll selects every period at once.
	PeriodAll Period = "all"
)

// Periods lists the concrete reading periods in display order.
var Periods = []Period{PeriodDaily, PeriodFortnightly, PeriodMonthly, PeriodAnnual}

// ParsePeriod resolves a period token. Empty input selects all periods.
func ParsePeriod(value string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return PeriodAll, nil
	case "daily":
		return PeriodDaily, nil
	case "fortnightly":
		return PeriodFortnightly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "annual":
		return PeriodAnnual, nil
	}
	return "", ErrUnknownPeriod
}

// WarrantyStatus classifies a plant against its one-year installation warranty.
type WarrantyStatus string

const (
	WarrantyIn  WarrantyStatus = "in_warranty"
	WarrantyOut WarrantyStatus = "out_of_warranty"
)

// warrantyDays is the length of the installation warranty window.
const warrantyDays = 365

// ParseWarrantyFilter resolves a warranty filter token; nil means no filtering.
func ParseWarrantyFilter(value string) (*WarrantyStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return nil, nil
	case string(WarrantyIn):
		status := WarrantyIn
		return &status, nil
	case string(WarrantyOut):
		status := WarrantyOut
		return &status, nil
	}
	return nil, ErrUnknownWarrantyStatus
}

// OperationalStatus classifies a plant as online or offline.
type OperationalStatus string

const (
	StatusOnline  OperationalStatus = "online"
	StatusOffline OperationalStatus = "offline"
)

// ParseOperationalFilter resolves an operational filter token; nil means no filtering.
func ParseOperationalFilter(value string) (*OperationalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return nil, nil
	case string(StatusOnline):
		status := StatusOnline
		return &status, nil
	case string(StatusOffline):
		status := StatusOffline
		return &status, nil
	}
	return nil, ErrUnknownOperationalStatus
}

// Reading is one generation-percentage cell: the raw token as loaded and the
// numeric value it coerced to, when it did.
type Reading struct {
	Raw   string
	Value *float64
}

// PlantRecord is one row of the normalized fleet table. Pointer fields are nil
// when the source cell was empty or unparseable.
type PlantRecord struct {
	Name        string
	PowerKWp    *float64
	InstalledAt *time.Time
	OfflineAt   *time.Time

	Daily       Reading
	Fortnightly Reading
	Monthly     Reading
	Annual      Reading
}

// Generation returns the reading for one concrete period.
func (p PlantRecord) Generation(period Period) Reading {
	switch period {
	case PeriodDaily:
		return p.Daily
	case PeriodFortnightly:
		return p.Fortnightly
	case PeriodMonthly:
		return p.Monthly
	case PeriodAnnual:
		return p.Annual
	}
	return Reading{}
}

// WarrantyStatusAt derives the warranty status against an evaluation instant.
// A plant is out of warranty only when its installation date is known and lies
// strictly more than a year before the evaluation day; an unset installation
// date counts as in warranty.
func (p PlantRecord) WarrantyStatusAt(eval time.Time) WarrantyStatus {
	if p.InstalledAt == nil {
		return WarrantyIn
	}
	cutoff := eval.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -warrantyDays)
	if p.InstalledAt.Before(cutoff) {
		return WarrantyOut
	}
	return WarrantyIn
}

// OperationalStatus derives online or offline from the offline marker date.
func (p PlantRecord) OperationalStatus() OperationalStatus {
	if p.OfflineAt != nil {
		return StatusOffline
	}
	return StatusOnline
}
