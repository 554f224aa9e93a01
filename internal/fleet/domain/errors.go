package fleet

import "errors"

var (
	// ErrUnknownPeriod is returned for period tokens outside the four readings.
	ErrUnknownPeriod = errors.New("fleet: unknown generation period")
	// ErrUnknownBand is returned for unrecognized generation band tokens.
	ErrUnknownBand = errors.New("fleet: unknown generation band")
	// ErrUnknownWarrantyStatus is returned for unrecognized warranty filter tokens.
	ErrUnknownWarrantyStatus = errors.New("fleet: unknown warranty status")
	// ErrUnknownOperationalStatus is returned for unrecognized operational filter tokens.
	ErrUnknownOperationalStatus = errors.New("fleet: unknown operational status")
	// ErrNilSnapshot is returned when an operation requires a loaded dataset.
	ErrNilSnapshot = errors.New("fleet: nil snapshot")
	// ErrPeriodRequired is returned when an operation needs one concrete period.
	ErrPeriodRequired = errors.New("fleet: a concrete period is required")
)
