package application

import "errors"

var (
	// ErrDatasetUnavailable means the dataset could not be loaded or reloaded.
	ErrDatasetUnavailable = errors.New("application: dataset unavailable")
)
