package fleet

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats accepted for installation and offline dates, in
// the order they are tried.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseNumberCell coerces a plain numeric cell. Malformed or empty input
// yields nil rather than an error.
func ParseNumberCell(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParsePercentCell coerces a generation-percentage cell. Percent signs are
// stripped and comma decimal separators normalized to dots before parsing;
// malformed or empty input yields nil rather than an error.
func ParsePercentCell(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	trimmed = strings.ReplaceAll(trimmed, "%", "")
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	trimmed = strings.TrimSpace(trimmed)
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseDateCell coerces a date cell, trying each accepted layout in turn.
// Malformed or empty input yields nil rather than an error.
func ParseDateCell(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	return nil
}

// NewReading builds a generation reading from a raw cell, keeping the trimmed
// token alongside its coerced value.
func NewReading(raw string) Reading {
	return Reading{Raw: strings.TrimSpace(raw), Value: ParsePercentCell(raw)}
}
