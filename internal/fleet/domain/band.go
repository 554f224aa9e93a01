package fleet

import "strings"

// GenerationBand is one of the fixed percentage ranges used to slice plants by
// their generation reading.
type GenerationBand string

const (
	BandAll     GenerationBand = "all"
	BandAbove90 GenerationBand = ">90%"
	Band80To90  GenerationBand = "80-90%"
	Band70To80  GenerationBand = "70-80%"
	Band60To70  GenerationBand = "60-70%"
	Band50To60  GenerationBand = "50-60%"
	BandBelow45 GenerationBand = "<45%"
)

// ChartBands lists the countable bands in chart order. BandAll is not a
// countable band; it selects every record.
var ChartBands = []GenerationBand{
	BandAbove90,
	Band80To90,
	Band70To80,
	Band60To70,
	Band50To60,
	BandBelow45,
}

// Contains reports whether a coerced reading falls inside the band. Decade
// bands cover (lower, upper]; values in (45, 50] satisfy no countable band.
func (b GenerationBand) Contains(value float64) bool {
	switch b {
	case BandAll:
		return true
	case BandAbove90:
		return value > 90
	case Band80To90:
		return value > 80 && value <= 90
	case Band70To80:
		return value > 70 && value <= 80
	case Band60To70:
		return value > 60 && value <= 70
	case Band50To60:
		return value > 50 && value <= 60
	case BandBelow45:
		return value < 45
	}
	return false
}

// ParseBand resolves a band token. Tokens are matched after lowering case and
// stripping spaces and percent signs, so ">90", "> 90 %" and ">90%" agree.
func ParseBand(value string) (GenerationBand, error) {
	token := strings.ToLower(strings.TrimSpace(value))
	token = strings.ReplaceAll(token, " ", "")
	token = strings.ReplaceAll(token, "%", "")
	switch token {
	case "", "all":
		return BandAll, nil
	case ">90":
		return BandAbove90, nil
	case "80-90":
		return Band80To90, nil
	case "70-80":
		return Band70To80, nil
	case "60-70":
		return Band60To70, nil
	case "50-60":
		return Band50To60, nil
	case "<45":
		return BandBelow45, nil
	}
	return "", ErrUnknownBand
}
