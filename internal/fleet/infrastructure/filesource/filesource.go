package filesource

import (
	"strings"

	"solarfleet-cloud/internal/config"
	fleet "solarfleet-cloud/internal/fleet/domain"
)

// headerIndex resolves configured header aliases against the actual header
// row. Absent columns carry index -1.
type headerIndex struct {
	name       int
	power      int
	installed  int
	offline    int
	generation map[fleet.Period]int
}

func buildHeaderIndex(header []string, columns config.Columns) headerIndex {
	index := headerIndex{
		name:      -1,
		power:     -1,
		installed: -1,
		offline:   -1,
		generation: map[fleet.Period]int{
			fleet.PeriodDaily:       -1,
			fleet.PeriodFortnightly: -1,
			fleet.PeriodMonthly:     -1,
			fleet.PeriodAnnual:      -1,
		},
	}
	positions := make(map[string]int, len(header))
	for i, label := range header {
		key := normalizeHeader(label)
		if key == "" {
			continue
		}
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}
	index.name = lookupHeader(positions, columns.Name)
	index.power = lookupHeader(positions, columns.Power)
	index.installed = lookupHeader(positions, columns.InstalledAt)
	index.offline = lookupHeader(positions, columns.OfflineAt)
	index.generation[fleet.PeriodDaily] = lookupHeader(positions, columns.Daily)
	index.generation[fleet.PeriodFortnightly] = lookupHeader(positions, columns.Fortnightly)
	index.generation[fleet.PeriodMonthly] = lookupHeader(positions, columns.Monthly)
	index.generation[fleet.PeriodAnnual] = lookupHeader(positions, columns.Annual)
	return index
}

func lookupHeader(positions map[string]int, aliases []string) int {
	for _, alias := range aliases {
		if i, ok := positions[normalizeHeader(alias)]; ok {
			return i
		}
	}
	return -1
}

func normalizeHeader(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func (h headerIndex) columnSet() fleet.ColumnSet {
	return fleet.ColumnSet{
		Name:        h.name >= 0,
		Power:       h.power >= 0,
		InstalledAt: h.installed >= 0,
		OfflineAt:   h.offline >= 0,
		Generation: map[fleet.Period]bool{
			fleet.PeriodDaily:       h.generation[fleet.PeriodDaily] >= 0,
			fleet.PeriodFortnightly: h.generation[fleet.PeriodFortnightly] >= 0,
			fleet.PeriodMonthly:     h.generation[fleet.PeriodMonthly] >= 0,
			fleet.PeriodAnnual:      h.generation[fleet.PeriodAnnual] >= 0,
		},
	}
}

// cell returns the row value at idx, or the empty string when the column is
// absent or the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func recordFromRow(row []string, index headerIndex) fleet.PlantRecord {
	return fleet.PlantRecord{
		Name:        strings.TrimSpace(cell(row, index.name)),
		PowerKWp:    fleet.ParseNumberCell(cell(row, index.power)),
		InstalledAt: fleet.ParseDateCell(cell(row, index.installed)),
		OfflineAt:   fleet.ParseDateCell(cell(row, index.offline)),
		Daily:       fleet.NewReading(cell(row, index.generation[fleet.PeriodDaily])),
		Fortnightly: fleet.NewReading(cell(row, index.generation[fleet.PeriodFortnightly])),
		Monthly:     fleet.NewReading(cell(row, index.generation[fleet.PeriodMonthly])),
		Annual:      fleet.NewReading(cell(row, index.generation[fleet.PeriodAnnual])),
	}
}

func snapshotFromRows(rows [][]string, columns config.Columns) ([]fleet.PlantRecord, fleet.ColumnSet) {
	if len(rows) == 0 {
		return nil, buildHeaderIndex(nil, columns).columnSet()
	}
	index := buildHeaderIndex(rows[0], columns)
	records := make([]fleet.PlantRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		records = append(records, recordFromRow(row, index))
	}
	return records, index.columnSet()
}

func emptyRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
