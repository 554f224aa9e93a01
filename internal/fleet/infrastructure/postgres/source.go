package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"solarfleet-cloud/internal/checksum"
	fleet "solarfleet-cloud/internal/fleet/domain"
)

const defaultPlantsTable = "plants"

// PlantSource loads the fleet table from a Postgres projection of the
// upstream spreadsheet. Cells are stored as raw text and coerced with the
// same tolerant rules as the file sources.
type PlantSource struct {
	db    *sql.DB
	table string
}

// NewPlantSource constructs a source reading the default plants table.
func NewPlantSource(db *sql.DB, opts ...SourceOption) *PlantSource {
	src := &PlantSource{db: db, table: defaultPlantsTable}
	for _, opt := range opts {
		opt(src)
	}
	return src
}

// SourceOption configures the source.
type SourceOption func(*PlantSource)

// WithTable overrides the default table name.
func WithTable(table string) SourceOption {
	return func(src *PlantSource) {
		if table != "" {
			src.table = table
		}
	}
}

// Name implements fleet.Source.
func (s *PlantSource) Name() string {
	return "postgres:" + s.table
}

// Load implements fleet.Source.
func (s *PlantSource) Load(ctx context.Context) (*fleet.Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("plant source: nil db")
	}

	query := fmt.Sprintf(`
SELECT
	name,
	system_power,
	installed_at,
	offline_at,
	daily_pct,
	fortnightly_pct,
	monthly_pct,
	annual_pct
FROM %s
ORDER BY name`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []fleet.PlantRecord
	var digest []string
	for rows.Next() {
		var name, power, installed, offline, daily, fortnightly, monthly, annual sql.NullString
		if err := rows.Scan(&name, &power, &installed, &offline, &daily, &fortnightly, &monthly, &annual); err != nil {
			return nil, err
		}
		records = append(records, fleet.PlantRecord{
			Name:        strings.TrimSpace(name.String),
			PowerKWp:    fleet.ParseNumberCell(power.String),
			InstalledAt: fleet.ParseDateCell(installed.String),
			OfflineAt:   fleet.ParseDateCell(offline.String),
			Daily:       fleet.NewReading(daily.String),
			Fortnightly: fleet.NewReading(fortnightly.String),
			Monthly:     fleet.NewReading(monthly.String),
			Annual:      fleet.NewReading(annual.String),
		})
		digest = append(digest, strings.Join([]string{
			name.String, power.String, installed.String, offline.String,
			daily.String, fortnightly.String, monthly.String, annual.String,
		}, "|"))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &fleet.Snapshot{
		Records:    records,
		Columns:    tableColumnSet(),
		SourceName: s.Name(),
		Checksum:   s.Name() + ":" + checksum.Records(digest),
		LoadedAt:   time.Now().UTC(),
	}, nil
}

// tableColumnSet reports every logical column present; the table schema is
// fixed, unlike spreadsheet headers.
func tableColumnSet() fleet.ColumnSet {
	return fleet.ColumnSet{
		Name:        true,
		Power:       true,
		InstalledAt: true,
		OfflineAt:   true,
		Generation: map[fleet.Period]bool{
			fleet.PeriodDaily:       true,
			fleet.PeriodFortnightly: true,
			fleet.PeriodMonthly:     true,
			fleet.PeriodAnnual:      true,
		},
	}
}
