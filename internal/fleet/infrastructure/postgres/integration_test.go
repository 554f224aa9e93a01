package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	fleet "solarfleet-cloud/internal/fleet/domain"
	fleetpostgres "solarfleet-cloud/internal/fleet/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestPlantSourceLoadFromPostgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	table := "plants_source_test"

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS `+table+` (
	name TEXT,
	system_power TEXT,
	installed_at TEXT,
	offline_at TEXT,
	daily_pct TEXT,
	fortnightly_pct TEXT,
	monthly_pct TEXT,
	annual_pct TEXT
)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	defer func() {
		_, _ = db.ExecContext(ctx, `DROP TABLE IF EXISTS `+table)
	}()
	if _, err := db.ExecContext(ctx, `TRUNCATE `+table); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	if _, err := db.ExecContext(ctx, `
INSERT INTO `+table+` (name, system_power, installed_at, offline_at, daily_pct, fortnightly_pct, monthly_pct, annual_pct)
VALUES
	('Alpha', '75.6', '2023-01-10', NULL, '95%', '92%', '91,5%', '89%'),
	('Beta', 'oops', '2021-05-02', '2024-02-01', '48', NULL, 'nd', '47,2')`); err != nil {
		t.Fatalf("insert rows: %v", err)
	}

	src := fleetpostgres.NewPlantSource(db, fleetpostgres.WithTable(table))
	snap, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap.RowCount() != 2 {
		t.Fatalf("expected 2 records, got %d", snap.RowCount())
	}

	alpha := snap.Records[0]
	if alpha.Name != "Alpha" || alpha.PowerKWp == nil || *alpha.PowerKWp != 75.6 {
		t.Fatalf("unexpected first record %+v", alpha)
	}
	if alpha.Monthly.Value == nil || *alpha.Monthly.Value != 91.5 {
		t.Fatalf("expected monthly 91.5, got %v", alpha.Monthly.Value)
	}
	if alpha.OperationalStatus() != fleet.StatusOnline {
		t.Fatalf("expected Alpha online")
	}

	beta := snap.Records[1]
	if beta.PowerKWp != nil || beta.Monthly.Value != nil {
		t.Fatalf("expected unparseable cells to coerce to missing, got %+v", beta)
	}
	if beta.OperationalStatus() != fleet.StatusOffline {
		t.Fatalf("expected Beta offline")
	}

	if !snap.Columns.HasGeneration(fleet.PeriodAnnual) {
		t.Fatalf("expected fixed schema to report all columns")
	}
	if snap.Checksum == "" {
		t.Fatalf("expected content checksum")
	}
}
