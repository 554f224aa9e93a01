package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset source kinds accepted by Load.
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// Columns maps each logical fleet table column onto the header names accepted
// for it. Headers are matched case-insensitively after trimming.
type Columns struct {
	Name        []string `yaml:"name"`
	Power       []string `yaml:"power"`
	InstalledAt []string `yaml:"installed_at"`
	OfflineAt   []string `yaml:"offline_at"`
	Daily       []string `yaml:"daily"`
	Fortnightly []string `yaml:"fortnightly"`
	Monthly     []string `yaml:"monthly"`
	Annual      []string `yaml:"annual"`
}

// Config defines solarfleet runtime configuration.
type Config struct {
	HTTPAddr      string  `yaml:"http_addr"`
	DatasetSource string  `yaml:"dataset_source"`
	DatasetPath   string  `yaml:"dataset_path"`
	DatasetSheet  string  `yaml:"dataset_sheet"`
	CSVDelimiter  string  `yaml:"csv_delimiter"`
	DatabaseURL   string  `yaml:"database_url"`
	PlantsTable   string  `yaml:"plants_table"`
	JWTSecret     string  `yaml:"jwt_secret"`
	Columns       Columns `yaml:"columns"`
}

// DefaultColumns accepts the upstream spreadsheet headers, including the
// misspelled installation date header those files ship with, plus English
// fallbacks.
func DefaultColumns() Columns {
	return Columns{
		Name:        []string{"Nome da Planta", "Planta", "Name"},
		Power:       []string{"Potência do Sistema", "Potencia do Sistema", "System Power"},
		InstalledAt: []string{"Data de Instalção", "Data de Instalação", "Installation Date"},
		OfflineAt:   []string{"Data Off-Line", "Data Offline", "Offline Date"},
		Daily:       []string{"Geração % diária", "Geracao % diaria", "Daily Generation %"},
		Fortnightly: []string{"Geração % quinzenal", "Geracao % quinzenal", "Fortnightly Generation %"},
		Monthly:     []string{"Geração % mensal", "Geracao % mensal", "Monthly Generation %"},
		Annual:      []string{"Geração % anual", "Geracao % anual", "Annual Generation %"},
	}
}

// Load loads config from env, overlaid by the yaml file named in
// SOLARFLEET_CONFIG when set.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":8080"),
		DatasetSource: getenvDefault("DATASET_SOURCE", SourceCSV),
		DatasetPath:   os.Getenv("DATASET_PATH"),
		DatasetSheet:  getenvDefault("XLSX_SHEET", ""),
		CSVDelimiter:  getenvDefault("CSV_DELIMITER", ";"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PlantsTable:   getenvDefault("PLANTS_TABLE", "plants"),
		JWTSecret:     getenvDefault("AUTH_JWT_SECRET", "dev-secret"),
	}

	if path := os.Getenv("SOLARFLEET_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.DatasetSource = strings.ToLower(strings.TrimSpace(cfg.DatasetSource))
	cfg.Columns = mergeColumns(DefaultColumns(), cfg.Columns)

	switch cfg.DatasetSource {
	case SourceCSV, SourceXLSX:
		if cfg.DatasetPath == "" {
			return cfg, errors.New("config: dataset path required")
		}
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("config: database url required")
		}
	default:
		return cfg, fmt.Errorf("config: unknown dataset source %q", cfg.DatasetSource)
	}
	if len(cfg.CSVDelimiter) != 1 {
		return cfg, fmt.Errorf("config: csv delimiter must be one character, got %q", cfg.CSVDelimiter)
	}
	return cfg, nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c Config) Delimiter() rune {
	if c.CSVDelimiter == "" {
		return ';'
	}
	return rune(c.CSVDelimiter[0])
}

func mergeColumns(base, override Columns) Columns {
	if len(override.Name) > 0 {
		base.Name = override.Name
	}
	if len(override.Power) > 0 {
		base.Power = override.Power
	}
	if len(override.InstalledAt) > 0 {
		base.InstalledAt = override.InstalledAt
	}
	if len(override.OfflineAt) > 0 {
		base.OfflineAt = override.OfflineAt
	}
	if len(override.Daily) > 0 {
		base.Daily = override.Daily
	}
	if len(override.Fortnightly) > 0 {
		base.Fortnightly = override.Fortnightly
	}
	if len(override.Monthly) > 0 {
		base.Monthly = override.Monthly
	}
	if len(override.Annual) > 0 {
		base.Annual = override.Annual
	}
	return base
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
