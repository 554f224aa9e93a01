package interfaces

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"solarfleet-cloud/internal/fleet/application"
	fleet "solarfleet-cloud/internal/fleet/domain"
)

// BuildPlantsXLSX renders a workbook with a summary sheet and the filtered
// plant table.
func BuildPlantsXLSX(dashboard *application.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	plantsSheet := "plants"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(plantsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Solar Fleet Report")
	_ = f.SetCellValue(summarySheet, "A3", "Source")
	_ = f.SetCellValue(summarySheet, "B3", dashboard.Source)
	_ = f.SetCellValue(summarySheet, "A4", "Checksum")
	_ = f.SetCellValue(summarySheet, "B4", dashboard.Checksum)
	_ = f.SetCellValue(summarySheet, "A5", "Generated")
	_ = f.SetCellValue(summarySheet, "B5", dashboard.GeneratedAt.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A6", "Total Plants")
	_ = f.SetCellValue(summarySheet, "B6", dashboard.Summary.TotalPlants)
	_ = f.SetCellValue(summarySheet, "A7", "Online")
	_ = f.SetCellValue(summarySheet, "B7", dashboard.Summary.Online)
	_ = f.SetCellValue(summarySheet, "A8", "Offline")
	_ = f.SetCellValue(summarySheet, "B8", dashboard.Summary.Offline)
	_ = f.SetCellValue(summarySheet, "A9", "Filtered Plants")
	_ = f.SetCellValue(summarySheet, "B9", len(dashboard.Plants))
	if dashboard.Power != nil {
		_ = f.SetCellValue(summarySheet, "A11", "Power Min (kWp)")
		_ = f.SetCellValue(summarySheet, "B11", dashboard.Power.Min)
		_ = f.SetCellValue(summarySheet, "A12", "Power Median (kWp)")
		_ = f.SetCellValue(summarySheet, "B12", dashboard.Power.Median)
		_ = f.SetCellValue(summarySheet, "A13", "Power Max (kWp)")
		_ = f.SetCellValue(summarySheet, "B13", dashboard.Power.Max)
		_ = f.SetCellValue(summarySheet, "A14", "Power Mean (kWp)")
		_ = f.SetCellValue(summarySheet, "B14", dashboard.Power.Mean)
	}

	headers := []string{
		"Name", "Power (kWp)", "Installed", "Offline",
		"Warranty", "Status", "Daily %", "Fortnightly %", "Monthly %", "Annual %",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(plantsSheet, cell, header)
	}
	for i, plant := range dashboard.Plants {
		row := i + 2
		_ = f.SetCellValue(plantsSheet, fmt.Sprintf("A%d", row), plant.Name)
		setOptionalFloat(f, plantsSheet, fmt.Sprintf("B%d", row), plant.PowerKWp)
		setOptionalString(f, plantsSheet, fmt.Sprintf("C%d", row), plant.InstalledAt)
		setOptionalString(f, plantsSheet, fmt.Sprintf("D%d", row), plant.OfflineAt)
		_ = f.SetCellValue(plantsSheet, fmt.Sprintf("E%d", row), plant.WarrantyStatus)
		_ = f.SetCellValue(plantsSheet, fmt.Sprintf("F%d", row), plant.OperationalStatus)
		setOptionalFloat(f, plantsSheet, fmt.Sprintf("G%d", row), plant.Generation[string(fleet.PeriodDaily)])
		setOptionalFloat(f, plantsSheet, fmt.Sprintf("H%d", row), plant.Generation[string(fleet.PeriodFortnightly)])
		setOptionalFloat(f, plantsSheet, fmt.Sprintf("I%d", row), plant.Generation[string(fleet.PeriodMonthly)])
		setOptionalFloat(f, plantsSheet, fmt.Sprintf("J%d", row), plant.Generation[string(fleet.PeriodAnnual)])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFleetReportPDF renders the fleet summary and the band table for each
// generation period.
func BuildFleetReportPDF(dashboard *application.Dashboard) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Solar Fleet Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Source: %s", dashboard.Source))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Checksum: %s", dashboard.Checksum))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", dashboard.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Plants: %d total, %d online, %d offline",
		dashboard.Summary.TotalPlants, dashboard.Summary.Online, dashboard.Summary.Offline))
	pdf.Ln(5)
	if dashboard.Power != nil {
		pdf.Cell(0, 6, fmt.Sprintf("System power (kWp): min %.2f median %.2f max %.2f",
			dashboard.Power.Min, dashboard.Power.Median, dashboard.Power.Max))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	for _, chart := range dashboard.Charts {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("%s generation (%d plants)", string(chart.Period), chart.Plants))
		pdf.Ln(7)
		pdf.CellFormat(50, 6, "Band", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Plants", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, bucket := range chart.Buckets {
			pdf.CellFormat(50, 6, string(bucket.Band), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, strconv.Itoa(bucket.Count), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setOptionalFloat(f *excelize.File, sheet, cell string, value *float64) {
	if value == nil {
		return
	}
	_ = f.SetCellValue(sheet, cell, *value)
}

func setOptionalString(f *excelize.File, sheet, cell string, value *string) {
	if value == nil {
		return
	}
	_ = f.SetCellValue(sheet, cell, *value)
}
