// Package report renders workload data into downloadable documents:
// the monthly PDF payment receipt and the CSV/XLSX month exports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"facultypay/models"
	"facultypay/workload"

	"github.com/xuri/excelize/v2"
)

const displayDate = "02-01-2006"

// FormatDate renders a work date the way receipts and exports show it.
func FormatDate(t time.Time) string {
	return t.Format(displayDate)
}

var exportHeader = []string{
	"Faculty", "Department", "Date", "Subject", "Activity",
	"Start", "End", "Hours", "Rate/Hr", "Pay",
}

// Capitalize upper-cases the first letter of an activity name.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func exportRecord(e *models.WorkloadEntry) []string {
	department := ""
	if e.Faculty != nil {
		department = e.Faculty.Department
	}
	return []string{
		e.FacultyName(),
		department,
		FormatDate(e.WorkDate),
		e.SubjectName(),
		Capitalize(string(e.ActivityType)),
		e.StartTime,
		e.EndTime,
		fmt.Sprintf("%.2f", e.DurationHours),
		fmt.Sprintf("%d", e.HourlyRate),
		fmt.Sprintf("%d", e.DailyPay),
	}
}

func summarize(entries []models.WorkloadEntry) workload.MonthlySummary {
	calc := make([]workload.Entry, 0, len(entries))
	for i := range entries {
		calc = append(calc, entries[i].Calc())
	}
	return workload.AggregateMonth(calc)
}

// WriteCSV writes entries followed by a TOTAL row.
func WriteCSV(w io.Writer, entries []models.WorkloadEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for i := range entries {
		if err := writer.Write(exportRecord(&entries[i])); err != nil {
			return err
		}
	}

	summary := summarize(entries)
	total := []string{"TOTAL", "", "", "", "", "", "",
		fmt.Sprintf("%.2f", summary.TotalHours), "", fmt.Sprintf("%d", summary.TotalPay)}
	if err := writer.Write(total); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes entries to a single-sheet workbook with numeric hour,
// rate and pay cells and a bold TOTAL row.
func WriteXLSX(w io.Writer, entries []models.WorkloadEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Workload"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := range entries {
		e := &entries[i]
		text := exportRecord(e)
		row := []interface{}{
			text[0], text[1], text[2], text[3], text[4], text[5], text[6],
			e.DurationHours, e.HourlyRate, e.DailyPay,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	summary := summarize(entries)
	totalRow := len(entries) + 2
	first, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeader), totalRow)
	if err != nil {
		return err
	}
	total := []interface{}{"TOTAL", "", "", "", "", "", "", summary.TotalHours, "", summary.TotalPay}
	if err := f.SetSheetRow(sheet, first, &total); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "J1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return err
	}

	return f.Write(w)
}
