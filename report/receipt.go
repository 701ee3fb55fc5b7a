package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"facultypay/models"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

type ReceiptData struct {
	Institution string
	Faculty     models.Faculty
	Month       string
	Entries     []models.WorkloadEntry
	IssuedAt    time.Time
}

// Receipt describes a rendered receipt.
type Receipt struct {
	Number   string
	Filename string
}

var receiptColumns = []struct {
	title string
	width float64
}{
	{"Date", 23},
	{"Subject", 38},
	{"Activity", 23},
	{"Time", 30},
	{"Hours", 18},
	{"Rate/Hr", 20},
	{"Pay", 24},
}

// ReceiptFilename is the download name for a faculty member's receipt.
func ReceiptFilename(name, month string) string {
	return fmt.Sprintf("receipt_%s_%s.pdf", strings.ReplaceAll(name, " ", "_"), month)
}

// WriteReceipt renders the monthly payment receipt for data to w. The
// amounts are read from the stored entries; totals come from the
// workload aggregator.
func WriteReceipt(w io.Writer, data ReceiptData) (*Receipt, error) {
	if len(data.Entries) == 0 {
		return nil, fmt.Errorf("no entries for %s", data.Month)
	}
	issued := data.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	number := strings.ToUpper(uuid.NewString()[:8])

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTopMargin(12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.MultiCell(0, 7, data.Institution, "", "C", false)
	pdf.Ln(3)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Monthly Payment Receipt - "+data.Month, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Receipt No. %s   Issued %s", number, issued.Format(displayDate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	info := [][2]string{
		{"Faculty Name:", data.Faculty.Name},
		{"Department:", data.Faculty.Department},
		{"Email:", data.Faculty.Email},
		{"Month:", data.Month},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(38, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(100, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetDrawColor(128, 128, 128)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range receiptColumns {
		pdf.CellFormat(col.width, 10, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for i := range data.Entries {
		e := &data.Entries[i]
		cells := []string{
			FormatDate(e.WorkDate),
			truncate(e.SubjectName(), 20),
			Capitalize(string(e.ActivityType)),
			e.StartTime + "-" + e.EndTime,
			fmt.Sprintf("%.2f", e.DurationHours),
			formatAmount(e.HourlyRate),
			formatAmount(e.DailyPay),
		}
		for j, col := range receiptColumns {
			pdf.CellFormat(col.width, 7, cells[j], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	summary := summarize(data.Entries)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{"", "", "", "TOTAL:", fmt.Sprintf("%.2f", summary.TotalHours), "", formatAmount(summary.TotalPay)}
	for j, col := range receiptColumns {
		pdf.CellFormat(col.width, 8, totals[j], "1", 0, "C", true, 0, "")
	}
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Working days: %d", summary.UniqueDays), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "This is a computer-generated receipt.", "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return nil, fmt.Errorf("rendering receipt: %w", err)
	}
	return &Receipt{
		Number:   number,
		Filename: ReceiptFilename(data.Faculty.Name, data.Month),
	}, nil
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// formatAmount renders whole currency units. The core PDF fonts have no
// rupee glyph.
func formatAmount(v int64) string {
	return fmt.Sprintf("Rs. %d", v)
}
