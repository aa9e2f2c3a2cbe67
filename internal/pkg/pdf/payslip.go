package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// GeneratePayslip renders a payroll record as an A4 payslip document.
func GeneratePayslip(rec payroll.PayrollRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if rec.EmployeeName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", *rec.EmployeeName))
		pdf.Ln(7)
	}
	if rec.EmployeeEmail != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", *rec.EmployeeEmail))
		pdf.Ln(7)
	}
	period := time.Date(rec.PeriodYear, time.Month(rec.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %s", rec.BasicSalary.StringFixed(2)))
	pdf.Ln(7)
	for _, name := range sortedKeys(rec.AllowancesDetail) {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s", name, rec.AllowancesDetail[name].StringFixed(2)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", rec.GrossSalary.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	for _, name := range sortedKeys(rec.DeductionsDetail) {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s", name, rec.DeductionsDetail[name].StringFixed(2)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %s", rec.TotalDeductions.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", rec.NetSalary.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	return buf.Bytes(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
