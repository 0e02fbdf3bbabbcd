package payslip

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
)

// Renderer writes payslips as PDF documents.
type Renderer struct {
	organizationName string
}

func NewRenderer(organizationName string) *Renderer {
	return &Renderer{organizationName: organizationName}
}

// Render writes one payslip to w as an A4 PDF.
func (r *Renderer) Render(w io.Writer, slip payroll.PayslipResponse) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if r.organizationName != "" {
		pdf.Cell(0, 8, r.organizationName)
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", slip.PeriodLabel))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	r.line(pdf, "Gross pay", slip.GrossPay.StringFixed(2))
	for _, item := range slip.Incentives {
		r.line(pdf, item.Name, item.Amount.StringFixed(2))
	}
	if !slip.NonTaxableAllowance.IsZero() {
		r.line(pdf, "Non-taxable allowance", slip.NonTaxableAllowance.StringFixed(2))
	}
	pdf.Ln(4)

	if len(slip.Deductions) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Deductions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range slip.Deductions {
			r.line(pdf, item.Name, item.Amount.Neg().StringFixed(2))
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	r.line(pdf, "Net pay", slip.NetPay.StringFixed(2))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Days worked: %s   Leave days: %s   Absences: %d",
		slip.Facts.DaysWorked, slip.Facts.LeaveDays, slip.Facts.Absences))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Late: %.0f min   Undertime: %.2f h   Overtime: %.2f h   Night diff: %.2f h",
		slip.Facts.LateMinutes, slip.Facts.UndertimeHours, slip.Facts.OvertimeHours, slip.Facts.NightDiffHours))

	return pdf.Output(w)
}

func (r *Renderer) line(pdf *gofpdf.Fpdf, name, amount string) {
	pdf.Cell(120, 7, name)
	pdf.CellFormat(40, 7, amount, "", 0, "R", false, 0, "")
	pdf.Ln(7)
}
