package payslip

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
)

func TestRender(t *testing.T) {
	slip := payroll.PayslipResponse{
		ID:          "slip-1",
		EmployeeID:  "emp-1",
		PeriodLabel: "Mar 1 - Mar 15, 2026",
		GrossPay:    decimal.NewFromFloat(12137.93),
		Deductions: []payroll.LineItem{
			{Name: "SSS", Amount: decimal.NewFromInt(600), Type: payroll.LineItemStatutory},
			{Name: "Cash advance", Amount: decimal.NewFromInt(500), Type: payroll.LineItemManual},
		},
		Incentives: []payroll.LineItem{
			{Name: "Perfect attendance", Amount: decimal.NewFromInt(1000), Type: payroll.LineItemIncentive},
		},
		NonTaxableAllowance: decimal.NewFromInt(2000),
		NetPay:              decimal.NewFromFloat(14037.93),
		Facts: payroll.PayFacts{
			DaysWorked: decimal.NewFromInt(11),
		},
	}

	var buf bytes.Buffer
	err := NewRenderer("Silangan Ventures Inc.").Render(&buf, slip)
	require.NoError(t, err)

	assert.True(t, buf.Len() > 0)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output is a PDF document")
}
