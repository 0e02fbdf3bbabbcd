package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
)

// schemeDisplayNames are the payslip line names for computed statutory
// deductions.
var schemeDisplayNames = map[statutory.Scheme]string{
	statutory.SchemeSSS:            "SSS",
	statutory.SchemePhilHealth:     "PhilHealth",
	statutory.SchemePagIBIG:        "Pag-IBIG",
	statutory.SchemeWithholdingTax: "Withholding Tax",
}

// StatutoryResult is one scheme's raw bracket lookup for an employee, before
// enable/frequency rules are applied.
type StatutoryResult struct {
	Scheme       statutory.Scheme
	Contribution statutory.Contribution
}

// AssemblerInput is everything the net-pay step consumes. Attendance-derived
// facts are deliberately absent: editing a payslip re-runs only this step
// against the already-computed gross pay.
type AssemblerInput struct {
	GrossPay          decimal.Decimal
	Statutory         []StatutoryResult
	DeductionsEnabled bool
	Overrides         payroll.EmployeeOverrides
}

// PayslipTotals is the assembled deduction/incentive line-item set and the
// resulting net pay.
type PayslipTotals struct {
	Deductions          []payroll.LineItem
	Incentives          []payroll.LineItem
	NonTaxableAllowance decimal.Decimal
	NetPay              decimal.Decimal
}

// AssembleNetPay merges statutory deductions, manual deductions, incentives,
// and the non-taxable allowance into the final line-item set:
//
//	net = gross + incentives + nonTaxableAllowance - statutory - manual
//
// The run-level DeductionsEnabled flag being false suppresses every statutory
// deduction regardless of per-employee overrides; otherwise a per-scheme
// override wins over the default-enabled behavior, and a half frequency
// splits the monthly contribution across two semi-monthly cutoffs. Pure and
// idempotent: the same input always assembles the same totals.
func AssembleNetPay(in AssemblerInput) PayslipTotals {
	out := PayslipTotals{
		Deductions:          make([]payroll.LineItem, 0, len(in.Statutory)+len(in.Overrides.Deductions)),
		Incentives:          make([]payroll.LineItem, 0, len(in.Overrides.Incentives)),
		NonTaxableAllowance: in.Overrides.NonTaxableAllowance,
	}

	totalDeductions := decimal.Zero
	for _, result := range in.Statutory {
		amount, enabled := applySchemeRules(result, in.DeductionsEnabled, in.Overrides.Schemes)
		if !enabled {
			continue
		}
		name := schemeDisplayNames[result.Scheme]
		if name == "" {
			name = string(result.Scheme)
		}
		out.Deductions = append(out.Deductions, payroll.LineItem{
			Name:   name,
			Amount: amount,
			Type:   payroll.LineItemStatutory,
		})
		totalDeductions = totalDeductions.Add(amount)
	}

	for _, d := range in.Overrides.Deductions {
		item := d
		if item.Type == "" {
			item.Type = payroll.LineItemManual
		}
		out.Deductions = append(out.Deductions, item)
		totalDeductions = totalDeductions.Add(item.Amount)
	}

	totalIncentives := decimal.Zero
	for _, i := range in.Overrides.Incentives {
		item := i
		if item.Type == "" {
			item.Type = payroll.LineItemIncentive
		}
		out.Incentives = append(out.Incentives, item)
		totalIncentives = totalIncentives.Add(item.Amount)
	}

	out.NetPay = in.GrossPay.
		Add(totalIncentives).
		Add(out.NonTaxableAllowance).
		Sub(totalDeductions).
		Round(2)

	return out
}

// RecomputeNetPay rebuilds a payslip's totals after an override edit. Stored
// statutory lines carry over verbatim; only the manual deductions, incentives,
// and non-taxable allowance are replaced. Gross pay and the attendance-derived
// facts are never touched.
func RecomputeNetPay(slip payroll.Payslip, manual, incentives []payroll.LineItem, nonTaxable decimal.Decimal) payroll.Payslip {
	deductions := make([]payroll.LineItem, 0, len(slip.Deductions)+len(manual))
	totalDeductions := decimal.Zero
	for _, d := range slip.Deductions {
		if d.Type != payroll.LineItemStatutory {
			continue
		}
		deductions = append(deductions, d)
		totalDeductions = totalDeductions.Add(d.Amount)
	}
	for _, d := range manual {
		item := d
		item.Type = payroll.LineItemManual
		deductions = append(deductions, item)
		totalDeductions = totalDeductions.Add(item.Amount)
	}

	totalIncentives := decimal.Zero
	kept := make([]payroll.LineItem, 0, len(incentives))
	for _, i := range incentives {
		item := i
		if item.Type == "" {
			item.Type = payroll.LineItemIncentive
		}
		kept = append(kept, item)
		totalIncentives = totalIncentives.Add(item.Amount)
	}

	slip.Deductions = deductions
	slip.Incentives = kept
	slip.NonTaxableAllowance = nonTaxable
	slip.NetPay = slip.GrossPay.
		Add(totalIncentives).
		Add(nonTaxable).
		Sub(totalDeductions).
		Round(2)
	return slip
}

// applySchemeRules resolves the enable flag and frequency for one scheme. The
// global flag being false wins unconditionally.
func applySchemeRules(result StatutoryResult, deductionsEnabled bool, overrides map[statutory.Scheme]payroll.SchemeOverride) (decimal.Decimal, bool) {
	if !deductionsEnabled {
		return decimal.Zero, false
	}

	amount := result.Contribution.EmployeeShare
	override, ok := overrides[result.Scheme]
	if !ok {
		return amount, true
	}
	if override.Enabled != nil && !*override.Enabled {
		return decimal.Zero, false
	}
	if override.Frequency == statutory.FrequencyHalf {
		amount = amount.Div(decimal.NewFromInt(2))
	}
	return amount, true
}
