package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
)

func boolPtr(b bool) *bool { return &b }

func sampleStatutory() []StatutoryResult {
	return []StatutoryResult{
		{
			Scheme: statutory.SchemeSSS,
			Contribution: statutory.Contribution{
				EmployeeShare: decimal.NewFromInt(600),
				EmployerShare: decimal.NewFromInt(1210),
			},
		},
		{
			Scheme: statutory.SchemePhilHealth,
			Contribution: statutory.Contribution{
				EmployeeShare: decimal.NewFromInt(300),
				EmployerShare: decimal.NewFromInt(300),
			},
		},
	}
}

func TestAssembleNetPay_StatutoryOnly(t *testing.T) {
	got := AssembleNetPay(AssemblerInput{
		GrossPay:          decimal.NewFromInt(24000),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: true,
	})

	require.Len(t, got.Deductions, 2)
	assert.Equal(t, "SSS", got.Deductions[0].Name)
	assert.Equal(t, payroll.LineItemStatutory, got.Deductions[0].Type)
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(23100)), "net = %s", got.NetPay)
}

func TestAssembleNetPay_FullFormula(t *testing.T) {
	got := AssembleNetPay(AssemblerInput{
		GrossPay:          decimal.NewFromInt(24000),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: true,
		Overrides: payroll.EmployeeOverrides{
			Deductions: []payroll.LineItem{
				{Name: "Laptop loan", Amount: decimal.NewFromInt(1500)},
			},
			Incentives: []payroll.LineItem{
				{Name: "Perfect attendance", Amount: decimal.NewFromInt(1000)},
			},
			NonTaxableAllowance: decimal.NewFromInt(2000),
		},
	})

	// 24000 + 1000 + 2000 - 600 - 300 - 1500
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(24600)), "net = %s", got.NetPay)

	require.Len(t, got.Deductions, 3)
	assert.Equal(t, payroll.LineItemManual, got.Deductions[2].Type, "manual deductions default their type")
	require.Len(t, got.Incentives, 1)
	assert.Equal(t, payroll.LineItemIncentive, got.Incentives[0].Type)
}

func TestAssembleNetPay_GlobalFlagSuppressesAllStatutory(t *testing.T) {
	// Even a per-scheme enabled=true override cannot resurrect a scheme when
	// the run-level flag is off.
	got := AssembleNetPay(AssemblerInput{
		GrossPay:          decimal.NewFromInt(24000),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: false,
		Overrides: payroll.EmployeeOverrides{
			Schemes: map[statutory.Scheme]payroll.SchemeOverride{
				statutory.SchemeSSS: {Enabled: boolPtr(true)},
			},
		},
	})

	assert.Empty(t, got.Deductions)
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(24000)))
}

func TestAssembleNetPay_PerSchemeDisable(t *testing.T) {
	got := AssembleNetPay(AssemblerInput{
		GrossPay:          decimal.NewFromInt(24000),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: true,
		Overrides: payroll.EmployeeOverrides{
			Schemes: map[statutory.Scheme]payroll.SchemeOverride{
				statutory.SchemePhilHealth: {Enabled: boolPtr(false)},
			},
		},
	})

	require.Len(t, got.Deductions, 1)
	assert.Equal(t, "SSS", got.Deductions[0].Name)
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(23400)))
}

func TestAssembleNetPay_HalfFrequencySplitsContribution(t *testing.T) {
	got := AssembleNetPay(AssemblerInput{
		GrossPay:          decimal.NewFromInt(12000),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: true,
		Overrides: payroll.EmployeeOverrides{
			Schemes: map[statutory.Scheme]payroll.SchemeOverride{
				statutory.SchemeSSS: {Frequency: statutory.FrequencyHalf},
			},
		},
	})

	require.Len(t, got.Deductions, 2)
	assert.True(t, got.Deductions[0].Amount.Equal(decimal.NewFromInt(300)), "half of the SSS share")
	assert.True(t, got.Deductions[1].Amount.Equal(decimal.NewFromInt(300)), "PhilHealth untouched")
}

func TestAssembleNetPay_Idempotent(t *testing.T) {
	in := AssemblerInput{
		GrossPay:          decimal.NewFromFloat(17234.56),
		Statutory:         sampleStatutory(),
		DeductionsEnabled: true,
		Overrides: payroll.EmployeeOverrides{
			Deductions:          []payroll.LineItem{{Name: "Advance", Amount: decimal.NewFromInt(500)}},
			Incentives:          []payroll.LineItem{{Name: "Rice subsidy", Amount: decimal.NewFromInt(800)}},
			NonTaxableAllowance: decimal.NewFromFloat(1250.50),
		},
	}

	first := AssembleNetPay(in)
	second := AssembleNetPay(in)

	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.Equal(t, len(first.Deductions), len(second.Deductions))
	for i := range first.Deductions {
		assert.True(t, first.Deductions[i].Amount.Equal(second.Deductions[i].Amount))
	}
}

func TestAssembleNetPay_UnknownSchemeFallsBackToRawName(t *testing.T) {
	got := AssembleNetPay(AssemblerInput{
		GrossPay: decimal.NewFromInt(10000),
		Statutory: []StatutoryResult{
			{Scheme: statutory.Scheme("provident_fund"), Contribution: statutory.Contribution{EmployeeShare: decimal.NewFromInt(100)}},
		},
		DeductionsEnabled: true,
	})

	require.Len(t, got.Deductions, 1)
	assert.Equal(t, "provident_fund", got.Deductions[0].Name)
}
