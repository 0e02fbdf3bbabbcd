package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll runs and payslips.
// All methods take organizationID to prevent cross-tenant access.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, organizationID string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// Runs. Creation and replacement persist the run and all of its payslips
	// in one transaction; a failure leaves nothing behind.
	CreateRunWithPayslips(ctx context.Context, run Run, payslips []Payslip) (Run, error)
	ReplaceRunPayslips(ctx context.Context, run Run, payslips []Payslip) (Run, error)
	GetRunByID(ctx context.Context, id string, organizationID string) (Run, error)
	ListRuns(ctx context.Context, organizationID string) ([]Run, error)
	UpdateRunStatus(ctx context.Context, id string, organizationID string, status RunStatus) error

	// HasOverlappingRun reports whether any non-cancelled run already covers
	// one of the employees inside the window. excludeRunID skips the run being
	// edited.
	HasOverlappingRun(ctx context.Context, organizationID string, employeeIDs []string, start, end time.Time, excludeRunID string) (bool, []string, error)

	// Payslips
	GetPayslipsForRun(ctx context.Context, runID string, organizationID string) ([]Payslip, error)
	GetPayslipByID(ctx context.Context, id string, organizationID string) (Payslip, error)
	UpdatePayslipTotals(ctx context.Context, payslip Payslip) (Payslip, error)

	// Aggregations
	GetRunSummary(ctx context.Context, runID string, organizationID string) (RunSummary, error)
}
