package payroll

import "context"

// PayrollService is the run orchestrator surface consumed by the HTTP layer.
type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context, organizationID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, organizationID string, req UpdateSettingsRequest) (SettingsResponse, error)

	// Runs
	CreateRun(ctx context.Context, organizationID string, req CreateRunRequest) (RunResponse, error)
	UpdateRun(ctx context.Context, organizationID string, runID string, req CreateRunRequest) (RunResponse, error)
	GetRun(ctx context.Context, organizationID string, runID string) (RunResponse, error)
	ListRuns(ctx context.Context, organizationID string) ([]RunResponse, error)
	TransitionRun(ctx context.Context, organizationID string, runID string, req TransitionRunRequest) (RunResponse, error)
	GetRunSummary(ctx context.Context, organizationID string, runID string) (RunSummary, error)

	// Payslips
	GetPayslipsForRun(ctx context.Context, organizationID string, runID string) ([]PayslipResponse, error)
	GetPayslip(ctx context.Context, organizationID string, payslipID string) (PayslipResponse, error)
	UpdatePayslip(ctx context.Context, organizationID string, req UpdatePayslipRequest) (PayslipResponse, error)
}
