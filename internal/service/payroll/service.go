package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
	notificationservice "github.com/silangan-hr/payroll-engine-go/internal/service/notification"
)

type PayrollServiceImpl struct {
	payrollRepo      payroll.PayrollRepository
	attendanceRepo   attendance.AttendanceRepository
	compensationRepo compensation.CompensationRepository
	leaveRepo        leave.LeaveRepository
	notifier         notificationservice.Notifier
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	compensationRepo compensation.CompensationRepository,
	leaveRepo leave.LeaveRepository,
	notifier notificationservice.Notifier,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:      payrollRepo,
		attendanceRepo:   attendanceRepo,
		compensationRepo: compensationRepo,
		leaveRepo:        leaveRepo,
		notifier:         notifier,
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context, organizationID string) (payroll.SettingsResponse, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, organizationID)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return toSettingsResponse(payroll.DefaultSettings(organizationID)), nil
		}
		return payroll.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, organizationID string, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, err := s.payrollRepo.GetSettings(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.SettingsResponse{}, err
		}
		settings = payroll.DefaultSettings(organizationID)
	}

	applySettingsPatch(&settings, req)

	saved, err := s.payrollRepo.UpsertSettings(ctx, settings)
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}
	return toSettingsResponse(saved), nil
}

func applySettingsPatch(settings *payroll.Settings, req payroll.UpdateSettingsRequest) {
	if req.NightDiffPercent != nil {
		settings.NightDiffPercent = *req.NightDiffPercent
	}
	if req.RegularHolidayPercent != nil {
		settings.RegularHolidayPercent = *req.RegularHolidayPercent
	}
	if req.SpecialHolidayPercent != nil {
		settings.SpecialHolidayPercent = *req.SpecialHolidayPercent
	}
	if req.OvertimeRegularPercent != nil {
		settings.OvertimeRegularPercent = *req.OvertimeRegularPercent
	}
	if req.OvertimeRestDayPercent != nil {
		settings.OvertimeRestDayPercent = *req.OvertimeRestDayPercent
	}
	if req.OvertimeRegularHolidayPercent != nil {
		settings.OvertimeRegularHolidayPercent = *req.OvertimeRegularHolidayPercent
	}
	if req.OvertimeSpecialHolidayPercent != nil {
		settings.OvertimeSpecialHolidayPercent = *req.OvertimeSpecialHolidayPercent
	}
	if req.AllowanceInDailyRate != nil {
		settings.AllowanceInDailyRate = *req.AllowanceInDailyRate
	}
	if req.WorkingDaysPerYear != nil {
		settings.WorkingDaysPerYear = *req.WorkingDaysPerYear
	}
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, organizationID string, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	overlaps, employeeIDs, err := s.payrollRepo.HasOverlappingRun(ctx, organizationID, req.EmployeeIDs, start, end, "")
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to check for overlapping runs: %w", err)
	}
	if overlaps {
		return payroll.RunResponse{}, fmt.Errorf("employees %v already covered in this window: %w", employeeIDs, payroll.ErrRunExists)
	}

	deductionsEnabled := true
	if req.DeductionsEnabled != nil {
		deductionsEnabled = *req.DeductionsEnabled
	}

	run := payroll.Run{
		ID:                uuid.NewString(),
		OrganizationID:    organizationID,
		PeriodStart:       start,
		PeriodEnd:         end,
		EmployeeIDs:       req.EmployeeIDs,
		Overrides:         req.Overrides,
		DeductionsEnabled: deductionsEnabled,
		NightDiffPercent:  req.NightDiffPercent,
		Status:            payroll.RunDraft,
	}

	payslips, err := s.buildPayslips(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	created, err := s.payrollRepo.CreateRunWithPayslips(ctx, run, payslips)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return toRunResponse(created), nil
}

func (s *PayrollServiceImpl) UpdateRun(ctx context.Context, organizationID string, runID string, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	if run.Status != payroll.RunDraft {
		return payroll.RunResponse{}, payroll.ErrRunNotEditable
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	overlaps, employeeIDs, err := s.payrollRepo.HasOverlappingRun(ctx, organizationID, req.EmployeeIDs, start, end, run.ID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to check for overlapping runs: %w", err)
	}
	if overlaps {
		return payroll.RunResponse{}, fmt.Errorf("employees %v already covered in this window: %w", employeeIDs, payroll.ErrRunExists)
	}

	run.PeriodStart = start
	run.PeriodEnd = end
	run.EmployeeIDs = req.EmployeeIDs
	run.Overrides = req.Overrides
	if req.DeductionsEnabled != nil {
		run.DeductionsEnabled = *req.DeductionsEnabled
	}
	run.NightDiffPercent = req.NightDiffPercent

	payslips, err := s.buildPayslips(ctx, run)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	updated, err := s.payrollRepo.ReplaceRunPayslips(ctx, run, payslips)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to update payroll run: %w", err)
	}
	return toRunResponse(updated), nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, organizationID string, runID string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return toRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, organizationID string) ([]payroll.RunResponse, error) {
	runs, err := s.payrollRepo.ListRuns(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) TransitionRun(ctx context.Context, organizationID string, runID string, req payroll.TransitionRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	next := payroll.RunStatus(req.Status)
	if !run.Status.CanTransitionTo(next) {
		return payroll.RunResponse{}, fmt.Errorf("%s -> %s: %w", run.Status, next, payroll.ErrInvalidTransition)
	}

	if err := s.payrollRepo.UpdateRunStatus(ctx, runID, organizationID, next); err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to update run status: %w", err)
	}
	run.Status = next

	if next == payroll.RunFinalized {
		s.notifyFinalized(ctx, run)
	}

	return toRunResponse(run), nil
}

// notifyFinalized tells every employee on the run their payslip is ready.
// Notification failures are logged and swallowed; they never fail the
// transition.
func (s *PayrollServiceImpl) notifyFinalized(ctx context.Context, run payroll.Run) {
	payslips, err := s.payrollRepo.GetPayslipsForRun(ctx, run.ID, run.OrganizationID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load payslips for notification",
			"run_id", run.ID, "error", err)
		return
	}
	for _, slip := range payslips {
		if err := s.notifier.PayslipFinalized(ctx, slip); err != nil {
			slog.ErrorContext(ctx, "failed to notify employee of finalized payslip",
				"run_id", run.ID, "payslip_id", slip.ID, "employee_id", slip.EmployeeID, "error", err)
		}
	}
}

func (s *PayrollServiceImpl) GetRunSummary(ctx context.Context, organizationID string, runID string) (payroll.RunSummary, error) {
	if _, err := s.payrollRepo.GetRunByID(ctx, runID, organizationID); err != nil {
		return payroll.RunSummary{}, err
	}
	return s.payrollRepo.GetRunSummary(ctx, runID, organizationID)
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslipsForRun(ctx context.Context, organizationID string, runID string) ([]payroll.PayslipResponse, error) {
	payslips, err := s.payrollRepo.GetPayslipsForRun(ctx, runID, organizationID)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, slip := range payslips {
		responses = append(responses, toPayslipResponse(slip))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, organizationID string, payslipID string) (payroll.PayslipResponse, error) {
	slip, err := s.payrollRepo.GetPayslipByID(ctx, payslipID, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return toPayslipResponse(slip), nil
}

// UpdatePayslip edits one payslip's manual deductions, incentives, and
// non-taxable allowance, then recomputes net pay only. Attendance-derived
// facts and gross pay are frozen; statutory lines carry over unchanged.
func (s *PayrollServiceImpl) UpdatePayslip(ctx context.Context, organizationID string, req payroll.UpdatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	slip, err := s.payrollRepo.GetPayslipByID(ctx, req.ID, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, slip.RunID, organizationID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if run.Status != payroll.RunDraft {
		return payroll.PayslipResponse{}, payroll.ErrRunNotEditable
	}

	nonTaxable := slip.NonTaxableAllowance
	if req.NonTaxableAllowance != nil {
		nonTaxable = *req.NonTaxableAllowance
	}

	updated := RecomputeNetPay(slip, req.Deductions, req.Incentives, nonTaxable)

	saved, err := s.payrollRepo.UpdatePayslipTotals(ctx, updated)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to save payslip: %w", err)
	}
	return toPayslipResponse(saved), nil
}

// ========== COMPUTATION ==========

// buildPayslips computes one payslip per roster employee for the run's
// cutoff window. Settings must exist before a run can be computed.
func (s *PayrollServiceImpl) buildPayslips(ctx context.Context, run payroll.Run) ([]payroll.Payslip, error) {
	settings, err := s.payrollRepo.GetSettings(ctx, run.OrganizationID)
	if err != nil {
		return nil, err
	}
	pctx := NewPayrollContext(settings, run.NightDiffPercent)

	payslips := make([]payroll.Payslip, 0, len(run.EmployeeIDs))
	for _, employeeID := range run.EmployeeIDs {
		slip, err := s.buildPayslip(ctx, pctx, run, employeeID)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", employeeID, err)
		}
		payslips = append(payslips, slip)
	}
	return payslips, nil
}

func (s *PayrollServiceImpl) buildPayslip(ctx context.Context, pctx PayrollContext, run payroll.Run, employeeID string) (payroll.Payslip, error) {
	profile, err := s.compensationRepo.GetByEmployeeID(ctx, employeeID, run.OrganizationID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	rates, err := DeriveEmployeeRates(profile, pctx.Rates)
	if err != nil {
		return payroll.Payslip{}, err
	}

	days, err := s.attendanceRepo.GetForEmployeeInRange(ctx, employeeID, run.OrganizationID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return payroll.Payslip{}, err
	}

	paidLeaveCap, err := s.paidLeaveCap(ctx, run.OrganizationID, employeeID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	components, err := ComputePayComponents(pctx, rates, days, paidLeaveCap)
	if err != nil {
		return payroll.Payslip{}, err
	}

	results := make([]StatutoryResult, 0, len(statutory.Schemes))
	for _, scheme := range statutory.Schemes {
		table, err := statutory.TableFor(scheme)
		if err != nil {
			return payroll.Payslip{}, err
		}
		results = append(results, StatutoryResult{
			Scheme:       scheme,
			Contribution: table.Lookup(rates.MonthlyBasic),
		})
	}

	totals := AssembleNetPay(AssemblerInput{
		GrossPay:          components.GrossPay,
		Statutory:         results,
		DeductionsEnabled: run.DeductionsEnabled,
		Overrides:         run.Overrides[employeeID],
	})

	return payroll.Payslip{
		ID:                  uuid.NewString(),
		RunID:               run.ID,
		OrganizationID:      run.OrganizationID,
		EmployeeID:          employeeID,
		PeriodLabel:         run.PeriodLabel(),
		GrossPay:            components.GrossPay.Round(2),
		Deductions:          totals.Deductions,
		Incentives:          totals.Incentives,
		NonTaxableAllowance: totals.NonTaxableAllowance,
		NetPay:              totals.NetPay,
		Facts:               components.Facts,
	}, nil
}

// paidLeaveCap sums the employee's remaining leave credits across types. Leave
// days inside the cutoff are paid only up to this cap; missing balances count
// as zero.
func (s *PayrollServiceImpl) paidLeaveCap(ctx context.Context, organizationID, employeeID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, leaveType := range []leave.LeaveType{leave.TypeVacation, leave.TypeSick} {
		balance, err := s.leaveRepo.GetBalance(ctx, organizationID, employeeID, leaveType)
		if err != nil {
			if errors.Is(err, leave.ErrBalanceNotFound) {
				continue
			}
			return decimal.Zero, err
		}
		if remaining := balance.Balance(); remaining.IsPositive() {
			total = total.Add(remaining)
		}
	}
	return total, nil
}

// ========== MAPPERS ==========

func toSettingsResponse(settings payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		ID:                            settings.ID,
		OrganizationID:                settings.OrganizationID,
		NightDiffPercent:              settings.NightDiffPercent,
		RegularHolidayPercent:         settings.RegularHolidayPercent,
		SpecialHolidayPercent:         settings.SpecialHolidayPercent,
		OvertimeRegularPercent:        settings.OvertimeRegularPercent,
		OvertimeRestDayPercent:        settings.OvertimeRestDayPercent,
		OvertimeRegularHolidayPercent: settings.OvertimeRegularHolidayPercent,
		OvertimeSpecialHolidayPercent: settings.OvertimeSpecialHolidayPercent,
		AllowanceInDailyRate:          settings.AllowanceInDailyRate,
		WorkingDaysPerYear:            settings.WorkingDaysPerYear,
	}
}

func toRunResponse(run payroll.Run) payroll.RunResponse {
	return payroll.RunResponse{
		ID:                run.ID,
		OrganizationID:    run.OrganizationID,
		PeriodStart:       run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:         run.PeriodEnd.Format("2006-01-02"),
		PeriodLabel:       run.PeriodLabel(),
		EmployeeIDs:       run.EmployeeIDs,
		DeductionsEnabled: run.DeductionsEnabled,
		NightDiffPercent:  run.NightDiffPercent,
		Status:            string(run.Status),
	}
}

func toPayslipResponse(slip payroll.Payslip) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:                  slip.ID,
		RunID:               slip.RunID,
		EmployeeID:          slip.EmployeeID,
		PeriodLabel:         slip.PeriodLabel,
		GrossPay:            slip.GrossPay,
		Deductions:          slip.Deductions,
		Incentives:          slip.Incentives,
		NonTaxableAllowance: slip.NonTaxableAllowance,
		NetPay:              slip.NetPay,
		Facts:               slip.Facts,
	}
}
