package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/leave"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/statutory"
)

// ========== FAKES ==========

type fakePayrollRepo struct {
	settings map[string]payroll.Settings
	runs     map[string]payroll.Run
	payslips map[string]payroll.Payslip

	overlapIDs []string
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		settings: map[string]payroll.Settings{},
		runs:     map[string]payroll.Run{},
		payslips: map[string]payroll.Payslip{},
	}
}

func (f *fakePayrollRepo) GetSettings(_ context.Context, organizationID string) (payroll.Settings, error) {
	s, ok := f.settings[organizationID]
	if !ok {
		return payroll.Settings{}, payroll.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakePayrollRepo) UpsertSettings(_ context.Context, settings payroll.Settings) (payroll.Settings, error) {
	f.settings[settings.OrganizationID] = settings
	return settings, nil
}

func (f *fakePayrollRepo) CreateRunWithPayslips(_ context.Context, run payroll.Run, payslips []payroll.Payslip) (payroll.Run, error) {
	f.runs[run.ID] = run
	for _, slip := range payslips {
		f.payslips[slip.ID] = slip
	}
	return run, nil
}

func (f *fakePayrollRepo) ReplaceRunPayslips(_ context.Context, run payroll.Run, payslips []payroll.Payslip) (payroll.Run, error) {
	for id, slip := range f.payslips {
		if slip.RunID == run.ID {
			delete(f.payslips, id)
		}
	}
	return f.CreateRunWithPayslips(context.Background(), run, payslips)
}

func (f *fakePayrollRepo) GetRunByID(_ context.Context, id string, organizationID string) (payroll.Run, error) {
	run, ok := f.runs[id]
	if !ok || run.OrganizationID != organizationID {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakePayrollRepo) ListRuns(_ context.Context, organizationID string) ([]payroll.Run, error) {
	var runs []payroll.Run
	for _, run := range f.runs {
		if run.OrganizationID == organizationID {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

func (f *fakePayrollRepo) UpdateRunStatus(_ context.Context, id string, organizationID string, status payroll.RunStatus) error {
	run, ok := f.runs[id]
	if !ok || run.OrganizationID != organizationID {
		return payroll.ErrRunNotFound
	}
	run.Status = status
	f.runs[id] = run
	return nil
}

func (f *fakePayrollRepo) HasOverlappingRun(_ context.Context, _ string, _ []string, _, _ time.Time, _ string) (bool, []string, error) {
	return len(f.overlapIDs) > 0, f.overlapIDs, nil
}

func (f *fakePayrollRepo) GetPayslipsForRun(_ context.Context, runID string, organizationID string) ([]payroll.Payslip, error) {
	var slips []payroll.Payslip
	for _, slip := range f.payslips {
		if slip.RunID == runID && slip.OrganizationID == organizationID {
			slips = append(slips, slip)
		}
	}
	return slips, nil
}

func (f *fakePayrollRepo) GetPayslipByID(_ context.Context, id string, organizationID string) (payroll.Payslip, error) {
	slip, ok := f.payslips[id]
	if !ok || slip.OrganizationID != organizationID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

func (f *fakePayrollRepo) UpdatePayslipTotals(_ context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	f.payslips[payslip.ID] = payslip
	return payslip, nil
}

func (f *fakePayrollRepo) GetRunSummary(_ context.Context, runID string, organizationID string) (payroll.RunSummary, error) {
	summary := payroll.RunSummary{RunID: runID}
	slips, _ := f.GetPayslipsForRun(context.Background(), runID, organizationID)
	for _, slip := range slips {
		summary.EmployeeCount++
		summary.TotalGross = summary.TotalGross.Add(slip.GrossPay)
		summary.TotalNet = summary.TotalNet.Add(slip.NetPay)
	}
	return summary, nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.Attendance // keyed by employee ID
}

func (f *fakeAttendanceRepo) GetForEmployeeInRange(_ context.Context, employeeID string, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return f.records[employeeID], nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.records[record.EmployeeID] = append(f.records[record.EmployeeID], record)
	return record, nil
}

type fakeCompensationRepo struct {
	profiles map[string]compensation.Profile
}

func (f *fakeCompensationRepo) GetByEmployeeID(_ context.Context, employeeID string, _ string) (compensation.Profile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return compensation.Profile{}, compensation.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeCompensationRepo) Upsert(_ context.Context, profile compensation.Profile) (compensation.Profile, error) {
	f.profiles[profile.EmployeeID] = profile
	return profile, nil
}

type fakeLeaveRepo struct {
	balances map[string]leave.CreditBalance // keyed by employeeID + leaveType
}

func leaveKey(employeeID string, leaveType leave.LeaveType) string {
	return employeeID + "/" + string(leaveType)
}

func (f *fakeLeaveRepo) GetBalance(_ context.Context, _, employeeID string, leaveType leave.LeaveType) (leave.CreditBalance, error) {
	b, ok := f.balances[leaveKey(employeeID, leaveType)]
	if !ok {
		return leave.CreditBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeLeaveRepo) GetBalanceForUpdate(ctx context.Context, _ pgx.Tx, organizationID, employeeID string, leaveType leave.LeaveType) (leave.CreditBalance, error) {
	return f.GetBalance(ctx, organizationID, employeeID, leaveType)
}

func (f *fakeLeaveRepo) UpsertBalance(_ context.Context, balance leave.CreditBalance) (leave.CreditBalance, error) {
	f.balances[leaveKey(balance.EmployeeID, balance.LeaveType)] = balance
	return balance, nil
}

func (f *fakeLeaveRepo) UpdateBalanceTx(_ context.Context, _ pgx.Tx, balance leave.CreditBalance) error {
	f.balances[leaveKey(balance.EmployeeID, balance.LeaveType)] = balance
	return nil
}

func (f *fakeLeaveRepo) InsertAdjustmentTx(_ context.Context, _ pgx.Tx, adjustment leave.Adjustment) (leave.Adjustment, error) {
	return adjustment, nil
}

func (f *fakeLeaveRepo) ListAdjustments(_ context.Context, _, _ string, _ leave.LeaveType) ([]leave.Adjustment, error) {
	return nil, nil
}

type fakeNotifier struct {
	notified []string
	fail     bool
}

func (f *fakeNotifier) PayslipFinalized(_ context.Context, payslip payroll.Payslip) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.notified = append(f.notified, payslip.EmployeeID)
	return nil
}

// ========== FIXTURE ==========

type serviceFixture struct {
	payrollRepo      *fakePayrollRepo
	attendanceRepo   *fakeAttendanceRepo
	compensationRepo *fakeCompensationRepo
	leaveRepo        *fakeLeaveRepo
	notifier         *fakeNotifier
	svc              payroll.PayrollService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		payrollRepo:      newFakePayrollRepo(),
		attendanceRepo:   &fakeAttendanceRepo{records: map[string][]attendance.Attendance{}},
		compensationRepo: &fakeCompensationRepo{profiles: map[string]compensation.Profile{}},
		leaveRepo:        &fakeLeaveRepo{balances: map[string]leave.CreditBalance{}},
		notifier:         &fakeNotifier{},
	}
	f.svc = NewPayrollService(f.payrollRepo, f.attendanceRepo, f.compensationRepo, f.leaveRepo, f.notifier)

	f.payrollRepo.settings["org-1"] = payroll.DefaultSettings("org-1")
	f.compensationRepo.profiles["emp-1"] = monthlyProfile(24000, 6000)
	f.attendanceRepo.records["emp-1"] = []attendance.Attendance{
		presentDay("2026-03-02", "09:00", "18:00"),
	}
	return f
}

func simpleRunRequest() payroll.CreateRunRequest {
	return payroll.CreateRunRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
		EmployeeIDs: []string{"emp-1"},
	}
}

// ========== TESTS ==========

func TestCreateRun_ProducesPayslips(t *testing.T) {
	f := newServiceFixture()

	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)
	assert.Equal(t, "draft", run.Status)
	assert.Equal(t, "Mar 1 - Mar 15, 2026", run.PeriodLabel)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	slip := slips[0]
	assert.Equal(t, "emp-1", slip.EmployeeID)
	assertDecimalApprox(t, 1103.45, slip.GrossPay, "one present day gross")
	assert.Len(t, slip.Deductions, 4, "all four statutory schemes deducted")
	assert.True(t, slip.Facts.DaysWorked.Equal(decimal.NewFromInt(1)))

	// Monthly basic 24,000 lands in the [23750, 24249.99] SSS bracket.
	assert.Equal(t, "SSS", slip.Deductions[0].Name)
	assert.True(t, slip.Deductions[0].Amount.Equal(decimal.NewFromInt(1200)), "SSS EE share = %s", slip.Deductions[0].Amount)
}

func TestCreateRun_RequiresSettings(t *testing.T) {
	f := newServiceFixture()
	delete(f.payrollRepo.settings, "org-1")

	_, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	assert.ErrorIs(t, err, payroll.ErrSettingsNotFound)
}

func TestCreateRun_RejectsOverlap(t *testing.T) {
	f := newServiceFixture()
	f.payrollRepo.overlapIDs = []string{"emp-1"}

	_, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	assert.ErrorIs(t, err, payroll.ErrRunExists)
}

func TestCreateRun_UnknownEmployeeNamedInError(t *testing.T) {
	f := newServiceFixture()
	req := simpleRunRequest()
	req.EmployeeIDs = []string{"emp-1", "emp-ghost"}

	_, err := f.svc.CreateRun(context.Background(), "org-1", req)
	require.Error(t, err)
	assert.ErrorIs(t, err, compensation.ErrProfileNotFound)
	assert.Contains(t, err.Error(), "emp-ghost")
}

func TestCreateRun_DisabledDeductionsSuppressStatutory(t *testing.T) {
	f := newServiceFixture()
	req := simpleRunRequest()
	req.DeductionsEnabled = boolPtr(false)
	req.Overrides = map[string]payroll.EmployeeOverrides{
		"emp-1": {Schemes: map[statutory.Scheme]payroll.SchemeOverride{
			statutory.SchemeSSS: {Enabled: boolPtr(true)},
		}},
	}

	run, err := f.svc.CreateRun(context.Background(), "org-1", req)
	require.NoError(t, err)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.Empty(t, slips[0].Deductions)
	assert.True(t, slips[0].NetPay.Equal(slips[0].GrossPay))
}

func TestCreateRun_PaidLeaveUsesBalanceAsCap(t *testing.T) {
	f := newServiceFixture()
	leaveDay := presentDay("2026-03-03", "09:00", "18:00")
	leaveDay.Status = attendance.StatusLeave
	leaveDay.Normalize()
	f.attendanceRepo.records["emp-1"] = append(f.attendanceRepo.records["emp-1"], leaveDay)
	f.leaveRepo.balances[leaveKey("emp-1", leave.TypeVacation)] = leave.CreditBalance{
		OrganizationID: "org-1", EmployeeID: "emp-1", LeaveType: leave.TypeVacation,
		Total: decimal.NewFromInt(5), Used: decimal.NewFromInt(1),
	}

	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	// One worked day plus one credited leave day, both at the daily rate.
	assertDecimalApprox(t, 2206.90, slips[0].GrossPay, "worked day + paid leave day")
}

func TestUpdateRun_OnlyDrafts(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	_, err = f.svc.TransitionRun(context.Background(), "org-1", run.ID, payroll.TransitionRunRequest{Status: "finalized"})
	require.NoError(t, err)

	_, err = f.svc.UpdateRun(context.Background(), "org-1", run.ID, simpleRunRequest())
	assert.ErrorIs(t, err, payroll.ErrRunNotEditable)
}

func TestUpdateRun_RecomputesPayslips(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	f.attendanceRepo.records["emp-1"] = append(f.attendanceRepo.records["emp-1"],
		presentDay("2026-03-03", "09:00", "18:00"))

	_, err = f.svc.UpdateRun(context.Background(), "org-1", run.ID, simpleRunRequest())
	require.NoError(t, err)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.True(t, slips[0].Facts.DaysWorked.Equal(decimal.NewFromInt(2)))
}

func TestTransitionRun_InvalidEdge(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	_, err = f.svc.TransitionRun(context.Background(), "org-1", run.ID, payroll.TransitionRunRequest{Status: "paid"})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestTransitionRun_FinalizeNotifiesEmployees(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	got, err := f.svc.TransitionRun(context.Background(), "org-1", run.ID, payroll.TransitionRunRequest{Status: "finalized"})
	require.NoError(t, err)
	assert.Equal(t, "finalized", got.Status)
	assert.Equal(t, []string{"emp-1"}, f.notifier.notified)
}

func TestTransitionRun_NotificationFailureDoesNotFailTransition(t *testing.T) {
	f := newServiceFixture()
	f.notifier.fail = true
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	got, err := f.svc.TransitionRun(context.Background(), "org-1", run.ID, payroll.TransitionRunRequest{Status: "finalized"})
	require.NoError(t, err)
	assert.Equal(t, "finalized", got.Status)
}

func TestUpdatePayslip_RecomputesNetOnly(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	original := slips[0]

	updated, err := f.svc.UpdatePayslip(context.Background(), "org-1", payroll.UpdatePayslipRequest{
		ID:         original.ID,
		Deductions: []payroll.LineItem{{Name: "Cash advance", Amount: decimal.NewFromInt(500)}},
		Incentives: []payroll.LineItem{{Name: "Referral bonus", Amount: decimal.NewFromInt(2000)}},
	})
	require.NoError(t, err)

	assert.True(t, updated.GrossPay.Equal(original.GrossPay), "gross pay is frozen")
	assert.Equal(t, original.Facts, updated.Facts, "attendance facts are frozen")

	expected := original.NetPay.Add(decimal.NewFromInt(2000)).Sub(decimal.NewFromInt(500))
	assert.True(t, updated.NetPay.Equal(expected), "net = %s, want %s", updated.NetPay, expected)

	// Statutory lines survived the edit.
	statutoryCount := 0
	for _, d := range updated.Deductions {
		if d.Type == payroll.LineItemStatutory {
			statutoryCount++
		}
	}
	assert.Equal(t, 4, statutoryCount)
}

func TestUpdatePayslip_LockedOutsideDraft(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	slips, err := f.svc.GetPayslipsForRun(context.Background(), "org-1", run.ID)
	require.NoError(t, err)

	_, err = f.svc.TransitionRun(context.Background(), "org-1", run.ID, payroll.TransitionRunRequest{Status: "finalized"})
	require.NoError(t, err)

	_, err = f.svc.UpdatePayslip(context.Background(), "org-1", payroll.UpdatePayslipRequest{
		ID:         slips[0].ID,
		Deductions: []payroll.LineItem{{Name: "Cash advance", Amount: decimal.NewFromInt(500)}},
	})
	assert.ErrorIs(t, err, payroll.ErrRunNotEditable)
}

func TestGetSettings_FallsBackToDefaults(t *testing.T) {
	f := newServiceFixture()
	delete(f.payrollRepo.settings, "org-1")

	got, err := f.svc.GetSettings(context.Background(), "org-1")
	require.NoError(t, err)
	assert.True(t, got.NightDiffPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 261, got.WorkingDaysPerYear)
}

func TestUpdateSettings_PatchesOnlyProvidedFields(t *testing.T) {
	f := newServiceFixture()

	nd := decimal.NewFromInt(15)
	got, err := f.svc.UpdateSettings(context.Background(), "org-1", payroll.UpdateSettingsRequest{
		NightDiffPercent: &nd,
	})
	require.NoError(t, err)
	assert.True(t, got.NightDiffPercent.Equal(nd))
	assert.True(t, got.OvertimeRegularPercent.Equal(decimal.NewFromInt(125)), "untouched fields keep their values")
}

func TestGetRunSummary(t *testing.T) {
	f := newServiceFixture()
	run, err := f.svc.CreateRun(context.Background(), "org-1", simpleRunRequest())
	require.NoError(t, err)

	summary, err := f.svc.GetRunSummary(context.Background(), "org-1", run.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EmployeeCount)
	assert.True(t, summary.TotalGross.IsPositive())

	_, err = f.svc.GetRunSummary(context.Background(), "org-1", "missing-run")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}
