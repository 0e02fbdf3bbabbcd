package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetForEmployeeInRange(_ context.Context, employeeID, _ string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if r, ok := f.records[recordKey(employeeID, d)]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	if record.ID == "" {
		record.ID = "att-" + record.Date.Format("20060102")
	}
	f.records[recordKey(record.EmployeeID, record.Date)] = record
	return record, nil
}

type fakeRunSource struct {
	runs []payroll.Run
}

func (f *fakeRunSource) ListRuns(context.Context, string) ([]payroll.Run, error) {
	return f.runs, nil
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func strPtr(s string) *string { return &s }

func fixture() (*fakeAttendanceRepo, *fakeRunSource, attendance.AttendanceService) {
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{}}
	runs := &fakeRunSource{}
	return repo, runs, NewAttendanceService(repo, runs)
}

func TestUpsert(t *testing.T) {
	repo, _, svc := fixture()

	got, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "09:00",
		ScheduleOut: "18:00",
		ActualIn:    strPtr("09:10"),
		ActualOut:   strPtr("18:00"),
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", got.Date)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Len(t, repo.records, 1)
}

func TestUpsert_AbsentDayClearsClockTimes(t *testing.T) {
	_, _, svc := fixture()

	got, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:       "emp-1",
		Date:             "2026-03-02",
		ScheduleIn:       "09:00",
		ScheduleOut:      "18:00",
		ActualIn:         strPtr("09:10"),
		ActualOut:        strPtr("18:00"),
		OvertimeOverride: attendance.Override{Mode: attendance.OverrideValue, Value: 2},
		Status:           attendance.StatusAbsent,
	})
	require.NoError(t, err)
	assert.Nil(t, got.ActualIn)
	assert.Nil(t, got.ActualOut)
	assert.Equal(t, attendance.OverrideNone, got.OvertimeOverride.Mode)
}

func TestUpsert_RejectsBadClockFormat(t *testing.T) {
	_, _, svc := fixture()

	_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "9am",
		ScheduleOut: "18:00",
		Status:      attendance.StatusPresent,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "schedule_in")
}

func TestUpsert_HolidayNeedsKind(t *testing.T) {
	_, _, svc := fixture()

	_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "09:00",
		ScheduleOut: "18:00",
		IsHoliday:   true,
		Status:      attendance.StatusPresent,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "holiday_kind")
}

func TestUpsert_LockedByFinalizedRun(t *testing.T) {
	_, runs, svc := fixture()
	runs.runs = []payroll.Run{{
		ID:          "run-1",
		PeriodStart: date("2026-03-01"),
		PeriodEnd:   date("2026-03-15"),
		EmployeeIDs: []string{"emp-1"},
		Status:      payroll.RunFinalized,
	}}

	_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "09:00",
		ScheduleOut: "18:00",
		Status:      attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrRecordLocked)
}

func TestUpsert_DraftRunDoesNotLock(t *testing.T) {
	_, runs, svc := fixture()
	runs.runs = []payroll.Run{{
		ID:          "run-1",
		PeriodStart: date("2026-03-01"),
		PeriodEnd:   date("2026-03-15"),
		EmployeeIDs: []string{"emp-1"},
		Status:      payroll.RunDraft,
	}}

	_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "09:00",
		ScheduleOut: "18:00",
		Status:      attendance.StatusPresent,
	})
	assert.NoError(t, err)
}

func TestUpsert_OtherEmployeeNotLocked(t *testing.T) {
	_, runs, svc := fixture()
	runs.runs = []payroll.Run{{
		ID:          "run-1",
		PeriodStart: date("2026-03-01"),
		PeriodEnd:   date("2026-03-15"),
		EmployeeIDs: []string{"emp-2"},
		Status:      payroll.RunPaid,
	}}

	_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
		EmployeeID:  "emp-1",
		Date:        "2026-03-02",
		ScheduleIn:  "09:00",
		ScheduleOut: "18:00",
		Status:      attendance.StatusPresent,
	})
	assert.NoError(t, err)
}

func TestListForEmployee(t *testing.T) {
	_, _, svc := fixture()

	for _, day := range []string{"2026-03-02", "2026-03-03", "2026-03-20"} {
		_, err := svc.Upsert(context.Background(), "org-1", attendance.UpsertAttendanceRequest{
			EmployeeID:  "emp-1",
			Date:        day,
			ScheduleIn:  "09:00",
			ScheduleOut: "18:00",
			Status:      attendance.StatusPresent,
		})
		require.NoError(t, err)
	}

	got, err := svc.ListForEmployee(context.Background(), "org-1", attendance.ListAttendanceQuery{
		EmployeeID: "emp-1",
		From:       "2026-03-01",
		To:         "2026-03-15",
	})
	require.NoError(t, err)
	assert.Len(t, got, 2, "the record past the window is excluded")
}
