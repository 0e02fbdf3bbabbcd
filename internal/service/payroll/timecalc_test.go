package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func TestLateMinutes(t *testing.T) {
	tests := []struct {
		name         string
		scheduleIn   string
		actualIn     *string
		hasUndertime bool
		want         float64
	}{
		{"on time", "09:00", strPtr("09:00"), false, 0},
		{"early arrival", "09:00", strPtr("08:45"), false, 0},
		{"fifteen minutes late", "09:00", strPtr("09:15"), false, 15},
		{"no clock-in", "09:00", nil, false, 0},
		{"undertime day is never late", "09:00", strPtr("10:30"), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LateMinutes(tt.scheduleIn, tt.actualIn, tt.hasUndertime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLateMinutes_InvalidClock(t *testing.T) {
	_, err := LateMinutes("9am", strPtr("09:15"), false)
	assert.ErrorIs(t, err, attendance.ErrInvalidClockFormat)

	_, err = LateMinutes("09:00", strPtr("25:00"), false)
	assert.ErrorIs(t, err, attendance.ErrInvalidClockFormat)
}

func TestUndertimeHours(t *testing.T) {
	tests := []struct {
		name        string
		scheduleIn  string
		scheduleOut string
		actualIn    *string
		actualOut   *string
		want        float64
	}{
		{"full day", "09:00", "18:00", strPtr("09:00"), strPtr("18:00"), 0},
		{"left one hour early", "09:00", "18:00", strPtr("09:00"), strPtr("17:00"), 0},
		{"left two hours early", "09:00", "18:00", strPtr("09:00"), strPtr("16:00"), 1},
		{"half the day missing", "09:00", "18:00", strPtr("09:00"), strPtr("13:00"), 4},
		{"no clock-out", "09:00", "18:00", strPtr("09:00"), nil, 0},
		{"no clock-in", "09:00", "18:00", nil, strPtr("18:00"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UndertimeHours(tt.scheduleIn, tt.scheduleOut, tt.actualIn, tt.actualOut)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUndertimeHours_SubHourSchedulesClampToZero(t *testing.T) {
	// A 30-minute schedule is shorter than the lunch deduction; the scheduled
	// work minutes clamp to zero instead of going negative, so no undertime
	// can accrue.
	got, err := UndertimeHours("09:00", "09:30", strPtr("09:00"), strPtr("09:10"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	// A sub-hour actual span against a full schedule still compares cleanly.
	got, err = UndertimeHours("09:00", "18:00", strPtr("09:00"), strPtr("09:30"))
	require.NoError(t, err)
	assert.Equal(t, 7.5, got)
}

func TestOvertimeHours(t *testing.T) {
	tests := []struct {
		name        string
		scheduleOut string
		actualOut   *string
		want        float64
	}{
		{"ninety minutes over", "18:00", strPtr("19:30"), 1.5},
		{"left early is not negative overtime", "18:00", strPtr("17:00"), 0},
		{"exactly on schedule", "18:00", strPtr("18:00"), 0},
		{"no clock-out", "18:00", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OvertimeHours(tt.scheduleOut, tt.actualOut)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNightDiffHours(t *testing.T) {
	tests := []struct {
		name      string
		actualIn  *string
		actualOut *string
		want      float64
	}{
		{"out before the window", strPtr("09:00"), strPtr("18:00"), 0},
		{"out at the window start", strPtr("09:00"), strPtr("22:00"), 0},
		{"ninety minutes into the window", strPtr("09:00"), strPtr("23:30"), 1.5},
		{"clocked in mid-window", strPtr("22:30"), strPtr("23:30"), 1},
		{"clocked in at the window end", strPtr("23:30"), strPtr("23:30"), 0},
		{"no clock-in counts from the window start", nil, strPtr("23:00"), 1},
		{"no clock-out", strPtr("09:00"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NightDiffHours(tt.actualIn, tt.actualOut)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
