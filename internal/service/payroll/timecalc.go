package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/pkg/validator"
)

// lunchBreakMinutes is deducted from the scheduled span when computing
// undertime; clocked time counts as-is.
const lunchBreakMinutes = 60

// nightDiffStartMinutes marks 22:00, the start of the night differential
// window.
const nightDiffStartMinutes = 22 * 60

// clockMinutes parses a 24-hour "HH:mm" string into minutes since midnight.
func clockMinutes(clock string) (int, error) {
	if !validator.IsValidClock(clock) {
		return 0, fmt.Errorf("%q: %w", clock, attendance.ErrInvalidClockFormat)
	}
	parts := strings.SplitN(clock, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes, nil
}

// LateMinutes returns how many minutes after the scheduled clock-in the
// employee arrived. A day classified as undertime is never also late, and a
// missing actual clock-in yields zero.
func LateMinutes(scheduleIn string, actualIn *string, hasUndertime bool) (float64, error) {
	if actualIn == nil || hasUndertime {
		return 0, nil
	}
	scheduled, err := clockMinutes(scheduleIn)
	if err != nil {
		return 0, err
	}
	actual, err := clockMinutes(*actualIn)
	if err != nil {
		return 0, err
	}
	if actual <= scheduled {
		return 0, nil
	}
	return float64(actual - scheduled), nil
}

// UndertimeHours returns how many hours short of the scheduled working time
// the employee worked. The scheduled span is reduced by the fixed lunch
// deduction (a 09:00-18:00 schedule nets 8 working hours); clocked time counts
// as-is. Intermediate work minutes clamp at zero so sub-hour schedules cannot
// go negative.
func UndertimeHours(scheduleIn, scheduleOut string, actualIn, actualOut *string) (float64, error) {
	if actualIn == nil || actualOut == nil {
		return 0, nil
	}
	schedIn, err := clockMinutes(scheduleIn)
	if err != nil {
		return 0, err
	}
	schedOut, err := clockMinutes(scheduleOut)
	if err != nil {
		return 0, err
	}
	actIn, err := clockMinutes(*actualIn)
	if err != nil {
		return 0, err
	}
	actOut, err := clockMinutes(*actualOut)
	if err != nil {
		return 0, err
	}

	scheduledWork := clampMinutes(schedOut - schedIn - lunchBreakMinutes)
	actualWork := clampMinutes(actOut - actIn)

	short := scheduledWork - actualWork
	if short <= 0 {
		return 0, nil
	}
	return float64(short) / 60, nil
}

// OvertimeHours returns the hours worked past the scheduled clock-out. Pure
// tail-end comparison; the scheduled clock-in is not consulted.
func OvertimeHours(scheduleOut string, actualOut *string) (float64, error) {
	if actualOut == nil {
		return 0, nil
	}
	scheduled, err := clockMinutes(scheduleOut)
	if err != nil {
		return 0, err
	}
	actual, err := clockMinutes(*actualOut)
	if err != nil {
		return 0, err
	}
	if actual <= scheduled {
		return 0, nil
	}
	return float64(actual-scheduled) / 60, nil
}

// NightDiffHours returns the hours worked at or after 22:00. The window opens
// at 22:00 or the actual clock-in, whichever is later, so arriving mid-window
// earns credit only for time actually present.
func NightDiffHours(actualIn, actualOut *string) (float64, error) {
	if actualOut == nil {
		return 0, nil
	}
	out, err := clockMinutes(*actualOut)
	if err != nil {
		return 0, err
	}

	start := nightDiffStartMinutes
	if actualIn != nil {
		in, err := clockMinutes(*actualIn)
		if err != nil {
			return 0, err
		}
		if in > start {
			start = in
		}
	}

	if out <= start {
		return 0, nil
	}
	return float64(out-start) / 60, nil
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
