package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/silangan-hr/payroll-engine-go/internal/domain/attendance"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/compensation"
	"github.com/silangan-hr/payroll-engine-go/internal/domain/payroll"
)

var (
	hundred      = decimal.NewFromInt(100)
	twelve       = decimal.NewFromInt(12)
	eight        = decimal.NewFromInt(8)
	sixtyMinutes = decimal.NewFromInt(60)
)

// PayrollContext carries the percent-normalized rates threaded through every
// calculator call, so the pure functions never re-read settings.
type PayrollContext struct {
	Rates payroll.Rates
}

// NewPayrollContext normalizes the organization settings and applies the
// optional run-level night differential override (whole percent, like the
// setting it replaces).
func NewPayrollContext(settings payroll.Settings, nightDiffPercent *decimal.Decimal) PayrollContext {
	rates := settings.Normalize()
	if nightDiffPercent != nil {
		rates.NightDiff = nightDiffPercent.Div(hundred)
	}
	return PayrollContext{Rates: rates}
}

// EmployeeRates are the per-employee currency rates derived from the
// compensation profile.
type EmployeeRates struct {
	Daily          decimal.Decimal
	Hourly         decimal.Decimal
	MonthlyBasic   decimal.Decimal // monthly-equivalent basic pay, keys statutory lookups
	RegularHoliday decimal.Decimal // fraction
	SpecialHoliday decimal.Decimal // fraction
}

// DeriveEmployeeRates converts a compensation profile into daily and hourly
// rates. Monthly salaries convert through dailyRate = base * 12 /
// workingDaysPerYear with the allowance included only when the organization
// says so; daily and hourly salaries are used as stored.
func DeriveEmployeeRates(profile compensation.Profile, rates payroll.Rates) (EmployeeRates, error) {
	if profile.BasicSalary.IsNegative() || profile.Allowance.IsNegative() {
		return EmployeeRates{}, fmt.Errorf("employee %s: %w", profile.EmployeeID, payroll.ErrNegativeCompensation)
	}
	if !profile.SalaryType.Valid() {
		return EmployeeRates{}, fmt.Errorf("employee %s: %w", profile.EmployeeID, compensation.ErrInvalidSalaryType)
	}
	if rates.WorkingDaysPerYear <= 0 {
		return EmployeeRates{}, payroll.ErrInvalidWorkingDays
	}

	workingDays := decimal.NewFromInt(int64(rates.WorkingDaysPerYear))

	var daily, hourly, monthly decimal.Decimal
	switch profile.SalaryType {
	case compensation.SalaryMonthly:
		base := profile.BasicSalary
		if rates.AllowanceInDailyRate {
			base = base.Add(profile.Allowance)
		}
		daily = base.Mul(twelve).Div(workingDays)
		hourly = daily.Div(eight)
		monthly = profile.BasicSalary
	case compensation.SalaryDaily:
		daily = profile.BasicSalary
		hourly = daily.Div(eight)
		monthly = daily.Mul(workingDays).Div(twelve)
	case compensation.SalaryHourly:
		hourly = profile.BasicSalary
		daily = hourly.Mul(eight)
		monthly = daily.Mul(workingDays).Div(twelve)
	}

	regularHoliday := rates.RegularHoliday
	if profile.RegularHolidayPercent != nil {
		regularHoliday = profile.RegularHolidayPercent.Div(hundred)
	}
	specialHoliday := rates.SpecialHoliday
	if profile.SpecialHolidayPercent != nil {
		specialHoliday = profile.SpecialHolidayPercent.Div(hundred)
	}

	return EmployeeRates{
		Daily:          daily,
		Hourly:         hourly,
		MonthlyBasic:   monthly,
		RegularHoliday: regularHoliday,
		SpecialHoliday: specialHoliday,
	}, nil
}

// PayComponents is the attendance-derived half of a payslip: the facts plus
// the currency components that sum into gross pay.
type PayComponents struct {
	Facts payroll.PayFacts

	BasicPay     decimal.Decimal
	OvertimePay  decimal.Decimal
	HolidayPay   decimal.Decimal
	NightDiffPay decimal.Decimal
	LateCharge   decimal.Decimal
	UndertimeFee decimal.Decimal
	GrossPay     decimal.Decimal
}

// ComputePayComponents folds one cutoff window's attendance days into pay
// components. Days with no record are simply absent from the slice and
// contribute nothing. paidLeaveCap bounds how many leave days are paid at the
// daily rate; leave beyond it earns nothing.
func ComputePayComponents(ctx PayrollContext, rates EmployeeRates, days []attendance.Attendance, paidLeaveCap decimal.Decimal) (PayComponents, error) {
	var out PayComponents

	for _, day := range days {
		if !day.Status.Valid() {
			return PayComponents{}, fmt.Errorf("attendance %s: %w", day.ID, attendance.ErrInvalidStatus)
		}

		switch day.Status {
		case attendance.StatusAbsent:
			out.Facts.Absences++
			continue
		case attendance.StatusLeave:
			out.Facts.LeaveDays = out.Facts.LeaveDays.Add(decimal.NewFromInt(1))
			continue
		}

		dayFraction := decimal.NewFromInt(1)
		if day.Status == attendance.StatusHalfDay {
			dayFraction = decimal.NewFromFloat(0.5)
		}
		out.Facts.DaysWorked = out.Facts.DaysWorked.Add(dayFraction)

		undertime, err := resolveUndertime(day)
		if err != nil {
			return PayComponents{}, err
		}
		late, err := resolveLate(day, undertime > 0)
		if err != nil {
			return PayComponents{}, err
		}
		overtime, err := resolveOvertime(day)
		if err != nil {
			return PayComponents{}, err
		}
		nightDiff, err := NightDiffHours(day.ActualIn, day.ActualOut)
		if err != nil {
			return PayComponents{}, err
		}

		out.Facts.LateMinutes += late
		out.Facts.UndertimeHours += undertime
		out.Facts.NightDiffHours += nightDiff

		otRate := ctx.Rates.OvertimeRegular
		if day.IsRestDay {
			otRate = ctx.Rates.OvertimeRestDay
		}
		if day.IsHoliday {
			switch day.HolidayKind {
			case attendance.HolidayRegular:
				out.Facts.RegularHolidayDays++
				out.Facts.RegularHolidayOvertimeHours += overtime
				out.HolidayPay = out.HolidayPay.Add(rates.Daily.Mul(rates.RegularHoliday).Mul(dayFraction))
				otRate = ctx.Rates.OvertimeRegularHoliday
			case attendance.HolidaySpecial:
				out.Facts.SpecialHolidayDays++
				out.Facts.SpecialHolidayOvertimeHours += overtime
				out.HolidayPay = out.HolidayPay.Add(rates.Daily.Mul(rates.SpecialHoliday).Mul(dayFraction))
				otRate = ctx.Rates.OvertimeSpecialHoliday
			}
		} else {
			out.Facts.OvertimeHours += overtime
		}

		if overtime > 0 {
			out.OvertimePay = out.OvertimePay.Add(
				rates.Hourly.Mul(otRate).Mul(decimal.NewFromFloat(overtime)))
		}
		if nightDiff > 0 {
			out.NightDiffPay = out.NightDiffPay.Add(
				rates.Hourly.Mul(ctx.Rates.NightDiff).Mul(decimal.NewFromFloat(nightDiff)))
		}
	}

	paidLeave := out.Facts.LeaveDays
	if paidLeave.GreaterThan(paidLeaveCap) {
		paidLeave = paidLeaveCap
	}
	if paidLeave.IsNegative() {
		paidLeave = decimal.Zero
	}

	out.BasicPay = rates.Daily.Mul(out.Facts.DaysWorked.Add(paidLeave))
	out.LateCharge = decimal.NewFromFloat(out.Facts.LateMinutes).Div(sixtyMinutes).Mul(rates.Hourly)
	out.UndertimeFee = decimal.NewFromFloat(out.Facts.UndertimeHours).Mul(rates.Hourly)

	out.GrossPay = out.BasicPay.
		Add(out.OvertimePay).
		Add(out.HolidayPay).
		Add(out.NightDiffPay).
		Sub(out.LateCharge).
		Sub(out.UndertimeFee)

	return out, nil
}

// resolveUndertime honors the tri-state override: an explicit value bypasses
// the time arithmetic, anything else recomputes from the clock times.
func resolveUndertime(day attendance.Attendance) (float64, error) {
	if day.UndertimeOverride.Mode == attendance.OverrideValue {
		return day.UndertimeOverride.Value, nil
	}
	return UndertimeHours(day.ScheduleIn, day.ScheduleOut, day.ActualIn, day.ActualOut)
}

func resolveLate(day attendance.Attendance, hasUndertime bool) (float64, error) {
	if day.LateOverride.Mode == attendance.OverrideValue {
		return day.LateOverride.Value, nil
	}
	return LateMinutes(day.ScheduleIn, day.ActualIn, hasUndertime)
}

func resolveOvertime(day attendance.Attendance) (float64, error) {
	if day.OvertimeOverride.Mode == attendance.OverrideValue {
		return day.OvertimeOverride.Value, nil
	}
	return OvertimeHours(day.ScheduleOut, day.ActualOut)
}
