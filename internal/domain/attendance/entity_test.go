package attendance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalize_ClearsFieldsForAbsentAndLeave(t *testing.T) {
	for _, status := range []Status{StatusAbsent, StatusLeave} {
		t.Run(string(status), func(t *testing.T) {
			a := Attendance{
				Date:             time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				ScheduleIn:       "09:00",
				ScheduleOut:      "18:00",
				ActualIn:         strPtr("09:05"),
				ActualOut:        strPtr("18:00"),
				OvertimeOverride: Override{Mode: OverrideValue, Value: 2},
				Status:           status,
			}
			a.Normalize()

			assert.Nil(t, a.ActualIn)
			assert.Nil(t, a.ActualOut)
			assert.Equal(t, Override{}, a.OvertimeOverride)
			assert.Equal(t, Override{}, a.LateOverride)
			assert.Equal(t, Override{}, a.UndertimeOverride)
		})
	}
}

func TestNormalize_KeepsFieldsForWorkedDays(t *testing.T) {
	a := Attendance{
		Status:           StatusPresent,
		ActualIn:         strPtr("09:00"),
		ActualOut:        strPtr("19:30"),
		OvertimeOverride: Override{Mode: OverrideValue, Value: 1.5},
		IsHoliday:        true,
		HolidayKind:      HolidayRegular,
	}
	a.Normalize()

	require.NotNil(t, a.ActualIn)
	require.NotNil(t, a.ActualOut)
	assert.Equal(t, Override{Mode: OverrideValue, Value: 1.5}, a.OvertimeOverride)
	assert.Equal(t, HolidayRegular, a.HolidayKind)
}

func TestNormalize_ClearsHolidayKindWithoutFlag(t *testing.T) {
	a := Attendance{Status: StatusPresent, IsHoliday: false, HolidayKind: HolidaySpecial}
	a.Normalize()
	assert.Equal(t, HolidayNone, a.HolidayKind)
}

func TestOverride_UnmarshalTriState(t *testing.T) {
	var payload struct {
		Overtime Override `json:"overtime"`
	}

	// Absent field: not overridden.
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.Equal(t, OverrideNone, payload.Overtime.Mode)

	// Explicit null: force recompute.
	require.NoError(t, json.Unmarshal([]byte(`{"overtime": null}`), &payload))
	assert.Equal(t, OverrideRecalculate, payload.Overtime.Mode)

	// Explicit zero stays distinct from "no override".
	payload.Overtime = Override{}
	require.NoError(t, json.Unmarshal([]byte(`{"overtime": 0}`), &payload))
	assert.Equal(t, OverrideValue, payload.Overtime.Mode)
	assert.Equal(t, 0.0, payload.Overtime.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"overtime": 2.5}`), &payload))
	assert.Equal(t, OverrideValue, payload.Overtime.Mode)
	assert.Equal(t, 2.5, payload.Overtime.Value)
}
