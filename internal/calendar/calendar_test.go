package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehajsb/rollcall/internal/calendar"
)

func defaultCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.Load("")
	require.NoError(t, err)
	return cal
}

// at builds a timestamp on an arbitrary fixed day at the given clock time.
func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestResolve_InsidePeriod(t *testing.T) {
	cal := defaultCalendar(t)

	res := cal.Resolve(at(8, 33))
	assert.Equal(t, "1", res.Period)
	require.NotNil(t, res.GraceDeadline)
	assert.Equal(t, at(8, 40), *res.GraceDeadline)
}

func TestResolve_StartBoundaryBelongsToPeriod(t *testing.T) {
	cal := defaultCalendar(t)

	// 09:05 is the end of period 1 and the start of period 2. The windows
	// are half-open, so it must resolve to period 2.
	res := cal.Resolve(at(9, 5))
	assert.Equal(t, "2", res.Period)
}

func TestResolve_EndBoundaryExcluded(t *testing.T) {
	cal := defaultCalendar(t)

	// 15:30 is the end of the last period; [start, end) excludes it.
	res := cal.Resolve(at(15, 30))
	assert.Equal(t, calendar.UnknownPeriod, res.Period)
	assert.Nil(t, res.GraceDeadline)
}

func TestResolve_GapBeforeFirstPeriod(t *testing.T) {
	cal := defaultCalendar(t)

	res := cal.Resolve(at(7, 0))
	assert.Equal(t, calendar.UnknownPeriod, res.Period)
	assert.Nil(t, res.GraceDeadline)
}

func TestResolve_ContiguousTableHasNoMiddayGap(t *testing.T) {
	cal := defaultCalendar(t)

	// 11:00 falls in period 4; the table is contiguous through the day.
	res := cal.Resolve(at(11, 0))
	assert.Equal(t, "4", res.Period)
}

func TestResolve_ZeroTimeIsUnknown(t *testing.T) {
	cal := defaultCalendar(t)

	res := cal.Resolve(time.Time{})
	assert.Equal(t, calendar.UnknownPeriod, res.Period)
}

func TestResolve_PerPeriodGraceOverride(t *testing.T) {
	cal, err := calendar.Parse([]byte(`
grace_minutes: 10
periods:
  - { name: "1", start: "08:30", end: "09:05", grace_minutes: 2 }
  - { name: "2", start: "09:05", end: "09:40" }
`))
	require.NoError(t, err)

	res := cal.Resolve(at(8, 33))
	require.NotNil(t, res.GraceDeadline)
	assert.Equal(t, at(8, 32), *res.GraceDeadline, "period 1 overrides grace to 2m")

	res = cal.Resolve(at(9, 10))
	require.NotNil(t, res.GraceDeadline)
	assert.Equal(t, at(9, 15), *res.GraceDeadline, "period 2 uses the table-wide 10m grace")
}

func TestParse_RejectsEmptyTable(t *testing.T) {
	_, err := calendar.Parse([]byte(`grace_minutes: 10`))
	assert.Error(t, err)
}

func TestParse_RejectsBadClockValue(t *testing.T) {
	_, err := calendar.Parse([]byte(`
periods:
  - { name: "1", start: "8 o'clock", end: "09:05" }
`))
	assert.Error(t, err)
}

func TestParse_RejectsInvertedWindow(t *testing.T) {
	_, err := calendar.Parse([]byte(`
periods:
  - { name: "1", start: "09:05", end: "08:30" }
`))
	assert.Error(t, err)
}

func TestLoad_DefaultTableCoversSchoolDay(t *testing.T) {
	cal := defaultCalendar(t)

	periods := cal.Periods()
	require.Len(t, periods, 8)
	assert.Equal(t, "1", periods[0].Name)
	assert.Equal(t, "Lunch", periods[4].Name)
	assert.Equal(t, "8", periods[7].Name)
}
