package dateutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestDate_AddDaysCrossesMonth(t *testing.T) {
	d := MustParse("2024-02-28")
	assert.Equal(t, MustParse("2024-02-29"), d.AddDays(1))
	assert.Equal(t, MustParse("2024-03-01"), d.AddDays(2))
	assert.Equal(t, MustParse("2023-12-31"), MustParse("2024-01-01").AddDays(-1))
}

func TestDate_Compare(t *testing.T) {
	a := MustParse("2024-03-01")
	b := MustParse("2024-03-02")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(MustParse("2024-03-01")))
}

func TestFromTime_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 3, 5, 23, 59, 0, 0, loc)
	assert.Equal(t, MustParse("2024-03-05"), FromTime(ts))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(MustParse("2024-03-05"))
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-11-30"`), &d))
	assert.Equal(t, Date{Year: 2024, Month: time.November, Day: 30}, d)
}

func TestRange(t *testing.T) {
	r := Range{Start: MustParse("2024-02-27"), End: MustParse("2024-03-02")}
	require.NoError(t, r.Validate())
	assert.Equal(t, 5, r.Len())

	days := r.Days()
	require.Len(t, days, 5)
	assert.Equal(t, MustParse("2024-02-29"), days[2])
	assert.True(t, r.Contains(MustParse("2024-03-02")))
	assert.False(t, r.Contains(MustParse("2024-03-03")))
}

func TestRange_Inverted(t *testing.T) {
	_, err := NewRange(MustParse("2024-03-05"), MustParse("2024-03-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Equal(t, 0, Range{Start: MustParse("2024-03-05"), End: MustParse("2024-03-01")}.Len())
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2024, time.February)
	assert.Equal(t, MustParse("2024-02-01"), r.Start)
	assert.Equal(t, MustParse("2024-02-29"), r.End)
	assert.Equal(t, 29, r.Len())
}

func TestRange_Overlaps(t *testing.T) {
	a := Range{Start: MustParse("2024-03-01"), End: MustParse("2024-03-05")}
	b := Range{Start: MustParse("2024-03-05"), End: MustParse("2024-03-07")}
	c := Range{Start: MustParse("2024-03-06"), End: MustParse("2024-03-07")}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}
