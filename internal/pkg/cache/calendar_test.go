package cache

import (
	"testing"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarKey(t *testing.T) {
	rng := dateutil.MonthRange(2024, time.March)

	assert.Equal(t, "calendar:c1:company:2024-03-01:2024-03-31",
		calendarKey("c1", calendar.CompanyScope(), rng))
	assert.Equal(t, "calendar:c1:institution:i9:2024-03-01:2024-03-31",
		calendarKey("c1", calendar.InstitutionScope("i9"), rng))
}

func TestResolutionEncoding(t *testing.T) {
	res := calendar.EmptyResolution()
	sat := dateutil.MustParse("2024-03-02")
	holi := dateutil.MustParse("2024-03-25")
	res.Weekends[sat] = struct{}{}
	res.Holidays[holi] = calendar.Day{ID: "d1", ScopeKind: calendar.ScopeCompany, Date: holi, Type: calendar.DayTypeHoliday, Name: "Holi"}

	data, err := encodeResolution(res)
	require.NoError(t, err)

	got, err := decodeResolution(data)
	require.NoError(t, err)
	assert.True(t, got.IsWeekend(sat))
	h, ok := got.Holiday(holi)
	require.True(t, ok)
	assert.Equal(t, "Holi", h.Name)
	assert.Len(t, got.Weekends, 1)
	assert.Len(t, got.Holidays, 1)
}

func TestDecodeResolution_Corrupt(t *testing.T) {
	_, err := decodeResolution([]byte("{"))
	assert.Error(t, err)
}
