package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(9*60+30), c)

	c, err = ParseClock("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, Clock(18*60), c)
	assert.Equal(t, "18:00:00", c.String())

	for _, bad := range []string{"", "9", "24:00", "12:60", "12:30:15", "abc", "18:00xyz", "18:00:00x", " 18:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestNew_RejectsEmptyAndInverted(t *testing.T) {
	_, err := New(mustClock(t, "10:00"), mustClock(t, "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = New(mustClock(t, "11:00"), mustClock(t, "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlaps_HalfOpen(t *testing.T) {
	iv := func(a, b string) Interval {
		i, err := New(mustClock(t, a), mustClock(t, b))
		require.NoError(t, err)
		return i
	}

	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"touching endpoints do not overlap", iv("09:00", "10:00"), iv("10:00", "11:00"), false},
		{"partial overlap", iv("09:00", "10:00"), iv("09:30", "10:30"), true},
		{"identical", iv("09:00", "10:00"), iv("09:00", "10:00"), true},
		{"containment", iv("09:00", "12:00"), iv("10:00", "11:00"), true},
		{"disjoint", iv("09:00", "10:00"), iv("12:00", "13:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestContains_ExcludesEnd(t *testing.T) {
	i, err := New(mustClock(t, "09:00"), mustClock(t, "10:00"))
	require.NoError(t, err)

	assert.True(t, i.Contains(mustClock(t, "09:00")))
	assert.True(t, i.Contains(mustClock(t, "09:59")))
	assert.False(t, i.Contains(mustClock(t, "10:00")))
}

func TestDurationHours(t *testing.T) {
	i, err := New(mustClock(t, "18:00"), mustClock(t, "19:30"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, i.DurationHours(), 1e-9)
}

func TestClockAt(t *testing.T) {
	day, err := time.ParseInLocation(DateLayout, "2024-06-10", time.UTC)
	require.NoError(t, err)

	at := mustClock(t, "18:00").At(day, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC), at)
}
