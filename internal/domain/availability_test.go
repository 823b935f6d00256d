package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/pkg/types"
)

func TestParseWeeklyAvailability_Versioned(t *testing.T) {
	raw := []byte(`{
		"version": 2,
		"timezone": "Europe/Paris",
		"slotMinutes": 45,
		"week": {
			"mon": [{"start": "14:00", "end": "18:00"}, {"start": "09:00", "end": "12:00"}],
			"sun": []
		}
	}`)

	a, err := ParseWeeklyAvailability(raw)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	assert.Equal(t, AvailabilitySchemaVersion, a.Version)
	assert.Equal(t, 45, a.SlotMinutes)

	ranges := a.RangesFor(time.Monday)
	require.Len(t, ranges, 2)
	assert.Equal(t, types.TimeString("09:00"), ranges[0].Start, "ranges are sorted")
	assert.Equal(t, types.TimeString("14:00"), ranges[1].Start)

	assert.True(t, a.IsClosed(time.Sunday))
	assert.True(t, a.IsClosed(time.Tuesday))
}

func TestParseWeeklyAvailability_SnakeCaseSlotMinutes(t *testing.T) {
	raw := []byte(`{"timezone":"Europe/Paris","slot_minutes":20,"week":{"fri":[{"start":"10:00","end":"11:00"}]}}`)

	a, err := ParseWeeklyAvailability(raw)
	require.NoError(t, err)
	assert.Equal(t, 20, a.SlotMinutes)
	assert.Equal(t, AvailabilitySchemaVersion, a.Version)
	assert.Len(t, a.RangesFor(time.Friday), 1)
}

func TestParseWeeklyAvailability_LegacyUpgrade(t *testing.T) {
	raw := []byte(`{"mon":{"start":"09:00","end":"18:00"},"tue":null,"wed":{"start":"10:00","end":"12:00"}}`)

	a, err := ParseWeeklyAvailability(raw)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	assert.Equal(t, AvailabilitySchemaVersion, a.Version)
	assert.Equal(t, DefaultTimezone, a.Timezone)
	assert.Equal(t, DefaultSlotMinutes, a.SlotMinutes)
	assert.Equal(t, []TimeRange{{Start: "09:00", End: "18:00"}}, a.RangesFor(time.Monday))
	assert.True(t, a.IsClosed(time.Tuesday))
	assert.Len(t, a.RangesFor(time.Wednesday), 1)

	encoded, err := a.Marshal()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &doc))
	assert.EqualValues(t, 2, doc["version"])
	assert.Contains(t, doc, "week")
}

func TestParseWeeklyAvailability_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `[1,2`, ErrInvalidAvailability},
		{"unknown legacy day", `{"monday":{"start":"09:00","end":"10:00"}}`, ErrInvalidAvailability},
		{"future version", `{"version":3,"week":{}}`, ErrUnsupportedAvailabilityVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeeklyAvailability([]byte(tt.raw))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWeeklyAvailability_Validate(t *testing.T) {
	valid := func() *WeeklyAvailability {
		return &WeeklyAvailability{
			Version:     AvailabilitySchemaVersion,
			Timezone:    "Europe/Paris",
			SlotMinutes: 30,
			Week: map[DayKey][]TimeRange{
				Monday: {{Start: "09:00", End: "12:00"}, {Start: "12:00", End: "18:00"}},
			},
		}
	}

	t.Run("touching ranges are allowed", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("overlapping ranges", func(t *testing.T) {
		a := valid()
		a.Week[Monday] = []TimeRange{{Start: "09:00", End: "13:00"}, {Start: "12:00", End: "18:00"}}
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("end before start", func(t *testing.T) {
		a := valid()
		a.Week[Monday] = []TimeRange{{Start: "18:00", End: "09:00"}}
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("equal start and end", func(t *testing.T) {
		a := valid()
		a.Week[Monday] = []TimeRange{{Start: "09:00", End: "09:00"}}
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("bad time format", func(t *testing.T) {
		a := valid()
		a.Week[Monday] = []TimeRange{{Start: "9h", End: "10:00"}}
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("unknown day key", func(t *testing.T) {
		a := valid()
		a.Week["holiday"] = []TimeRange{{Start: "09:00", End: "10:00"}}
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		a := valid()
		a.Timezone = "Mars/Olympus"
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})

	t.Run("slot minutes out of range", func(t *testing.T) {
		a := valid()
		a.SlotMinutes = 1
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)

		a.SlotMinutes = 600
		assert.ErrorIs(t, a.Validate(), ErrInvalidAvailability)
	})
}

func TestDayKeyFor(t *testing.T) {
	key, ok := DayKeyFor(time.Sunday)
	require.True(t, ok)
	assert.Equal(t, Sunday, key)

	_, ok = DayKeyFor(time.Weekday(9))
	assert.False(t, ok)
}

func TestWeeklyAvailability_Location(t *testing.T) {
	a := &WeeklyAvailability{Timezone: "America/New_York"}
	loc, err := a.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	a.Timezone = ""
	loc, err = a.Location()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, loc.String())
}
