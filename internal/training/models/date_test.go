package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Run("parse and format round trip", func(t *testing.T) {
		d, err := ParseDate("2025-02-28")
		require.NoError(t, err)
		assert.Equal(t, "2025-02-28", d.String())
		assert.Equal(t, "2025-03-01", d.AddDays(1).String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDate("28/02/2025")
		assert.Error(t, err)
	})

	t.Run("days between crosses DST and leap days", func(t *testing.T) {
		assert.Equal(t, 30, DaysBetween(NewDate(2024, time.March, 1), NewDate(2024, time.March, 31)))
		assert.Equal(t, 1, DaysBetween(NewDate(2024, time.February, 28), NewDate(2024, time.February, 29)))
		assert.Equal(t, -3, DaysBetween(NewDate(2025, time.January, 4), NewDate(2025, time.January, 1)))
	})

	t.Run("date of uses the value's own location", func(t *testing.T) {
		loc := time.FixedZone("UTC+7", 7*3600)
		ts := time.Date(2025, 1, 2, 1, 30, 0, 0, loc)
		assert.Equal(t, NewDate(2025, time.January, 2), DateOf(ts))
	})

	t.Run("add days is the inverse of days between", func(t *testing.T) {
		from := NewDate(2024, time.December, 30)
		to := from.AddDays(400)
		assert.Equal(t, 400, DaysBetween(from, to))
		assert.True(t, from.Before(to))
		assert.True(t, to.After(from))
		assert.False(t, from.After(from))
	})

	t.Run("new date normalises overflow", func(t *testing.T) {
		assert.Equal(t, "2025-03-01", NewDate(2025, time.February, 29).String())
	})

	t.Run("zero value", func(t *testing.T) {
		var d Date
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
		require.NoError(t, d.UnmarshalText(nil))
		assert.True(t, d.IsZero())
	})

	t.Run("sql value and scan", func(t *testing.T) {
		d := NewDate(2025, time.January, 5)
		v, err := d.Value()
		require.NoError(t, err)
		assert.Equal(t, "2025-01-05", v)

		var zero Date
		v, err = zero.Value()
		require.NoError(t, err)
		assert.Nil(t, v)

		var scanned Date
		require.NoError(t, scanned.Scan(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, d, scanned)
		require.NoError(t, scanned.Scan([]byte("2025-02-01")))
		assert.Equal(t, NewDate(2025, time.February, 1), scanned)
		require.NoError(t, scanned.Scan(nil))
		assert.True(t, scanned.IsZero())
	})

	t.Run("json", func(t *testing.T) {
		b, err := json.Marshal(struct {
			D Date `json:"d"`
		}{D: NewDate(2025, time.January, 5)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"d":"2025-01-05"}`, string(b))
	})
}

func TestPunchJSON(t *testing.T) {
	var unset Punch
	b, err := json.Marshal(unset)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	at := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	b, err = json.Marshal(PunchAt(at))
	require.NoError(t, err)

	var back Punch
	require.NoError(t, json.Unmarshal(b, &back))
	got, ok := back.Time()
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}
