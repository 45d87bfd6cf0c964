package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "Valid", input: "09:30", want: "09:30"},
		{name: "Midnight", input: "00:00", want: "00:00"},
		{name: "EndOfDay", input: "23:59", want: "23:59"},
		{name: "HourOutOfRange", input: "25:00", wantErr: true},
		{name: "MinuteOutOfRange", input: "12:60", wantErr: true},
		{name: "WrongSeparator", input: "12-30", wantErr: true},
		{name: "WithSeconds", input: "12:30:45", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		input TimeString
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 570},
		{input: "23:59", want: 1439},
	}

	for _, tt := range tests {
		got, err := tt.input.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "SimpleShift", input: "09:00", add: 90, want: "10:30"},
		{name: "LastMinute", input: "23:00", add: 59, want: "23:59"},
		{name: "ExactMidnightOverflows", input: "23:30", add: 30, wantErr: true},
		{name: "CrossesMidnight", input: "23:30", add: 45, wantErr: true},
		{name: "NegativeBeyondZero", input: "00:30", add: -60, wantErr: true},
		{name: "NegativeWithinDay", input: "10:00", add: -30, want: "09:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.AddMinutes(tt.add)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTimeOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("09:15"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("PostgresTimeWithSeconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("Bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15")))
		assert.Equal(t, TimeString("08:15"), ts)
	})

	t.Run("Null", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("TimeValue", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 3, 1, 16, 45, 12, 0, time.UTC)))
		assert.Equal(t, TimeString("16:45"), ts)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(1630))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
