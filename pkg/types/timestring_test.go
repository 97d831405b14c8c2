package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("12:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:30"), ts)

	for _, invalid := range []string{"", "25:00", "12:60", "1230", "12:3", "noon"} {
		_, err := NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", invalid)
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2024, time.March, 15, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}

func TestTimeStringMinutes(t *testing.T) {
	minutes, err := TimeString("12:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 12*60+30, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	result, err := TimeString("12:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("13:15"), result)

	// Переход через полночь в обе стороны
	result, err = TimeString("23:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:15"), result)

	result, err = TimeString("00:15").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:45"), result)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("07:30").IsBefore("19:30"))
	assert.False(t, TimeString("19:30").IsBefore("07:30"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))

	assert.True(t, TimeString("19:30").IsAfter("07:30"))
	assert.False(t, TimeString("07:30").IsAfter("19:30"))
	assert.False(t, TimeString("12:00").IsAfter("12:00"))

	// Некорректные значения не считаются ни раньше, ни позже
	assert.False(t, TimeString("bad").IsBefore("12:00"))
	assert.False(t, TimeString("bad").IsAfter("12:00"))
}

func TestTimeStringIsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("12:30").IsZero())
}
