package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"15:00", 900, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"-1:00", 0, false},
		{"9am", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 630, MinuteOfDay(time.Date(2024, 1, 10, 10, 30, 0, 0, time.UTC)))

	// Non-UTC instants are normalized before extracting the clock component.
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, 900, MinuteOfDay(time.Date(2024, 1, 10, 10, 0, 0, 0, est)))
}
