package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayMinutes(t *testing.T) {
	cases := []struct {
		name    string
		arrival string
		start   string
		want    int
	}{
		{"six minutes late", "07:21:10", "07:15:00", 6},
		{"on time", "07:15:00", "07:15:00", 0},
		{"early arrival clamps to zero", "07:00:00", "07:15:00", 0},
		{"sub-minute excess floors to zero", "07:15:59", "07:15:00", 0},
		{"exactly one minute", "07:16:00", "07:15:00", 1},
		{"hour boundary", "09:15:30", "07:15:00", 120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DelayMinutes(tc.arrival, tc.start))
		})
	}
}

func TestDelayMinutesMalformedInputDoesNotPanic(t *testing.T) {
	assert.Equal(t, 0, DelayMinutes("not-a-time", "07:15:00"))
	assert.Equal(t, 0, DelayMinutes("07:21:10", ""))
	assert.Equal(t, 0, DelayMinutes("07:21", "07:15:00"))
	assert.Equal(t, 0, DelayMinutes("aa:bb:cc", "07:15:00"))
}
