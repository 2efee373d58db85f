package service

import (
	"testing"
	"time"

	"workhub/pkg"

	"github.com/stretchr/testify/assert"
)

func TestFormatWorkHours(t *testing.T) {
	in := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		out        time.Time
		breakStart *time.Time
		breakEnd   *time.Time
		expected   string
	}{
		{
			name:     "full day no break",
			out:      in.Add(8 * time.Hour),
			expected: "8.00",
		},
		{
			name:       "one hour break deducted",
			out:        in.Add(9 * time.Hour),
			breakStart: pkg.ToPtr(in.Add(4 * time.Hour)),
			breakEnd:   pkg.ToPtr(in.Add(5 * time.Hour)),
			expected:   "8.00",
		},
		{
			name:       "open break is not deducted",
			out:        in.Add(6 * time.Hour),
			breakStart: pkg.ToPtr(in.Add(3 * time.Hour)),
			expected:   "6.00",
		},
		{
			name:     "half hour rounds to fraction",
			out:      in.Add(7*time.Hour + 30*time.Minute),
			expected: "7.50",
		},
		{
			name:     "checkout before checkin clamps to zero",
			out:      in.Add(-1 * time.Hour),
			expected: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatWorkHours(in, tt.out, tt.breakStart, tt.breakEnd)
			assert.Equal(t, tt.expected, got)
		})
	}
}
