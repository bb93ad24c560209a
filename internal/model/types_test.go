package model

import (
	"testing"
	"time"
)

func TestDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight utc",
			in:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "intraday timestamp",
			in:   time.Date(2025, 6, 1, 14, 30, 5, 123, time.UTC),
			want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-utc zone normalized",
			in:   time.Date(2025, 3, 10, 21, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			want: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Day(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Day(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Day(%v) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}
