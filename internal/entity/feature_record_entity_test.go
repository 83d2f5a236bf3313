package entity

import (
	"testing"
	"time"
)

func TestResolveStatus(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tests := []struct {
		name string
		now  time.Time
		want FeatureStatus
	}{
		{
			name: "before window starts",
			now:  from.Add(-time.Hour),
			want: FeatureStatusScheduled,
		},
		{
			name: "exactly at window start",
			now:  from,
			want: FeatureStatusActive,
		},
		{
			name: "inside window",
			now:  from.AddDate(0, 0, 3),
			want: FeatureStatusActive,
		},
		{
			name: "one second before window ends",
			now:  to.Add(-time.Second),
			want: FeatureStatusActive,
		},
		{
			name: "exactly at window end",
			now:  to,
			want: FeatureStatusExpired,
		},
		{
			name: "long after window ends",
			now:  to.AddDate(1, 0, 0),
			want: FeatureStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(from, to, tt.now)
			if got != tt.want {
				t.Errorf("ResolveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFeatureRecordLive(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	record := &FeatureRecord{
		FeaturedFrom: from,
		FeaturedTo:   from.AddDate(0, 0, 7),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "scheduled records are live", now: from.Add(-time.Hour), want: true},
		{name: "active records are live", now: from.AddDate(0, 0, 2), want: true},
		{name: "expired at the boundary", now: record.FeaturedTo, want: false},
		{name: "expired records are not live", now: record.FeaturedTo.Add(time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := record.Live(tt.now); got != tt.want {
				t.Errorf("Live() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDurationCodeDays(t *testing.T) {
	tests := []struct {
		code DurationCode
		want int
	}{
		{DurationCode7Days, 7},
		{DurationCode1Month, 30},
		{DurationCode6Months, 180},
		{DurationCode1Year, 365},
	}

	for _, tt := range tests {
		if got := tt.code.Days(); got != tt.want {
			t.Errorf("Days(%q) = %d, want %d", tt.code, got, tt.want)
		}
		if !tt.code.Valid() {
			t.Errorf("Valid(%q) = false, want true", tt.code)
		}
	}

	if DurationCode("14d").Valid() {
		t.Error("Valid(\"14d\") = true, want false")
	}
}

func TestResourceTypeValid(t *testing.T) {
	for _, rt := range ResourceTypes {
		if !rt.Valid() {
			t.Errorf("Valid(%q) = false, want true", rt)
		}
	}
	if ResourceType("hotel").Valid() {
		t.Error("Valid(\"hotel\") = true, want false")
	}
	if FeatureScope("national").Valid() {
		t.Error("FeatureScope Valid(\"national\") = true, want false")
	}
}
