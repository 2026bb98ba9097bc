package status

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := func(ago time.Duration) int64 { return now.Add(-ago).UnixMilli() }

	tests := []struct {
		name string
		ago  time.Duration
		want State
	}{
		{"just now", 0, StateActive},
		{"future timestamp", -time.Minute, StateActive},
		{"under five minutes", 5*time.Minute - time.Millisecond, StateActive},
		{"exactly five minutes", 5 * time.Minute, StateIdle},
		{"half an hour", 30 * time.Minute, StateIdle},
		{"just under an hour", 60*time.Minute - time.Millisecond, StateIdle},
		{"exactly an hour", 60 * time.Minute, StateOffline},
		{"a day", 24 * time.Hour, StateOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(now, ms(tt.ago), DefaultThresholds); got != tt.want {
				t.Errorf("Classify(%v ago) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	now := time.Now()
	th := Thresholds{Active: time.Minute, Idle: 2 * time.Minute}

	if got := Classify(now, now.Add(-90*time.Second).UnixMilli(), th); got != StateIdle {
		t.Errorf("got %q, want %q", got, StateIdle)
	}
	if got := Classify(now, now.Add(-3*time.Minute).UnixMilli(), th); got != StateOffline {
		t.Errorf("got %q, want %q", got, StateOffline)
	}
}
