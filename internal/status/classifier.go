package status

import "time"

// Thresholds bound the active and idle buckets by message age.
type Thresholds struct {
	Active time.Duration
	Idle   time.Duration
}

// DefaultThresholds classifies under 5 minutes as active and under an hour as idle.
var DefaultThresholds = Thresholds{
	Active: 5 * time.Minute,
	Idle:   60 * time.Minute,
}

// Classify maps the age of a message timestamp (epoch ms) to a state.
// Each threshold is exclusive: an age exactly at the active threshold is idle.
func Classify(now time.Time, timestampMs int64, th Thresholds) State {
	ageMinutes := float64(now.UnixMilli()-timestampMs) / 60000

	switch {
	case ageMinutes < th.Active.Minutes():
		return StateActive
	case ageMinutes < th.Idle.Minutes():
		return StateIdle
	default:
		return StateOffline
	}
}
