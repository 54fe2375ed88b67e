package model

import "time"

// StatusThresholds defines transitions between device statuses. A last
// ping younger than OnlineWindow is online, younger than OfflineWindow is
// warning, anything older (or missing) is offline.
type StatusThresholds struct {
	OnlineWindow  time.Duration
	OfflineWindow time.Duration
}

func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{
		OnlineWindow:  30 * time.Minute,
		OfflineWindow: 2 * time.Hour,
	}
}

// Normalize replaces non-positive or inverted windows with defaults so a
// misconfigured environment never produces an always-offline fleet.
func (t StatusThresholds) Normalize() StatusThresholds {
	defaults := DefaultStatusThresholds()
	if t.OnlineWindow <= 0 {
		t.OnlineWindow = defaults.OnlineWindow
	}
	if t.OfflineWindow <= 0 {
		t.OfflineWindow = defaults.OfflineWindow
	}
	if t.OfflineWindow <= t.OnlineWindow {
		t.OfflineWindow = defaults.OfflineWindow
		if t.OfflineWindow <= t.OnlineWindow {
			t.OnlineWindow = defaults.OnlineWindow
		}
	}
	return t
}
