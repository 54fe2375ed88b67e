// Package status derives device liveness from ping recency. Everything in
// this package is a pure function of its inputs; the evaluation time is
// always passed in so results are reproducible in tests.
package status

import (
	"fmt"
	"time"

	"github.com/delta-iot/pingwatch/internal/model"
)

// Engine classifies devices against a fixed set of thresholds.
type Engine struct {
	thresholds model.StatusThresholds
}

// New creates an engine with normalized thresholds.
func New(thresholds model.StatusThresholds) *Engine {
	return &Engine{thresholds: thresholds.Normalize()}
}

// Classify maps the last observed ping to a status. A nil last ping means
// the device never reported and is offline. Elapsed time exactly at a
// window boundary falls into the stricter bucket: 30m is warning, 2h is
// offline.
func (e *Engine) Classify(lastPing *time.Time, now time.Time) model.Status {
	if lastPing == nil {
		return model.StatusOffline
	}
	elapsed := now.Sub(*lastPing)
	switch {
	case elapsed >= e.thresholds.OfflineWindow:
		return model.StatusOffline
	case elapsed >= e.thresholds.OnlineWindow:
		return model.StatusWarning
	default:
		return model.StatusOnline
	}
}

// TimeAgo renders elapsed time since the last ping for humans. English
// only, pluralized above one unit. A client clock slightly ahead of the
// server yields a negative elapsed and reads as "Just now".
func TimeAgo(lastPing *time.Time, now time.Time) string {
	if lastPing == nil {
		return "Never"
	}
	elapsed := now.Sub(*lastPing)
	switch {
	case elapsed >= 24*time.Hour:
		return pluralize(int64(elapsed/(24*time.Hour)), "day")
	case elapsed >= time.Hour:
		return pluralize(int64(elapsed/time.Hour), "hour")
	case elapsed >= time.Minute:
		return pluralize(int64(elapsed/time.Minute), "minute")
	default:
		return "Just now"
	}
}

// Summarize maps store aggregates to display summaries, preserving the
// store's recency ordering, and derives fleet counts. OfflineDevices is
// total minus online, so warning devices land in the offline count while
// their own status still says warning.
func (e *Engine) Summarize(rows []model.DeviceAggregate, now time.Time) ([]model.DeviceSummary, model.FleetCounts) {
	summaries := make([]model.DeviceSummary, 0, len(rows))
	online := 0
	for _, row := range rows {
		lastPing := row.LastPing
		summary := model.DeviceSummary{
			DeviceID:   row.DeviceID,
			LastPing:   &lastPing,
			TotalPings: row.TotalPings,
			Status:     e.Classify(&lastPing, now),
			TimeAgo:    TimeAgo(&lastPing, now),
		}
		if summary.Status == model.StatusOnline {
			online++
		}
		summaries = append(summaries, summary)
	}

	counts := model.FleetCounts{
		TotalDevices:   len(summaries),
		OnlineDevices:  online,
		OfflineDevices: len(summaries) - online,
	}
	return summaries, counts
}

func pluralize(value int64, unit string) string {
	if value > 1 {
		return fmt.Sprintf("%d %ss ago", value, unit)
	}
	return fmt.Sprintf("%d %s ago", value, unit)
}
