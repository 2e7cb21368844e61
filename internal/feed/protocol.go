// Package feed streams timeline notifications to a host process as NDJSON,
// one notification per line, over a Unix socket or any writer.
package feed

// Notification kinds.
const (
	EventPeriodChanged  = "period_changed"
	EventReached        = "event_reached"
	EventMotionFinished = "motion_finished"
	EventMotionStarted  = "motion_started"
	EventCatalogLoaded  = "catalog_loaded"
	EventError          = "error"
)

// Notification is one line of the feed. Index is the row in the host's
// periods or events model.
type Notification struct {
	Event     string   `json:"event"`
	Index     *int     `json:"index,omitempty"`
	Name      string   `json:"name,omitempty"`
	Time      *float64 `json:"time,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Periods   *int     `json:"periods,omitempty"`
	Events    *int     `json:"events,omitempty"`
}

// IntPtr returns a pointer to an int value. Convenience for building notifications.
func IntPtr(i int) *int { return &i }

// FloatPtr returns a pointer to a float64 value.
func FloatPtr(f float64) *float64 { return &f }
