package models

import "time"

// Entity IDs mirror the names the original Home Assistant integration
// registered, so existing dashboards can be pointed at this daemon.
const (
	EntityClass      = "binary_sensor.class"
	EntityNextClass  = "sensor.next_class"
	EntityWakeUp     = "sensor.next_lesson_to_wake_up"
	EntityTodayStart = "sensor.today_school_start"
	EntityTodayEnd   = "sensor.today_school_end"
)

// Entity is the Home-Assistant-compatible state shape served by the
// API: a state string plus free-form attributes.
type Entity struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// StateUnknown is served while no successful poll has happened yet or
// after an authentication failure cleared the snapshot.
const StateUnknown = "unknown"

// CalendarEvent is one rendered timetable event for the ICS feed.
type CalendarEvent struct {
	Summary     string       `json:"summary"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Description string       `json:"description,omitempty"`
	Location    string       `json:"location,omitempty"`
	Status      LessonStatus `json:"status"`
}

// RenderedEntities is the complete output of one render pass.
type RenderedEntities struct {
	Entities []Entity        `json:"entities"`
	Events   []CalendarEvent `json:"events"`
}

// Snapshot is the last-known-good poll result held by the service: the
// filtered, normalized day list plus its fetch time. It is replaced
// wholesale on every successful poll; readers always see either the
// previous or the new value, never a mix. Aggregation and rendering
// run per query against it, so "current lesson" tracks the clock even
// between polls.
type Snapshot struct {
	Days      []Day
	FetchedAt time.Time
}
