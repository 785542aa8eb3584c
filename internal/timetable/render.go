package timetable

import (
	"time"

	json "github.com/goccy/go-json"

	"untisd/internal/models"
)

type DescriptionMode string

const (
	DescriptionJSON       DescriptionMode = "json"
	DescriptionLessonInfo DescriptionMode = "lesson_info"
	DescriptionNone       DescriptionMode = "none"
)

type RoomMode string

const (
	RoomNone      RoomMode = "none"
	RoomShort     RoomMode = "short"
	RoomLong      RoomMode = "long"
	RoomShortLong RoomMode = "short-long"
)

// RenderOptions mirror the calendar/JSON options of the original
// integration.
type RenderOptions struct {
	LongNames       bool
	ShowCancelled   bool
	ShowRoomChange  bool
	DescriptionMode DescriptionMode
	RoomMode        RoomMode
	GenerateJSON    bool
}

// Render maps an AggregationResult onto entity states and calendar
// events. It is deterministic: the same result and options always
// produce identical output.
func Render(result models.AggregationResult, opts RenderOptions) models.RenderedEntities {
	out := models.RenderedEntities{
		Entities: []models.Entity{
			classEntity(result),
			timeEntity(models.EntityNextClass, lessonStart(result.Next), nextClassAttributes(result, opts)),
			timeEntity(models.EntityWakeUp, lessonStart(result.NextWakeUp), wakeUpAttributes(result, opts)),
			timeEntity(models.EntityTodayStart, result.TodayStart, nil),
			timeEntity(models.EntityTodayEnd, result.TodayEnd, nil),
		},
	}

	out.Events = renderEvents(result.Days, opts)

	return out
}

func classEntity(result models.AggregationResult) models.Entity {
	state := "off"
	if result.Current != nil {
		state = "on"
	}
	return models.Entity{EntityID: models.EntityClass, State: state}
}

func lessonStart(lesson *models.Lesson) *time.Time {
	if lesson == nil {
		return nil
	}
	return &lesson.Start
}

func timeEntity(id string, ts *time.Time, attrs map[string]any) models.Entity {
	state := models.StateUnknown
	if ts != nil {
		state = ts.Format(time.RFC3339)
	}
	return models.Entity{EntityID: id, State: state, Attributes: attrs}
}

func nextClassAttributes(result models.AggregationResult, opts RenderOptions) map[string]any {
	if !opts.GenerateJSON || result.Next == nil {
		return nil
	}
	return map[string]any{"lesson": lessonRecord(result.Next)}
}

// wakeUpAttributes attaches the full lesson list of the wake-up day so
// a dashboard can show "tomorrow's timetable" from one entity.
func wakeUpAttributes(result models.AggregationResult, opts RenderOptions) map[string]any {
	if !opts.GenerateJSON || result.NextWakeUp == nil {
		return nil
	}
	date := result.NextWakeUp.Start.Format("2006-01-02")
	for _, day := range result.Days {
		if day.Date == date {
			records := make([]map[string]any, 0, len(day.Lessons))
			for i := range day.Lessons {
				records = append(records, lessonRecord(&day.Lessons[i]))
			}
			return map[string]any{"day": date, "lessons": records}
		}
	}
	return map[string]any{"day": date}
}

// lessonRecord is the structured per-lesson payload; keys follow the
// original integration's JSON so automations keep working. Optional
// fields are omitted rather than sent empty.
func lessonRecord(lesson *models.Lesson) map[string]any {
	rec := map[string]any{
		"start": lesson.Start.Format(time.RFC3339),
		"end":   lesson.End.Format(time.RFC3339),
		"code":  string(lesson.Status),
	}
	if lesson.ID != 0 {
		rec["id"] = lesson.ID
	}
	if len(lesson.Subjects) > 0 {
		rec["subjects"] = lesson.Subjects
	}
	if len(lesson.Rooms) > 0 {
		rec["rooms"] = lesson.Rooms
	}
	if len(lesson.Teachers) > 0 {
		rec["teachers"] = lesson.Teachers
	}
	if len(lesson.Classes) > 0 {
		rec["klassen"] = lesson.Classes
	}
	if len(lesson.OriginalRooms) > 0 {
		rec["original_rooms"] = lesson.OriginalRooms
	}
	if len(lesson.OriginalTeachers) > 0 {
		rec["original_teachers"] = lesson.OriginalTeachers
	}
	if lesson.LessonText != "" {
		rec["lstext"] = lesson.LessonText
	}
	if lesson.SubstitutionText != "" {
		rec["subst_text"] = lesson.SubstitutionText
	}
	if lesson.LessonNumber != 0 {
		rec["lsnumber"] = lesson.LessonNumber
	}
	return rec
}

func renderEvents(days []models.Day, opts RenderOptions) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0)

	for di := range days {
		for li := range days[di].Lessons {
			lesson := &days[di].Lessons[li]
			if lesson.Cancelled() && !opts.ShowCancelled {
				continue
			}
			events = append(events, lessonEvent(lesson, opts))
		}
	}

	return mergeAdjacent(events)
}

func lessonEvent(lesson *models.Lesson, opts RenderOptions) models.CalendarEvent {
	summary := lesson.Subject()
	if opts.LongNames {
		summary = lesson.SubjectLong()
	}
	switch {
	case lesson.Cancelled():
		summary = "Cancelled: " + summary
	case opts.ShowRoomChange && len(lesson.OriginalRooms) > 0:
		summary = "Room change: " + summary
	}

	ev := models.CalendarEvent{
		Summary: summary,
		Start:   lesson.Start,
		End:     lesson.End,
		Status:  lesson.Status,
	}

	switch opts.DescriptionMode {
	case DescriptionJSON:
		if data, err := json.Marshal(lessonRecord(lesson)); err == nil {
			ev.Description = string(data)
		}
	case DescriptionLessonInfo:
		ev.Description = lesson.SubstitutionText
	}

	if len(lesson.Rooms) > 0 {
		room := lesson.Rooms[0]
		switch opts.RoomMode {
		case RoomShort:
			ev.Location = room.Name
		case RoomLong:
			ev.Location = room.LongName
		case RoomShortLong:
			ev.Location = room.Name + " - " + room.LongName
		}
	}

	return ev
}

// mergeAdjacent collapses back-to-back events with the same summary
// and status into one, so a double period shows as a single calendar
// entry. Events arrive sorted because the day list is.
func mergeAdjacent(events []models.CalendarEvent) []models.CalendarEvent {
	if len(events) < 2 {
		return events
	}
	merged := events[:1]
	for _, ev := range events[1:] {
		last := &merged[len(merged)-1]
		if ev.Summary == last.Summary && ev.Status == last.Status && ev.Start.Equal(last.End) {
			last.End = ev.End
			continue
		}
		merged = append(merged, ev)
	}
	return merged
}
