package timetable

import (
	"time"

	"untisd/internal/models"
)

// Aggregate selects the current, next and wake-up lesson relative to
// now from an ordered day list. now is converted into loc before any
// comparison so mixed-zone inputs cannot skew the selection.
//
// Cancelled lessons only count when includeCancelled is set; a day
// with no qualifying lesson falls through to the next one.
func Aggregate(days []models.Day, now time.Time, loc *time.Location, includeCancelled bool) models.AggregationResult {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	today := now.Format("2006-01-02")

	result := models.AggregationResult{Days: days}

	for di := range days {
		day := &days[di]
		for li := range day.Lessons {
			lesson := &day.Lessons[li]
			if lesson.Cancelled() && !includeCancelled {
				continue
			}

			if day.Date == today && !now.Before(lesson.Start) && now.Before(lesson.End) && result.Current == nil {
				result.Current = lesson
			}
			if lesson.Start.After(now) && result.Next == nil {
				result.Next = lesson
			}
		}

		if day.Date == today {
			start, end := daySpan(day, includeCancelled)
			result.TodayStart = start
			result.TodayEnd = end
		}
	}

	result.NextWakeUp = nextWakeUp(days, now, today, includeCancelled)

	return result
}

// nextWakeUp picks the first lesson of the first day that still lies
// ahead: today as long as its first lesson has not started, otherwise
// the earliest later day that has a qualifying lesson.
func nextWakeUp(days []models.Day, now time.Time, today string, includeCancelled bool) *models.Lesson {
	for di := range days {
		day := &days[di]
		if day.Date < today {
			continue
		}
		first := firstLesson(day, includeCancelled)
		if first == nil {
			continue
		}
		if day.Date == today && !first.Start.After(now) {
			// School already started today; wake-up refers to the next day.
			continue
		}
		return first
	}
	return nil
}

func firstLesson(day *models.Day, includeCancelled bool) *models.Lesson {
	for li := range day.Lessons {
		if day.Lessons[li].Cancelled() && !includeCancelled {
			continue
		}
		return &day.Lessons[li]
	}
	return nil
}

func daySpan(day *models.Day, includeCancelled bool) (*time.Time, *time.Time) {
	var start, end *time.Time
	for li := range day.Lessons {
		lesson := &day.Lessons[li]
		if lesson.Cancelled() && !includeCancelled {
			continue
		}
		if start == nil || lesson.Start.Before(*start) {
			s := lesson.Start
			start = &s
		}
		if end == nil || lesson.End.After(*end) {
			e := lesson.End
			end = &e
		}
	}
	return start, end
}
