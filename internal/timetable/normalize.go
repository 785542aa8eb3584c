package timetable

import (
	"sort"
	"time"

	"untisd/internal/models"
)

type dedupKey struct {
	start   int64
	end     int64
	subject string
}

// Normalize sorts lessons by start time (ties by subject short name)
// and collapses duplicate (start, end, subject) entries. WebUntis
// emits a second row for a period when it is cancelled or substituted;
// the more specific status wins, and between two equally specific rows
// the later one does, since the server appends revisions in order.
func Normalize(raw []models.Lesson) []models.Lesson {
	kept := make(map[dedupKey]int, len(raw))
	out := make([]models.Lesson, 0, len(raw))

	for _, lesson := range raw {
		key := dedupKey{
			start:   lesson.Start.Unix(),
			end:     lesson.End.Unix(),
			subject: lesson.Subject(),
		}
		idx, seen := kept[key]
		if !seen {
			kept[key] = len(out)
			out = append(out, lesson)
			continue
		}
		if lesson.Status.Specificity() >= out[idx].Status.Specificity() {
			out[idx] = lesson
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Subject() < out[j].Subject()
	})

	return out
}

// GroupByDay splits a normalized lesson list into per-date Days,
// keyed by the start time's calendar date in loc. Input order is
// preserved within each day, so the result stays sorted.
func GroupByDay(lessons []models.Lesson, loc *time.Location) []models.Day {
	if loc == nil {
		loc = time.Local
	}

	index := make(map[string]int)
	days := make([]models.Day, 0)

	for _, lesson := range lessons {
		date := lesson.Start.In(loc).Format("2006-01-02")
		idx, ok := index[date]
		if !ok {
			idx = len(days)
			index[date] = idx
			days = append(days, models.Day{Date: date})
		}
		days[idx].Lessons = append(days[idx].Lessons, lesson)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days
}
