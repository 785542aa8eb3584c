package models

import "time"

type LessonStatus string

const (
	StatusRegular     LessonStatus = "regular"
	StatusCancelled   LessonStatus = "cancelled"
	StatusSubstituted LessonStatus = "substituted"
	StatusIrregular   LessonStatus = "irregular"
)

// Specificity orders statuses for deduplication: a substitution or
// cancellation row always carries more information than the base row.
func (s LessonStatus) Specificity() int {
	switch s {
	case StatusCancelled, StatusSubstituted, StatusIrregular:
		return 1
	default:
		return 0
	}
}

// NameRef is a short/long name pair as WebUntis reports subjects,
// rooms, teachers and classes. Long names vary per school and may be
// empty.
type NameRef struct {
	Name     string `json:"name"`
	LongName string `json:"long_name,omitempty"`
}

// Lesson is one scheduled period, immutable for the duration of a poll
// cycle. Field availability differs between schools; only Start, End
// and Status are guaranteed by the client.
type Lesson struct {
	ID     int          `json:"id,omitempty"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status LessonStatus `json:"code"`

	Subjects []NameRef `json:"subjects,omitempty"`
	Rooms    []NameRef `json:"rooms,omitempty"`
	Teachers []NameRef `json:"teachers,omitempty"`
	Classes  []NameRef `json:"klassen,omitempty"`

	OriginalRooms    []NameRef `json:"original_rooms,omitempty"`
	OriginalTeachers []NameRef `json:"original_teachers,omitempty"`

	// LessonText and SubstitutionText are only populated when the
	// extended timetable is requested.
	LessonText       string `json:"lstext,omitempty"`
	SubstitutionText string `json:"subst_text,omitempty"`
	LessonNumber     int    `json:"lsnumber,omitempty"`
}

// Subject returns the primary subject short name, or "" when the
// server sent no subject list.
func (l *Lesson) Subject() string {
	if len(l.Subjects) == 0 {
		return ""
	}
	return l.Subjects[0].Name
}

// SubjectLong falls back to the short name when the school configures
// no long names.
func (l *Lesson) SubjectLong() string {
	if len(l.Subjects) == 0 {
		return ""
	}
	if l.Subjects[0].LongName != "" {
		return l.Subjects[0].LongName
	}
	return l.Subjects[0].Name
}

func (l *Lesson) Cancelled() bool {
	return l.Status == StatusCancelled
}

type FilterMode string

const (
	FilterNone  FilterMode = "none"
	FilterAllow FilterMode = "allow"
	FilterBlock FilterMode = "block"
)

// FilterRule is the subject/description policy applied to every lesson
// before aggregation and rendering.
type FilterRule struct {
	Mode         FilterMode
	Subjects     []string
	Descriptions []string
}

// Day holds the lessons of one calendar date, sorted by start time.
type Day struct {
	Date    string   `json:"date"` // YYYY-MM-DD in the configured zone
	Lessons []Lesson `json:"lessons"`
}

// AggregationResult is the per-query selection of lessons. It is
// rebuilt from scratch on every poll and never persisted.
type AggregationResult struct {
	Current    *Lesson
	Next       *Lesson
	NextWakeUp *Lesson

	// TodayStart / TodayEnd span today's first and last kept lesson.
	TodayStart *time.Time
	TodayEnd   *time.Time

	Days []Day
}
