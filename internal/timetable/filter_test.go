package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"untisd/internal/models"
)

func mkLesson(day int, hour, min int, durMin int, subject string, status models.LessonStatus) models.Lesson {
	start := time.Date(2024, 9, day, hour, min, 0, 0, time.UTC)
	return models.Lesson{
		Start:    start,
		End:      start.Add(time.Duration(durMin) * time.Minute),
		Status:   status,
		Subjects: []models.NameRef{{Name: subject, LongName: subject + " (long)"}},
	}
}

func subjects(lessons []models.Lesson) []string {
	out := make([]string, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, l.Subject())
	}
	return out
}

func TestFilter_BlockMode(t *testing.T) {
	lessons := []models.Lesson{
		mkLesson(2, 8, 0, 45, "Math", models.StatusRegular),
		mkLesson(2, 9, 0, 45, "Sport", models.StatusRegular),
		mkLesson(2, 10, 0, 45, "English", models.StatusRegular),
	}

	out := Filter(lessons, models.FilterRule{Mode: models.FilterBlock, Subjects: []string{"Sport"}})

	assert.Equal(t, []string{"Math", "English"}, subjects(out))
	for _, l := range out {
		assert.NotEqual(t, "Sport", l.Subject())
	}
}

func TestFilter_AllowMode(t *testing.T) {
	lessons := []models.Lesson{
		mkLesson(2, 8, 0, 45, "Math", models.StatusRegular),
		mkLesson(2, 9, 0, 45, "Sport", models.StatusRegular),
	}

	out := Filter(lessons, models.FilterRule{Mode: models.FilterAllow, Subjects: []string{"Math"}})

	assert.Equal(t, []string{"Math"}, subjects(out))
}

func TestFilter_AllowModeEmptySubjectsKeepsAll(t *testing.T) {
	lessons := []models.Lesson{
		mkLesson(2, 8, 0, 45, "Math", models.StatusRegular),
		mkLesson(2, 9, 0, 45, "Sport", models.StatusRegular),
	}

	out := Filter(lessons, models.FilterRule{Mode: models.FilterAllow})

	assert.Len(t, out, 2)
}

func TestFilter_NoneModeKeepsAll(t *testing.T) {
	lessons := []models.Lesson{
		mkLesson(2, 8, 0, 45, "Math", models.StatusRegular),
		mkLesson(2, 9, 0, 45, "Sport", models.StatusCancelled),
	}

	out := Filter(lessons, models.FilterRule{Mode: models.FilterNone, Subjects: []string{"Sport"}})

	assert.Len(t, out, 2)
}

func TestFilter_DescriptionSubstringCaseInsensitive(t *testing.T) {
	excursion := mkLesson(2, 8, 0, 45, "Math", models.StatusRegular)
	excursion.SubstitutionText = "EXKURSION Zoo"
	plain := mkLesson(2, 9, 0, 45, "Math", models.StatusRegular)

	out := Filter([]models.Lesson{excursion, plain}, models.FilterRule{
		Mode:         models.FilterNone,
		Descriptions: []string{"exkursion"},
	})

	assert.Len(t, out, 1)
	assert.Equal(t, plain.Start, out[0].Start)
}

func TestFilter_DescriptionMatchesLessonText(t *testing.T) {
	l := mkLesson(2, 8, 0, 45, "Math", models.StatusRegular)
	l.LessonText = "Klassenfahrt"

	out := Filter([]models.Lesson{l}, models.FilterRule{Descriptions: []string{"klassenfahrt"}})

	assert.Empty(t, out)
}

func TestFilter_DropsLessonsWithoutSubject(t *testing.T) {
	noSubject := models.Lesson{
		Start: time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 9, 2, 8, 45, 0, 0, time.UTC),
	}

	out := Filter([]models.Lesson{noSubject}, models.FilterRule{})

	assert.Empty(t, out)
}

func TestFilter_MultiSubjectPeriodMatchesAnyName(t *testing.T) {
	l := mkLesson(2, 8, 0, 45, "Math", models.StatusRegular)
	l.Subjects = append(l.Subjects, models.NameRef{Name: "Sport"})

	out := Filter([]models.Lesson{l}, models.FilterRule{Mode: models.FilterBlock, Subjects: []string{"Sport"}})

	assert.Empty(t, out)
}

func TestFilter_EmptyInput(t *testing.T) {
	out := Filter(nil, models.FilterRule{Mode: models.FilterBlock, Subjects: []string{"Sport"}})
	assert.Empty(t, out)
}
