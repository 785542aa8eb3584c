// Package timetable implements the lesson pipeline: filtering,
// normalization, aggregation and entity rendering. All functions are
// pure; the service layer owns state.
package timetable

import (
	"strings"

	"untisd/internal/models"
)

// Filter applies the configured subject and description rules.
// Lessons without a subject are always dropped: the pipeline cannot
// name or deduplicate them. Description substrings match
// case-insensitively against both info fields regardless of mode.
func Filter(lessons []models.Lesson, rule models.FilterRule) []models.Lesson {
	out := make([]models.Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		if keepLesson(&lesson, rule) {
			out = append(out, lesson)
		}
	}
	return out
}

func keepLesson(lesson *models.Lesson, rule models.FilterRule) bool {
	if len(lesson.Subjects) == 0 {
		return false
	}

	for _, needle := range rule.Descriptions {
		if needle == "" {
			continue
		}
		if containsFold(lesson.LessonText, needle) || containsFold(lesson.SubstitutionText, needle) {
			return false
		}
	}

	switch rule.Mode {
	case models.FilterBlock:
		if subjectListed(lesson, rule.Subjects) {
			return false
		}
	case models.FilterAllow:
		if len(rule.Subjects) > 0 && !subjectListed(lesson, rule.Subjects) {
			return false
		}
	}

	return true
}

// subjectListed reports whether any of the lesson's subjects appears
// in the rule set. Multi-subject periods match on any name, the way
// the WebUntis UI filters them.
func subjectListed(lesson *models.Lesson, subjects []string) bool {
	for _, s := range lesson.Subjects {
		for _, listed := range subjects {
			if s.Name == listed {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
