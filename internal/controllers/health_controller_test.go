package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/models"
	"untisd/internal/testutil"
)

func TestHealth(t *testing.T) {
	fetched := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
	service := &testutil.MockTimetableService{
		Fetched: fetched,
		DaysData: []models.Day{{
			Date:    "2024-09-02",
			Lessons: []models.Lesson{{}, {}},
		}},
	}
	hc := NewHealthController(service)

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(2), resp["lessons"])
	assert.Equal(t, fetched.Format(time.RFC3339), resp["last_poll"])
	assert.NotEmpty(t, resp["uptime"])
}

func TestHealth_NeverPolled(t *testing.T) {
	hc := NewHealthController(&testutil.MockTimetableService{})

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "never", resp["last_poll"])
	assert.Equal(t, float64(0), resp["lessons"])
}

func TestHealth_RejectsNonGet(t *testing.T) {
	hc := NewHealthController(&testutil.MockTimetableService{})

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m42s", formatDuration(42*time.Second))
	assert.Equal(t, "1h30m0s", formatDuration(90*time.Minute))
	assert.Equal(t, "25h0m5s", formatDuration(25*time.Hour+5*time.Second))
}
