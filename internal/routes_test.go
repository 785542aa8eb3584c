package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/controllers"
	"untisd/internal/testutil"
)

func TestInitRoutes(t *testing.T) {
	logger := &testutil.MockLogger{}
	service := &testutil.MockTimetableService{}
	api := controllers.NewApiController(logger, service, testutil.NewMockCache())
	calendar := controllers.NewCalendarController(logger, service)

	router := InitRoutes(api, calendar)

	routes := router.GetRoutes()
	require.Len(t, routes, 7)

	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, r.Url)
		assert.NotNil(t, r.Handler, r.Url)
	}
	assert.Equal(t, []string{
		"/entities",
		"/entities/class",
		"/entities/next_class",
		"/entities/next_lesson_to_wake_up",
		"/entities/today",
		"/lessons",
		"/calendar.ics",
	}, urls)
}
