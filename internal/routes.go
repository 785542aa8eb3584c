package internal

import (
	"net/http"

	"untisd/internal/controllers"
	"untisd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, calendarController *controllers.CalendarController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/entities", http.HandlerFunc(apiController.GetEntities))
	routers.Get("/entities/class", http.HandlerFunc(apiController.GetClass))
	routers.Get("/entities/next_class", http.HandlerFunc(apiController.GetNextClass))
	routers.Get("/entities/next_lesson_to_wake_up", http.HandlerFunc(apiController.GetNextLessonToWakeUp))
	routers.Get("/entities/today", http.HandlerFunc(apiController.GetToday))
	routers.Get("/lessons", http.HandlerFunc(apiController.GetLessons))
	routers.Get("/calendar.ics", http.HandlerFunc(calendarController.Feed))
	return routers
}
