package controllers

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"untisd/internal/models"
	"untisd/internal/providers"
	"untisd/internal/services"
)

type CalendarController struct {
	logger  providers.Logger
	service services.TimetableServiceInterface
}

func NewCalendarController(logger providers.Logger, service services.TimetableServiceInterface) *CalendarController {
	return &CalendarController{
		logger:  logger,
		service: service,
	}
}

// Feed serves the rendered lesson events as an iCalendar feed, one
// VEVENT per (merged) lesson, suitable for subscription from any
// calendar client.
func (cc *CalendarController) Feed(w http.ResponseWriter, r *http.Request) {
	events := cc.service.Events()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//untisd//timetable//EN")

	stamp := time.Now().UTC()
	for _, ev := range events {
		ve := cal.AddEvent(eventUID(ev))
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(ev.Start)
		ve.SetEndAt(ev.End)
		ve.SetSummary(ev.Summary)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Status == models.StatusCancelled {
			ve.SetStatus(ics.ObjectStatusCancelled)
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := cal.SerializeTo(w); err != nil {
		cc.logger.Errorf(providers.TypeGet, "Serializing calendar feed failed: %s", err)
	}
}

// eventUID must be stable across polls so subscribed clients update
// events in place instead of duplicating them.
func eventUID(ev models.CalendarEvent) string {
	return fmt.Sprintf("%d-%d@untisd", ev.Start.Unix(), ev.End.Unix())
}
