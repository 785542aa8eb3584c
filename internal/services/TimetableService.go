package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"

	"untisd/internal/models"
	"untisd/internal/providers"
	"untisd/internal/structures"
	"untisd/internal/timetable"
	"untisd/internal/untis"
)

type TimetableServiceInterface interface {
	Poll(ctx context.Context) error
	Entities() []models.Entity
	Entity(id string) (models.Entity, bool)
	Events() []models.CalendarEvent
	Days() []models.Day
	LastFetched() time.Time
	LessonCount() int
}

// TimetableService runs the poll cycle (fetch, filter, normalize) and
// holds the last good snapshot. Aggregation and rendering are pure and
// run per read, so entity states follow the clock between polls while
// the underlying data only changes when a poll succeeds.
type TimetableService struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	client  untis.ClientInterface

	loc        *time.Location
	rule       models.FilterRule
	renderOpts timetable.RenderOptions

	snapshot atomic.Value // *models.Snapshot

	// authFailed suppresses repeated auth-failure logging until the
	// next successful login.
	authFailed bool
	now        func() time.Time
}

func NewTimetableService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, client untis.ClientInterface) TimetableServiceInterface {
	loc, err := conf.Location()
	if err != nil {
		// Config validation already rejected bad zones.
		loc = time.Local
	}

	return &TimetableService{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		client:  client,
		loc:     loc,
		rule: models.FilterRule{
			Mode:         models.FilterMode(conf.Filter.Mode),
			Subjects:     conf.Filter.Subjects,
			Descriptions: conf.Filter.Description,
		},
		renderOpts: timetable.RenderOptions{
			LongNames:       conf.Calendar.LongName,
			ShowCancelled:   conf.Calendar.ShowCancelledLessons,
			ShowRoomChange:  conf.Calendar.ShowRoomChange,
			DescriptionMode: timetable.DescriptionMode(conf.Calendar.DescriptionMode),
			RoomMode:        timetable.RoomMode(conf.Calendar.Room),
			GenerateJSON:    conf.Sensor.GenerateJSON,
		},
		now: time.Now,
	}
}

// Poll runs one fetch-and-normalize cycle. A transient failure leaves
// the previous snapshot in place; an authentication failure clears it,
// since serving stale data for a dead account would be misleading.
func (ts *TimetableService) Poll(ctx context.Context) error {
	started := ts.now()
	err := ts.poll(ctx)
	ts.metrics.ObservePollDuration(ts.now().Sub(started))

	if !ts.conf.Untis.KeepLoggedIn && ts.client.LoggedIn() {
		ts.client.Logout(ctx)
	}
	return err
}

func (ts *TimetableService) poll(ctx context.Context) error {
	if !ts.client.LoggedIn() {
		if err := ts.client.Login(ctx); err != nil {
			return ts.authFailure(err)
		}
	}

	now := ts.now().In(ts.loc)
	start := now
	end := now.AddDate(0, 0, ts.conf.Poll.DaysToFuture)

	// Requests past the school year end return errors; clamp like the
	// timetable UI does. A failed lookup is not fatal.
	if yearEnd, err := callWithRelogin(ctx, ts, func() (time.Time, error) {
		return ts.client.SchoolyearEnd(ctx)
	}); err == nil && !yearEnd.IsZero() && yearEnd.Before(end) {
		end = yearEnd
	}

	raw, err := callWithRelogin(ctx, ts, func() ([]models.Lesson, error) {
		return ts.client.Timetable(ctx, start, end)
	})
	if err != nil {
		if errors.Is(err, untis.ErrBadCredentials) || errors.Is(err, untis.ErrNoRight) {
			return ts.authFailure(err)
		}
		ts.metrics.IncPollsTotal(providers.PollOutcomeFetchErr)
		ts.logger.Warnf(providers.TypePoll, "Timetable fetch for '%s@%s' failed, keeping previous data: %s",
			ts.conf.Untis.Username, ts.conf.Untis.School, err)
		return err
	}

	kept := timetable.Filter(raw, ts.rule)
	days := timetable.GroupByDay(timetable.Normalize(kept), ts.loc)

	snap := &models.Snapshot{Days: days, FetchedAt: now}
	ts.snapshot.Store(snap)

	ts.authFailed = false
	ts.metrics.IncPollsTotal(providers.PollOutcomeSuccess)
	ts.metrics.SetLessonsTotal(countLessons(days))
	ts.metrics.SetCalendarEventsTotal(len(ts.Events()))
	ts.metrics.SetLastPollSuccess(now)
	ts.logger.Debugf(providers.TypePoll, "Poll ok: %d lessons over %d days", countLessons(days), len(days))
	return nil
}

// callWithRelogin retries a session call once after re-authenticating
// when the server reports the session as expired (keep_logged_in).
func callWithRelogin[T any](ctx context.Context, ts *TimetableService, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err != nil && errors.Is(err, untis.ErrNotAuthenticated) {
		ts.logger.Debugf(providers.TypePoll, "Session expired, re-authenticating")
		if lerr := ts.client.Login(ctx); lerr != nil {
			return out, lerr
		}
		return fn()
	}
	return out, err
}

// authFailure handles credential and permission errors. Both warn only
// once until a cycle succeeds again; bad credentials additionally clear
// the snapshot, a missing right keeps the last good data.
func (ts *TimetableService) authFailure(err error) error {
	ts.metrics.IncPollsTotal(providers.PollOutcomeAuthError)

	if errors.Is(err, untis.ErrBadCredentials) {
		// Credentials are wrong, stale data would lie. Clear state.
		ts.snapshot.Store((*models.Snapshot)(nil))
	}

	if !ts.authFailed {
		ts.logger.Warnf(providers.TypePoll, "WebUntis rejected '%s@%s': %s",
			ts.conf.Untis.Username, ts.conf.Untis.School, err)
		ts.authFailed = true
	}
	return err
}

func (ts *TimetableService) loadSnapshot() *models.Snapshot {
	v := ts.snapshot.Load()
	if v == nil {
		return nil
	}
	snap, _ := v.(*models.Snapshot)
	return snap
}

func (ts *TimetableService) render() (models.RenderedEntities, bool) {
	snap := ts.loadSnapshot()
	if snap == nil {
		return models.RenderedEntities{}, false
	}
	result := timetable.Aggregate(snap.Days, ts.now(), ts.loc, ts.conf.Sensor.IncludeCancelled)
	return timetable.Render(result, ts.renderOpts), true
}

func (ts *TimetableService) Entities() []models.Entity {
	rendered, ok := ts.render()
	if !ok {
		return unknownEntities()
	}
	return rendered.Entities
}

func (ts *TimetableService) Entity(id string) (models.Entity, bool) {
	for _, e := range ts.Entities() {
		if e.EntityID == id {
			return e, true
		}
	}
	return models.Entity{}, false
}

func (ts *TimetableService) Events() []models.CalendarEvent {
	rendered, ok := ts.render()
	if !ok {
		return nil
	}
	return rendered.Events
}

func (ts *TimetableService) Days() []models.Day {
	snap := ts.loadSnapshot()
	if snap == nil {
		return nil
	}
	return snap.Days
}

func (ts *TimetableService) LastFetched() time.Time {
	snap := ts.loadSnapshot()
	if snap == nil {
		return time.Time{}
	}
	return snap.FetchedAt
}

func (ts *TimetableService) LessonCount() int {
	return countLessons(ts.Days())
}

// unknownEntities is served before the first successful poll and after
// an authentication failure cleared the snapshot.
func unknownEntities() []models.Entity {
	ids := []string{
		models.EntityClass,
		models.EntityNextClass,
		models.EntityWakeUp,
		models.EntityTodayStart,
		models.EntityTodayEnd,
	}
	out := make([]models.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Entity{EntityID: id, State: models.StateUnknown})
	}
	return out
}

func countLessons(days []models.Day) int {
	total := 0
	for _, day := range days {
		total += len(day.Lessons)
	}
	return total
}
