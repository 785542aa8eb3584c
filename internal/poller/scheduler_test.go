package poller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/structures"
	"untisd/internal/testutil"
)

func schedulerConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Poll: structures.PollConfig{Interval: interval},
	}
}

func TestScheduler_PollsImmediatelyOnInit(t *testing.T) {
	service := &testutil.MockTimetableService{}
	s := NewScheduler(schedulerConfig(time.Hour), &testutil.MockLogger{}, service)
	defer s.Stop()

	s.Init()

	assert.Equal(t, 1, service.Polls())
}

func TestScheduler_PollsOnCadence(t *testing.T) {
	service := &testutil.MockTimetableService{}
	s := NewScheduler(schedulerConfig(time.Second), &testutil.MockLogger{}, service)

	s.Init()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return service.Polls() >= 2
	}, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_StopEndsCadence(t *testing.T) {
	service := &testutil.MockTimetableService{}
	s := NewScheduler(schedulerConfig(time.Second), &testutil.MockLogger{}, service)
	s.Init()

	s.Stop()
	settled := service.Polls()
	time.Sleep(1500 * time.Millisecond)

	assert.Equal(t, settled, service.Polls())
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(schedulerConfig(time.Hour), &testutil.MockLogger{}, &testutil.MockTimetableService{})

	// Must not panic when the cadence never started.
	s.Stop()
}

func TestScheduler_PollErrorDoesNotStopCadence(t *testing.T) {
	service := &testutil.MockTimetableService{PollErr: assert.AnError}
	s := NewScheduler(schedulerConfig(time.Second), &testutil.MockLogger{}, service)

	s.Init()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return service.Polls() >= 2
	}, 3*time.Second, 50*time.Millisecond)
}
