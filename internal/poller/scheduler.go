package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"untisd/internal/poller/interfaces"
	"untisd/internal/providers"
	"untisd/internal/services"
	"untisd/internal/structures"
)

// pollTimeout bounds one cycle; a hung fetch must never block the next
// cadence slot forever.
const pollTimeout = 2 * time.Minute

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.TimetableServiceInterface
	cron    *cron.Cron
	opsMu   sync.Mutex
}

// Init runs one poll immediately so entities are populated at startup,
// then starts the periodic cadence.
func (s *Scheduler) Init() {
	s.poll()

	s.cron = cron.New()
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.config.Poll.Interval), s.poll)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Scheduling polls every %s failed: %s", s.config.Poll.Interval, err)
		return
	}
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Polling WebUntis every %s", s.config.Poll.Interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) poll() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	if err := s.service.Poll(ctx); err != nil {
		// Poll already logged specifics; entities keep serving the
		// previous snapshot.
		return
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TimetableServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
	}
}
