package presenter

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

const DefaultRefresh = "@every 1m"

// Scheduler fires a refresh callback on a cron schedule so remaining-day
// counts stay current without user input.
type Scheduler struct {
	cron *cron.Cron
	log  *log.Logger
}

// NewScheduler parses spec (standard 5-field or @descriptor) and registers fn.
func NewScheduler(spec string, fn func(), logger *log.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultRefresh
	}
	if logger == nil {
		logger = log.Default()
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, fn); err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c, log: logger}, nil
}

func (s *Scheduler) Start() {
	s.log.Debug("refresh scheduler started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Debug("refresh scheduler stopped")
}
