package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DayRollover runs a callback on a cron spec, normally at local midnight so
// day-scoped state (today's reflection flag, the dashboard prompt) can refresh.
type DayRollover struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

func NewDayRollover(spec string, log logrus.FieldLogger, onRollover func() error) (*DayRollover, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := cron.New()
	r := &DayRollover{cron: c, log: log.WithField("job", "day-rollover")}
	if _, err := c.AddFunc(spec, func() {
		if err := onRollover(); err != nil {
			r.log.WithError(err).Error("day rollover failed")
			return
		}
		r.log.Debug("day rollover ran")
	}); err != nil {
		return nil, fmt.Errorf("jobs: rollover spec %q: %w", spec, err)
	}
	return r, nil
}

func (r *DayRollover) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for a running callback to return.
func (r *DayRollover) Stop() {
	<-r.cron.Stop().Done()
}
