package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/sirupsen/logrus"
)

// CheckInRecord is one finished indirect check-in as kept in the history.
type CheckInRecord struct {
	model.IndirectCheckIn
	Date time.Time `json:"date"`
}

// CheckInLog tracks the last check-in day and the indirect check-in history.
type CheckInLog struct {
	mu      sync.Mutex
	repo    storage.Repository
	log     logrus.FieldLogger
	last    string
	history []CheckInRecord
}

func NewCheckInLog(repo storage.Repository, opts Options) *CheckInLog {
	opts = opts.withDefaults()
	return &CheckInLog{repo: repo, log: opts.Logger.WithField("store", storage.KeyCheckInHistory)}
}

func (c *CheckInLog) Open(ctx context.Context) error {
	var history []CheckInRecord
	if _, err := loadDocument(ctx, c.repo, storage.KeyCheckInHistory, &history); err != nil {
		if !errors.Is(err, ErrMalformed) {
			return err
		}
		c.log.WithError(err).Warn("discarding check-in history")
		history = nil
	}
	var last string
	if _, err := loadDocument(ctx, c.repo, storage.KeyLastCheckInDate, &last); err != nil {
		if !errors.Is(err, ErrMalformed) {
			return err
		}
		c.log.WithError(err).Warn("discarding last check-in date")
		last = ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = history
	c.last = last
	return nil
}

// Record appends an indirect check-in and marks its day as checked in.
func (c *CheckInLog) Record(ctx context.Context, in model.IndirectCheckIn, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, CheckInRecord{IndirectCheckIn: in, Date: at})
	if err := saveDocument(ctx, c.repo, storage.KeyCheckInHistory, c.history); err != nil {
		c.history = c.history[:len(c.history)-1]
		return err
	}
	return c.markLocked(ctx, at)
}

// MarkCheckedIn records at's day as the last check-in without adding history.
func (c *CheckInLog) MarkCheckedIn(ctx context.Context, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markLocked(ctx, at)
}

func (c *CheckInLog) markLocked(ctx context.Context, at time.Time) error {
	day := model.DayKey(at)
	if err := saveDocument(ctx, c.repo, storage.KeyLastCheckInDate, day); err != nil {
		return err
	}
	c.last = day
	c.log.WithField("day", day).Debug("check-in recorded")
	return nil
}

// LastCheckInDate is the YYYY-MM-DD day of the last check-in, or "" if none.
func (c *CheckInLog) LastCheckInDate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *CheckInLog) CheckedInOn(day time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last != "" && c.last == model.DayKey(day)
}

func (c *CheckInLog) History() []CheckInRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CheckInRecord(nil), c.history...)
}
