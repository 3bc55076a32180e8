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

type ReflectionStore struct {
	mu      sync.Mutex
	repo    storage.Repository
	log     logrus.FieldLogger
	now     func() time.Time
	newID   func() string
	entries []model.ReflectionEntry
	today   bool
}

func NewReflectionStore(repo storage.Repository, opts Options) *ReflectionStore {
	opts = opts.withDefaults()
	return &ReflectionStore{
		repo:  repo,
		log:   opts.Logger.WithField("store", storage.KeyReflectionEntries),
		now:   opts.Now,
		newID: opts.NewID,
	}
}

func (s *ReflectionStore) Open(ctx context.Context) error {
	var loaded []model.ReflectionEntry
	_, err := loadDocument(ctx, s.repo, storage.KeyReflectionEntries, &loaded)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return err
	}
	if err != nil {
		s.log.WithError(err).Warn("discarding stored reflections")
		loaded = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = loaded
	s.today = s.anyOnLocked(s.now())
	return nil
}

// Add stores entry with a fresh id. A zero timestamp defaults to now.
func (s *ReflectionStore) Add(ctx context.Context, entry model.ReflectionEntry) (model.ReflectionEntry, error) {
	now := s.now()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	if err := entry.Validate(); err != nil {
		return model.ReflectionEntry{}, err
	}
	entry.ID = s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if err := saveDocument(ctx, s.repo, storage.KeyReflectionEntries, s.entries); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		s.log.WithError(err).Error("persist reflections failed")
		return model.ReflectionEntry{}, err
	}
	if entry.OnDay(now) {
		s.today = true
	}
	s.log.WithFields(logrus.Fields{"entry_id": entry.ID, "source": entry.Source}).Info("reflection added")
	return entry, nil
}

func (s *ReflectionStore) Entries() []model.ReflectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ReflectionEntry(nil), s.entries...)
}

func (s *ReflectionStore) HasReflectedToday() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

// RefreshDay recomputes the today flag, e.g. after midnight. It reports whether the flag changed.
func (s *ReflectionStore) RefreshDay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.today
	s.today = s.anyOnLocked(s.now())
	return prev != s.today
}

// ByDateRange returns entries whose date falls in [start, end].
func (s *ReflectionStore) ByDateRange(start, end time.Time) []model.ReflectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ReflectionEntry, 0)
	for _, e := range s.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Latest returns the entry with the greatest date. The first one seen wins ties.
func (s *ReflectionStore) Latest() (model.ReflectionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return model.ReflectionEntry{}, false
	}
	best := s.entries[0]
	for _, e := range s.entries[1:] {
		if e.Date.After(best.Date) {
			best = e
		}
	}
	return best, true
}

// ForDay picks the day's entry with the latest timestamp.
func (s *ReflectionStore) ForDay(day time.Time) (model.ReflectionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.PickForDay(s.entries, day)
}

func (s *ReflectionStore) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ComputeStreak(s.entries, s.now())
}

func (s *ReflectionStore) anyOnLocked(day time.Time) bool {
	for _, e := range s.entries {
		if e.OnDay(day) {
			return true
		}
	}
	return false
}
