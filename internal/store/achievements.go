package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/sirupsen/logrus"
)

var ErrAchievementNotFound = errors.New("store: achievement not found")

// ProgressResult is the outcome of UpdateProgress. Unlocked is true only on the
// call that moved the achievement from in progress to completed.
type ProgressResult struct {
	Achievement model.CustomAchievement
	Unlocked    bool
}

type AchievementStore struct {
	mu    sync.Mutex
	repo  storage.Repository
	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string
	items []model.CustomAchievement
}

func NewAchievementStore(repo storage.Repository, opts Options) *AchievementStore {
	opts = opts.withDefaults()
	return &AchievementStore{
		repo:  repo,
		log:   opts.Logger.WithField("store", storage.KeyCustomAchievements),
		now:   opts.Now,
		newID: opts.NewID,
	}
}

func (s *AchievementStore) Open(ctx context.Context) error {
	var loaded []model.CustomAchievement
	_, err := loadDocument(ctx, s.repo, storage.KeyCustomAchievements, &loaded)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return err
	}
	if err != nil {
		s.log.WithError(err).Warn("discarding stored achievements")
		loaded = nil
	}
	s.mu.Lock()
	s.items = loaded
	s.mu.Unlock()
	return nil
}

func (s *AchievementStore) Achievements() []model.CustomAchievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CustomAchievement(nil), s.items...)
}

func (s *AchievementStore) Create(ctx context.Context, in model.AchievementInput) (model.CustomAchievement, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return model.CustomAchievement{}, err
	}
	a := model.CustomAchievement{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Completed:    in.CurrentValue >= in.TargetValue,
		Icon:         in.Icon,
		CreatedAt:    s.now(),
		XPReward:     in.XPReward,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, a)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[:len(s.items)-1]
		return model.CustomAchievement{}, err
	}
	s.log.WithField("achievement_id", a.ID).Info("achievement created")
	return a, nil
}

// UpdateProgress sets the current value and recomputes completion. Values past
// the target are kept as-is; negative values are rejected.
func (s *AchievementStore) UpdateProgress(ctx context.Context, id string, value int) (ProgressResult, error) {
	if value < 0 {
		return ProgressResult{}, fmt.Errorf("%w: %d", model.ErrNegativeProgress, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := -1
	for j := range s.items {
		if s.items[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return ProgressResult{}, fmt.Errorf("%w: %s", ErrAchievementNotFound, id)
	}

	prev := s.items[i]
	next := prev
	next.CurrentValue = value
	next.Completed = value >= next.TargetValue
	s.items[i] = next
	if err := s.persistLocked(ctx); err != nil {
		s.items[i] = prev
		return ProgressResult{}, err
	}

	res := ProgressResult{Achievement: next, Unlocked: next.Completed && !prev.Completed}
	if res.Unlocked {
		s.log.WithFields(logrus.Fields{"achievement_id": id, "xp": next.XPReward}).Info("achievement unlocked")
	}
	return res, nil
}

// EarnedXP sums the XP of completed system and custom achievements.
func (s *AchievementStore) EarnedXP() int {
	return model.EarnedAchievementXP(model.CombineAchievements(model.SystemAchievements(), s.Achievements()))
}

func (s *AchievementStore) persistLocked(ctx context.Context) error {
	if err := saveDocument(ctx, s.repo, storage.KeyCustomAchievements, s.items); err != nil {
		s.log.WithError(err).Error("persist achievements failed")
		return err
	}
	return nil
}
