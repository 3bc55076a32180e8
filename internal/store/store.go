// Package store holds the app's persisted collections. Each store loads its
// collection once on Open and rewrites it whole after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/sirupsen/logrus"
)

var ErrMalformed = errors.New("store: malformed document")

type Options struct {
	Logger logrus.FieldLogger
	Now    func() time.Time
	NewID  func() string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// loadDocument decodes the value under key into dst. found is false when the key is absent.
func loadDocument(ctx context.Context, repo storage.Repository, key string, dst any) (bool, error) {
	doc, err := repo.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(doc.Value, dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func saveDocument(ctx context.Context, repo storage.Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := repo.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Services is the set of stores the app runs against.
type Services struct {
	Tasks        *TaskStore
	Reflections  *ReflectionStore
	CheckIns     *CheckInLog
	Achievements *AchievementStore

	repo storage.Repository
}

// Open initialises every store from repo. Close releases repo.
func Open(ctx context.Context, repo storage.Repository, opts Options) (*Services, error) {
	opts = opts.withDefaults()
	s := &Services{
		Tasks:        NewTaskStore(repo, opts),
		Reflections:  NewReflectionStore(repo, opts),
		CheckIns:     NewCheckInLog(repo, opts),
		Achievements: NewAchievementStore(repo, opts),
		repo:         repo,
	}
	if err := s.Tasks.Open(ctx); err != nil {
		return nil, err
	}
	if err := s.Reflections.Open(ctx); err != nil {
		return nil, err
	}
	if err := s.CheckIns.Open(ctx); err != nil {
		return nil, err
	}
	if err := s.Achievements.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Services) Close() error {
	if s == nil || s.repo == nil {
		return nil
	}
	return s.repo.Close()
}

// TotalXP is completed task XP plus earned achievement XP.
func (s *Services) TotalXP() int {
	return s.Tasks.CompletedXP() + s.Achievements.EarnedXP()
}
