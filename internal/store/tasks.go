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

// CompletionEvent is emitted when a task goes from incomplete to complete.
type CompletionEvent struct {
	TaskID string
	Title  string
	XP     int
	At     time.Time
}

type TaskStore struct {
	mu    sync.Mutex
	repo  storage.Repository
	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string
	tasks []model.Task
}

func NewTaskStore(repo storage.Repository, opts Options) *TaskStore {
	opts = opts.withDefaults()
	return &TaskStore{
		repo:  repo,
		log:   opts.Logger.WithField("store", storage.KeyTasks),
		now:   opts.Now,
		newID: opts.NewID,
	}
}

// Open loads the persisted tasks. Missing or unreadable data falls back to the seed list.
func (s *TaskStore) Open(ctx context.Context) error {
	var loaded []model.Task
	found, err := loadDocument(ctx, s.repo, storage.KeyTasks, &loaded)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seeded := true
	switch {
	case err != nil:
		s.log.WithError(err).Warn("discarding stored tasks, using seed data")
		s.tasks = model.SeedTasks()
	case !found:
		s.tasks = model.SeedTasks()
	default:
		s.tasks = loaded
		seeded = false
	}
	s.log.WithFields(logrus.Fields{"count": len(s.tasks), "seeded": seeded}).Debug("tasks loaded")
	return nil
}

func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *TaskStore) Add(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Field:       in.Field,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		XP:          in.XP,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.snapshotLocked()
	s.tasks = append(s.tasks, task)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks = prev
		return model.Task{}, err
	}
	s.log.WithField("task_id", task.ID).Info("task added")
	return task, nil
}

// Update merges patch into the task with id. Unknown ids are ignored.
func (s *TaskStore) Update(ctx context.Context, id string, patch model.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	prev := s.tasks[i]
	s.tasks[i] = patch.Apply(prev)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks[i] = prev
		return err
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	prev := s.snapshotLocked()
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.tasks = prev
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}

// ToggleCompletion flips the completed flag. The event is set (and ok true) only
// when the task has just become complete.
func (s *TaskStore) ToggleCompletion(ctx context.Context, id string) (CompletionEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return CompletionEvent{}, false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	if err := s.persistLocked(ctx); err != nil {
		s.tasks[i].Completed = !s.tasks[i].Completed
		return CompletionEvent{}, false, err
	}
	t := s.tasks[i]
	if !t.Completed {
		return CompletionEvent{}, false, nil
	}
	s.log.WithFields(logrus.Fields{"task_id": t.ID, "xp": t.XP}).Info("task completed")
	return CompletionEvent{TaskID: t.ID, Title: t.Title, XP: t.XP, At: s.now()}, true, nil
}

func (s *TaskStore) CompletedXP() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, t := range s.tasks {
		if t.Completed {
			total += t.XP
		}
	}
	return total
}

func (s *TaskStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the collection so a failed write can restore it.
func (s *TaskStore) snapshotLocked() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *TaskStore) persistLocked(ctx context.Context) error {
	if err := saveDocument(ctx, s.repo, storage.KeyTasks, s.tasks); err != nil {
		s.log.WithError(err).Error("persist tasks failed")
		return err
	}
	return nil
}
