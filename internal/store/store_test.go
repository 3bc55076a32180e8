package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)

func testOptions() Options {
	n := 0
	return Options{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

// failingRepo is a memory repository whose writes can be switched off.
type failingRepo struct {
	*storage.MemoryRepository
	failPuts bool
}

var errDiskFull = errors.New("disk full")

func (r *failingRepo) Put(ctx context.Context, key string, value []byte) error {
	if r.failPuts {
		return errDiskFull
	}
	return r.MemoryRepository.Put(ctx, key, value)
}

func openSQLite(t *testing.T, path string) storage.Repository {
	t.Helper()
	repo, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	return repo
}

func TestTasksSeedMutateReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levelup.db")

	svc, err := Open(ctx, openSQLite(t, path), testOptions())
	require.NoError(t, err)
	require.Len(t, svc.Tasks.Tasks(), 6)

	added, err := svc.Tasks.Add(ctx, model.TaskInput{
		Title: "Revise organic chemistry", Field: "JEE Preparation", DueDate: "2026-02-12",
		Priority: model.PriorityHigh, DurationMinutes: 90, XP: model.ComputeXP(model.PriorityHigh, 90),
	})
	require.NoError(t, err)
	require.False(t, added.Completed)
	require.Equal(t, 65, added.XP)

	title := "Meditation (20 min)"
	require.NoError(t, svc.Tasks.Update(ctx, "4", model.TaskPatch{Title: &title}))
	require.NoError(t, svc.Tasks.Delete(ctx, "2"))
	_, _, err = svc.Tasks.ToggleCompletion(ctx, "1")
	require.NoError(t, err)
	before := svc.Tasks.Tasks()
	require.NoError(t, svc.Close())

	reopened, err := Open(ctx, openSQLite(t, path), testOptions())
	require.NoError(t, err)
	defer reopened.Close()

	require.ElementsMatch(t, before, reopened.Tasks.Tasks())
}

func TestTaskUpdateAndDeleteIgnoreUnknownID(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	svc, err := Open(ctx, repo, testOptions())
	require.NoError(t, err)

	title := "ghost"
	require.NoError(t, svc.Tasks.Update(ctx, "missing", model.TaskPatch{Title: &title}))
	require.NoError(t, svc.Tasks.Delete(ctx, "missing"))
	require.Equal(t, model.SeedTasks(), svc.Tasks.Tasks())

	_, err = repo.Get(ctx, storage.KeyTasks)
	require.ErrorIs(t, err, storage.ErrNotFound, "no-op mutations must not persist")
}

func TestTaskAddRejectsInvalidInput(t *testing.T) {
	svc, err := Open(context.Background(), storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)

	_, err = svc.Tasks.Add(context.Background(), model.TaskInput{
		Title: "x", Field: "Coding", DueDate: "2026-02-12", Priority: "urgent", DurationMinutes: 30,
	})
	require.ErrorIs(t, err, model.ErrInvalidPriority)
	require.Len(t, svc.Tasks.Tasks(), 6)
}

func TestToggleCompletionEmitsOnlyOnCompletion(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)

	var events []CompletionEvent
	toggle := func(id string) {
		ev, ok, err := svc.Tasks.ToggleCompletion(ctx, id)
		require.NoError(t, err)
		if ok {
			events = append(events, ev)
		}
	}

	toggle("1")
	require.Len(t, events, 1)
	require.Equal(t, CompletionEvent{TaskID: "1", Title: "Complete Physics Module 3", XP: 50, At: testNow}, events[0])

	// seeded as completed: complete -> incomplete -> complete
	toggle("4")
	require.Len(t, events, 1)
	toggle("4")
	require.Len(t, events, 2)
	require.Equal(t, 20, events[1].XP)

	_, ok, err := svc.Tasks.ToggleCompletion(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompletedXPAndTotal(t *testing.T) {
	svc, err := Open(context.Background(), storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)
	require.Equal(t, 55, svc.Tasks.CompletedXP())
	require.Equal(t, 55+500, svc.TotalXP())
}

func TestMalformedDocumentsFallBack(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	for _, key := range []string{storage.KeyTasks, storage.KeyReflectionEntries, storage.KeyCustomAchievements, storage.KeyCheckInHistory, storage.KeyLastCheckInDate} {
		require.NoError(t, repo.Put(ctx, key, []byte(`{not json`)))
	}

	svc, err := Open(ctx, repo, testOptions())
	require.NoError(t, err)
	require.Equal(t, model.SeedTasks(), svc.Tasks.Tasks())
	require.Empty(t, svc.Reflections.Entries())
	require.Empty(t, svc.Achievements.Achievements())
	require.Empty(t, svc.CheckIns.History())
	require.Equal(t, "", svc.CheckIns.LastCheckInDate())
}

func TestReflectionAddSetsTodayFlag(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)
	require.False(t, svc.Reflections.HasReflectedToday())

	yesterday := testNow.AddDate(0, 0, -1)
	_, err = svc.Reflections.Add(ctx, model.NewStructuredEntry(yesterday, model.DefaultStructuredCheckIn()))
	require.NoError(t, err)
	require.False(t, svc.Reflections.HasReflectedToday())

	entry := model.NewIndirectEntry(testNow, model.IndirectCheckIn{WakeResponse: "Ready to go!"})
	entry.Timestamp = time.Time{}
	saved, err := svc.Reflections.Add(ctx, entry)
	require.NoError(t, err)
	require.True(t, svc.Reflections.HasReflectedToday())
	require.Equal(t, "id-2", saved.ID)
	require.Equal(t, testNow, saved.Timestamp)
	require.Equal(t, 2, svc.Reflections.Streak())
}

func TestReflectionAddRejectsMismatchedPayload(t *testing.T) {
	svc, err := Open(context.Background(), storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)

	bad := model.ReflectionEntry{Date: testNow, Source: model.SourceStructured}
	_, err = svc.Reflections.Add(context.Background(), bad)
	require.ErrorIs(t, err, model.ErrPayloadMissing)
	require.Empty(t, svc.Reflections.Entries())
}

func TestReflectionQueriesAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levelup.db")
	svc, err := Open(ctx, openSQLite(t, path), testOptions())
	require.NoError(t, err)

	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 2, 9+offset, hour, 0, 0, 0, time.UTC)
	}
	morning := model.DefaultStructuredCheckIn()
	evening := model.DefaultStructuredCheckIn()
	evening.DayRating = 5

	for _, e := range []model.ReflectionEntry{
		model.NewStructuredEntry(day(-3, 9), morning),
		model.NewStructuredEntry(day(0, 8), morning),
		model.NewStructuredEntry(day(0, 20), evening),
		model.NewIndirectEntry(day(-1, 7), model.IndirectCheckIn{}),
	} {
		_, err := svc.Reflections.Add(ctx, e)
		require.NoError(t, err)
	}

	require.Len(t, svc.Reflections.ByDateRange(day(-1, 0), day(0, 8)), 2)

	latest, ok := svc.Reflections.Latest()
	require.True(t, ok)
	require.Equal(t, day(0, 20), latest.Date)

	picked, ok := svc.Reflections.ForDay(testNow)
	require.True(t, ok)
	require.Equal(t, 5, picked.Structured.DayRating)

	require.NoError(t, svc.Close())

	later := testNow.AddDate(0, 0, 1)
	opts := testOptions()
	opts.Now = func() time.Time { return later }
	reopened, err := Open(ctx, openSQLite(t, path), opts)
	require.NoError(t, err)
	defer reopened.Close()
	require.Len(t, reopened.Reflections.Entries(), 4)
	require.False(t, reopened.Reflections.HasReflectedToday())
}

func TestReflectionRefreshDay(t *testing.T) {
	ctx := context.Background()
	now := testNow
	opts := testOptions()
	opts.Now = func() time.Time { return now }
	svc, err := Open(ctx, storage.NewMemoryRepository(), opts)
	require.NoError(t, err)

	_, err = svc.Reflections.Add(ctx, model.NewStructuredEntry(now, model.DefaultStructuredCheckIn()))
	require.NoError(t, err)
	require.True(t, svc.Reflections.HasReflectedToday())

	require.False(t, svc.Reflections.RefreshDay())
	now = now.AddDate(0, 0, 1)
	require.True(t, svc.Reflections.RefreshDay())
	require.False(t, svc.Reflections.HasReflectedToday())
}

func TestCheckInLogRecordAndReload(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	svc, err := Open(ctx, repo, testOptions())
	require.NoError(t, err)
	require.False(t, svc.CheckIns.CheckedInOn(testNow))

	in := model.IndirectCheckIn{WakeResponse: "Ready to go!", DrinkChoice: "Coffee", Tone: model.TonePositive}
	require.NoError(t, svc.CheckIns.Record(ctx, in, testNow))
	require.Equal(t, "2026-02-09", svc.CheckIns.LastCheckInDate())
	require.True(t, svc.CheckIns.CheckedInOn(testNow))

	require.NoError(t, svc.CheckIns.MarkCheckedIn(ctx, testNow.AddDate(0, 0, 1)))
	require.Len(t, svc.CheckIns.History(), 1)

	reloaded := NewCheckInLog(repo, testOptions())
	require.NoError(t, reloaded.Open(ctx))
	require.Equal(t, "2026-02-10", reloaded.LastCheckInDate())
	hist := reloaded.History()
	require.Len(t, hist, 1)
	require.Equal(t, in, hist[0].IndirectCheckIn)
	require.True(t, testNow.Equal(hist[0].Date))
}

func TestAchievementCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)

	a, err := svc.Achievements.Create(ctx, model.AchievementInput{Title: "Read 12 books", Description: "One per month"})
	require.NoError(t, err)
	require.Equal(t, model.CategoryGeneral, a.Category)
	require.Equal(t, 100, a.TargetValue)
	require.Equal(t, 0, a.CurrentValue)
	require.Equal(t, model.IconTrophy, a.Icon)
	require.Equal(t, 200, a.XPReward)
	require.Equal(t, testNow, a.CreatedAt)
	require.False(t, a.Completed)
	require.NotEmpty(t, a.ID)

	_, err = svc.Achievements.Create(ctx, model.AchievementInput{Title: "No description"})
	require.Error(t, err)
	require.Len(t, svc.Achievements.Achievements(), 1)
}

func TestAchievementProgressIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)
	a, err := svc.Achievements.Create(ctx, model.AchievementInput{Title: "Run", Description: "Run 10 times", TargetValue: 10})
	require.NoError(t, err)

	for _, v := range []int{0, 9, 10, 25} {
		first, err := svc.Achievements.UpdateProgress(ctx, a.ID, v)
		require.NoError(t, err)
		second, err := svc.Achievements.UpdateProgress(ctx, a.ID, v)
		require.NoError(t, err)
		require.Equal(t, v >= 10, first.Achievement.Completed)
		require.Equal(t, first.Achievement.Completed, second.Achievement.Completed)
		require.False(t, second.Unlocked)
	}

	res, err := svc.Achievements.UpdateProgress(ctx, a.ID, 3)
	require.NoError(t, err)
	require.False(t, res.Achievement.Completed)
	res, err = svc.Achievements.UpdateProgress(ctx, a.ID, 10)
	require.NoError(t, err)
	require.True(t, res.Unlocked)
	require.Equal(t, 500+200, svc.Achievements.EarnedXP())
}

func TestAchievementProgressRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)
	a, err := svc.Achievements.Create(ctx, model.AchievementInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = svc.Achievements.UpdateProgress(ctx, a.ID, -1)
	require.ErrorIs(t, err, model.ErrNegativeProgress)
	_, err = svc.Achievements.UpdateProgress(ctx, "missing", 5)
	require.ErrorIs(t, err, ErrAchievementNotFound)
}

func TestTaskMutationsRollBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{MemoryRepository: storage.NewMemoryRepository()}
	svc, err := Open(ctx, repo, testOptions())
	require.NoError(t, err)
	seed := svc.Tasks.Tasks()
	repo.failPuts = true

	_, err = svc.Tasks.Add(ctx, model.TaskInput{
		Title: "Mock test", Field: "JEE Preparation", DueDate: "2026-02-10",
		Priority: model.PriorityLow, DurationMinutes: 30, XP: model.ComputeXP(model.PriorityLow, 30),
	})
	require.ErrorIs(t, err, errDiskFull)
	require.Equal(t, seed, svc.Tasks.Tasks())

	title := "Renamed"
	require.ErrorIs(t, svc.Tasks.Update(ctx, "1", model.TaskPatch{Title: &title}), errDiskFull)
	require.Equal(t, seed, svc.Tasks.Tasks())

	require.ErrorIs(t, svc.Tasks.Delete(ctx, "1"), errDiskFull)
	require.Equal(t, seed, svc.Tasks.Tasks())
	_, ok := svc.Tasks.Get("1")
	require.True(t, ok)

	repo.failPuts = false
	require.NoError(t, svc.Tasks.Delete(ctx, "1"))
	reloaded := NewTaskStore(repo, testOptions())
	require.NoError(t, reloaded.Open(ctx))
	require.ElementsMatch(t, svc.Tasks.Tasks(), reloaded.Tasks())
}

func TestAchievementCreateRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{MemoryRepository: storage.NewMemoryRepository(), failPuts: true}
	svc, err := Open(ctx, repo, testOptions())
	require.NoError(t, err)

	_, err = svc.Achievements.Create(ctx, model.AchievementInput{Title: "t", Description: "d"})
	require.ErrorIs(t, err, errDiskFull)
	require.Empty(t, svc.Achievements.Achievements())
}

func TestAchievementCreateDerivesCompletion(t *testing.T) {
	ctx := context.Background()
	svc, err := Open(ctx, storage.NewMemoryRepository(), testOptions())
	require.NoError(t, err)

	done, err := svc.Achievements.Create(ctx, model.AchievementInput{Title: "Done", Description: "d", TargetValue: 10, CurrentValue: 10})
	require.NoError(t, err)
	require.True(t, done.Completed)

	open, err := svc.Achievements.Create(ctx, model.AchievementInput{Title: "Open", Description: "d", TargetValue: 10, CurrentValue: 9})
	require.NoError(t, err)
	require.False(t, open.Completed)

	res, err := svc.Achievements.UpdateProgress(ctx, done.ID, 12)
	require.NoError(t, err)
	require.False(t, res.Unlocked, "already complete at creation")
}

func TestAchievementsSeedMutateReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levelup.db")

	svc, err := Open(ctx, openSQLite(t, path), testOptions())
	require.NoError(t, err)
	require.Empty(t, svc.Achievements.Achievements())
	systemXP := svc.Achievements.EarnedXP()

	books, err := svc.Achievements.Create(ctx, model.AchievementInput{
		Title: "Read 12 books", Description: "One per month", Category: model.CategoryAcademic,
		Icon: model.IconBook, TargetValue: 12, XPReward: 300,
	})
	require.NoError(t, err)
	runs, err := svc.Achievements.Create(ctx, model.AchievementInput{
		Title: "Run 20 times", Description: "Any distance", Category: model.CategoryFitness,
		Icon: model.IconDumbbell, TargetValue: 20,
	})
	require.NoError(t, err)

	_, err = svc.Achievements.UpdateProgress(ctx, books.ID, 12)
	require.NoError(t, err)
	_, err = svc.Achievements.UpdateProgress(ctx, runs.ID, 7)
	require.NoError(t, err)
	before := svc.Achievements.Achievements()
	require.NoError(t, svc.Close())

	reopened, err := Open(ctx, openSQLite(t, path), testOptions())
	require.NoError(t, err)
	defer reopened.Close()
	after := reopened.Achievements.Achievements()

	// Compare timestamps by instant; the rest must survive byte for byte.
	require.Len(t, after, len(before))
	for i := range before {
		require.True(t, testNow.Equal(before[i].CreatedAt))
		before[i].CreatedAt = time.Time{}
	}
	for i := range after {
		require.True(t, testNow.Equal(after[i].CreatedAt))
		after[i].CreatedAt = time.Time{}
	}
	require.ElementsMatch(t, before, after)
	require.Equal(t, systemXP+300, reopened.Achievements.EarnedXP())
}
