package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository and event sink
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = fmt.Sprintf("task-%d", r.nextID)
	r.tasks[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, userID, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID != f.UserID {
			continue
		}
		if f.Project != "" && string(t.Project) != f.Project {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.Done != nil && t.Done != *f.Done {
			continue
		}
		if f.Important != nil && t.Important != *f.Important {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title), s) && !strings.Contains(strings.ToLower(t.Desc), s) {
				continue
			}
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	stored, ok := r.tasks[t.ID]
	if !ok || stored.UserID != t.UserID {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, userID, id string) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) SetDoneByIDs(_ context.Context, userID string, ids []string, done bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok && t.UserID == userID && t.Done != done {
			t.Done = done
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) SetImportantByIDs(_ context.Context, userID string, ids []string, important bool) (int64, error) {
	var n int64
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok && t.UserID == userID && t.Important != important {
			t.Important = important
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) DeleteByIDs(_ context.Context, userID string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok && t.UserID == userID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) DeleteCompleted(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range r.tasks {
		if t.UserID == userID && t.Done {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) DeleteAll(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range r.tasks {
		if t.UserID == userID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) MarkAllDone(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.UserID == userID && !t.Done {
			t.Done = true
			n++
		}
	}
	return n, nil
}

type recordingSink struct {
	events []ports.TaskEvent
}

func (s *recordingSink) Enqueue(event ports.TaskEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) lastType(t *testing.T) domain.NotificationType {
	t.Helper()
	if len(s.events) == 0 {
		t.Fatal("expected an event to be emitted")
	}
	return s.events[len(s.events)-1].Type
}

func newTaskFixture() (*TaskService, *stubTaskRepo, *recordingSink) {
	repo := newStubTaskRepo()
	sink := &recordingSink{}
	return NewTaskService(repo, sink, zerolog.Nop()), repo, sink
}

func seedTask(t *testing.T, svc *TaskService, userID, title string, mutate func(*ports.CreateTaskInput)) *domain.Task {
	t.Helper()
	in := ports.CreateTaskInput{UserID: userID, Title: title}
	if mutate != nil {
		mutate(&in)
	}
	task, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed task %q: %v", title, err)
	}
	return task
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

func TestTaskCreate_DefaultsAndEvent(t *testing.T) {
	svc, _, sink := newTaskFixture()

	task := seedTask(t, svc, "u1", "write report", nil)
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", task.Priority)
	}
	if got := sink.lastType(t); got != domain.NotifyTaskCreated {
		t.Fatalf("expected task_created event, got %s", got)
	}
}

func TestTaskUpdate_ToggleEvents(t *testing.T) {
	cases := []struct {
		name   string
		seed   func(in *ports.CreateTaskInput)
		update func(in *ports.UpdateTaskInput)
		want   domain.NotificationType
	}{
		{
			name:   "marking done",
			update: func(in *ports.UpdateTaskInput) { in.Done = true },
			want:   domain.NotifyTaskCompleted,
		},
		{
			name:   "marking important",
			update: func(in *ports.UpdateTaskInput) { in.Important = true },
			want:   domain.NotifyTaskImportant,
		},
		{
			name:   "unmarking important",
			seed:   func(in *ports.CreateTaskInput) { in.Important = true },
			update: func(in *ports.UpdateTaskInput) { in.Important = false },
			want:   domain.NotifyTaskUnimportant,
		},
		{
			name:   "plain edit",
			update: func(in *ports.UpdateTaskInput) { in.Title = "renamed" },
			want:   domain.NotifyTaskUpdated,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, sink := newTaskFixture()
			task := seedTask(t, svc, "u1", "original", tc.seed)

			in := ports.UpdateTaskInput{
				UserID:    "u1",
				ID:        task.ID,
				Title:     task.Title,
				Important: task.Important,
				Done:      task.Done,
			}
			tc.update(&in)
			if _, err := svc.Update(context.Background(), in); err != nil {
				t.Fatalf("Update: %v", err)
			}
			if got := sink.lastType(t); got != tc.want {
				t.Fatalf("expected %s event, got %s", tc.want, got)
			}
		})
	}
}

func TestTaskUpdate_ReopeningEmitsUncompleted(t *testing.T) {
	svc, _, sink := newTaskFixture()
	task := seedTask(t, svc, "u1", "t", nil)

	if _, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		UserID: "u1", ID: task.ID, Title: task.Title, Done: true,
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		UserID: "u1", ID: task.ID, Title: task.Title, Done: false,
	}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := sink.lastType(t); got != domain.NotifyTaskUncompleted {
		t.Fatalf("expected task_uncompleted event, got %s", got)
	}
}

func TestTaskDelete_EmitsEventWithTitle(t *testing.T) {
	svc, repo, sink := newTaskFixture()
	task := seedTask(t, svc, "u1", "doomed", nil)

	if err := svc.Delete(context.Background(), "u1", task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.tasks) != 0 {
		t.Fatal("task should be gone")
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != domain.NotifyTaskDeleted || last.TaskTitle != "doomed" {
		t.Fatalf("unexpected delete event: %+v", last)
	}
}

func TestTaskGet_OtherUsersTaskHidden(t *testing.T) {
	svc, _, _ := newTaskFixture()
	task := seedTask(t, svc, "u1", "private", nil)

	if _, err := svc.Get(context.Background(), "u2", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", err)
	}
}

func TestTaskList_AllPriorityIgnored(t *testing.T) {
	svc, _, _ := newTaskFixture()
	seedTask(t, svc, "u1", "a", func(in *ports.CreateTaskInput) { in.Priority = "high" })
	seedTask(t, svc, "u1", "b", func(in *ports.CreateTaskInput) { in.Priority = "low" })

	tasks, err := svc.List(context.Background(), ports.ListTasksFilter{UserID: "u1", Priority: "all"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("priority=all should not filter, got %d tasks", len(tasks))
	}
}

// ---------------------------------------------------------------------------
// Bulk operations
// ---------------------------------------------------------------------------

func TestBulkUpdate(t *testing.T) {
	svc, repo, _ := newTaskFixture()
	a := seedTask(t, svc, "u1", "a", nil)
	b := seedTask(t, svc, "u1", "b", nil)
	foreign := seedTask(t, svc, "u2", "c", nil)
	ctx := context.Background()

	count, err := svc.BulkUpdate(ctx, "u1", ports.BulkMarkDone, []string{a.ID, b.ID, foreign.ID})
	if err != nil {
		t.Fatalf("BulkUpdate: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tasks affected, got %d", count)
	}
	if repo.tasks[foreign.ID].Done {
		t.Fatal("another user's task must not be touched")
	}

	if _, err := svc.BulkUpdate(ctx, "u1", "explode", []string{a.ID}); !errors.Is(err, ports.ErrInvalidBulkAction) {
		t.Fatalf("expected ErrInvalidBulkAction, got %v", err)
	}
	if _, err := svc.BulkUpdate(ctx, "u1", ports.BulkMarkDone, nil); !errors.Is(err, ports.ErrInvalidBulkAction) {
		t.Fatalf("expected ErrInvalidBulkAction for empty ids, got %v", err)
	}
}

func TestBulkOperation(t *testing.T) {
	svc, repo, _ := newTaskFixture()
	ctx := context.Background()
	done := seedTask(t, svc, "u1", "done", nil)
	seedTask(t, svc, "u1", "open", nil)
	repo.tasks[done.ID].Done = true

	count, err := svc.BulkOperation(ctx, "u1", ports.OpDeleteCompleted)
	if err != nil {
		t.Fatalf("delete_completed: %v", err)
	}
	if count != 1 || len(repo.tasks) != 1 {
		t.Fatalf("expected one completed task removed, count=%d remaining=%d", count, len(repo.tasks))
	}

	if _, err := svc.BulkOperation(ctx, "u1", ports.OpMarkAllDone); err != nil {
		t.Fatalf("mark_all_done: %v", err)
	}
	count, err = svc.BulkOperation(ctx, "u1", ports.OpClearAll)
	if err != nil {
		t.Fatalf("clear_all: %v", err)
	}
	if count != 1 || len(repo.tasks) != 0 {
		t.Fatalf("expected all tasks cleared, count=%d remaining=%d", count, len(repo.tasks))
	}

	if _, err := svc.BulkOperation(ctx, "u1", "defrag"); !errors.Is(err, ports.ErrInvalidBulkAction) {
		t.Fatalf("expected ErrInvalidBulkAction, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Statistics
// ---------------------------------------------------------------------------

func TestStats(t *testing.T) {
	svc, repo, _ := newTaskFixture()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	a := seedTask(t, svc, "u1", "a", func(in *ports.CreateTaskInput) { in.Project = "work" })
	seedTask(t, svc, "u1", "b", func(in *ports.CreateTaskInput) {
		in.Project = "work"
		in.Important = true
	})
	seedTask(t, svc, "u1", "c", func(in *ports.CreateTaskInput) { in.Date = &yesterday })
	repo.tasks[a.ID].Done = true

	stats, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Total != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.Overdue != 1 || stats.Important != 1 {
		t.Fatalf("unexpected overdue/important: %+v", stats)
	}
	if stats.CompletionRate != 33.3 {
		t.Fatalf("expected completion rate 33.3, got %v", stats.CompletionRate)
	}
	if stats.ProjectStats["work"] != 2 {
		t.Fatalf("expected 2 work tasks, got %d", stats.ProjectStats["work"])
	}
}

func TestDashboardStats(t *testing.T) {
	svc, repo, _ := newTaskFixture()
	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)
	lastWeek := now.AddDate(0, 0, -10)

	recent := seedTask(t, svc, "u1", "recent", func(in *ports.CreateTaskInput) {
		in.Priority = "high"
		in.Date = &tomorrow
	})
	old := seedTask(t, svc, "u1", "old", nil)
	repo.tasks[recent.ID].Done = true
	repo.tasks[old.ID].CreatedAt = lastWeek

	stats, err := svc.DashboardStats(context.Background(), "u1", 7)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if stats.Weekly.Total != 1 || stats.Weekly.Completed != 1 {
		t.Fatalf("unexpected weekly window: %+v", stats.Weekly)
	}
	if stats.Weekly.CompletionRate != 100 {
		t.Fatalf("expected 100%% weekly completion, got %v", stats.Weekly.CompletionRate)
	}
	if stats.PriorityStats["high"] != 1 || stats.PriorityStats["medium"] != 1 {
		t.Fatalf("unexpected priority stats: %v", stats.PriorityStats)
	}
	// The one task due tomorrow is done, so nothing counts as due soon.
	if stats.DueSoon != 0 {
		t.Fatalf("expected no due-soon tasks, got %d", stats.DueSoon)
	}
}

func TestDashboardStats_WindowStartsAtMidnight(t *testing.T) {
	svc, repo, _ := newTaskFixture()
	now := time.Now().UTC()

	// Created earlier on the first day of the window, before the current
	// time of day. A full-timestamp comparison would exclude it.
	boundary := seedTask(t, svc, "u1", "boundary", nil)
	repo.tasks[boundary.ID].CreatedAt = now.AddDate(0, 0, -7).Truncate(24 * time.Hour)

	outside := seedTask(t, svc, "u1", "outside", nil)
	repo.tasks[outside.ID].CreatedAt = now.AddDate(0, 0, -8)

	stats, err := svc.DashboardStats(context.Background(), "u1", 7)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if stats.Weekly.Total != 1 {
		t.Fatalf("expected boundary-day task in weekly window, got total %d", stats.Weekly.Total)
	}
}

func TestCompletionRate_Rounding(t *testing.T) {
	cases := []struct {
		completed, total int64
		want             float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
	}
	for _, tc := range cases {
		if got := completionRate(tc.completed, tc.total); got != tc.want {
			t.Fatalf("completionRate(%d, %d) = %v, want %v", tc.completed, tc.total, got, tc.want)
		}
	}
}
