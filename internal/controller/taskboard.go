// Package controller holds the view-facing state machines: list controllers
// that own the currently displayed collection, and form controllers that
// validate drafts before they reach the network.
//
// A list controller never patches its held collection from a mutation's
// response. Every write is followed by a full refresh so the displayed data
// always reflects a just-confirmed server read. The extra round trip buys
// freedom from client/server drift.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

// ErrConfirmationRequired is returned when a destructive bulk operation is
// invoked without an explicit confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// TaskAPI is the slice of the API client the task board needs.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	TaskStats(ctx context.Context) (*domain.TaskStats, error)
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
	DeleteAllTasks(ctx context.Context) (bool, error)
}

type TaskBoard struct {
	api   TaskAPI
	tasks []domain.Task
	stats domain.TaskStats
}

func NewTaskBoard(api TaskAPI) *TaskBoard {
	return &TaskBoard{api: api}
}

// Refresh fetches the task list and the stats aggregate concurrently and
// replaces the held state only when both succeed. On failure the previous
// state is left untouched; an unauthorized failure propagates unchanged so
// the caller can redirect to sign-in.
func (b *TaskBoard) Refresh(ctx context.Context) error {
	type listResult struct {
		tasks []domain.Task
		err   error
	}
	type statsResult struct {
		stats *domain.TaskStats
		err   error
	}

	listCh := make(chan listResult, 1)
	statsCh := make(chan statsResult, 1)

	go func() {
		tasks, err := b.api.ListTasks(ctx)
		listCh <- listResult{tasks, err}
	}()
	go func() {
		stats, err := b.api.TaskStats(ctx)
		statsCh <- statsResult{stats, err}
	}()

	lr := <-listCh
	sr := <-statsCh
	if lr.err != nil {
		return lr.err
	}
	if sr.err != nil {
		return sr.err
	}

	b.tasks = lr.tasks
	b.stats = *sr.stats
	return nil
}

func (b *TaskBoard) Tasks() []domain.Task {
	return b.tasks
}

func (b *TaskBoard) Stats() domain.TaskStats {
	return b.stats
}

// Visible applies the filter to the held collection without mutating it.
func (b *TaskBoard) Visible(f domain.TaskFilter) []domain.Task {
	out := make([]domain.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (b *TaskBoard) Create(ctx context.Context, in domain.CreateTaskInput) error {
	if _, err := b.api.CreateTask(ctx, in); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

func (b *TaskBoard) Update(ctx context.Context, id string, in domain.UpdateTaskInput) error {
	if _, err := b.api.UpdateTask(ctx, id, in); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

// Toggle flips a task's completed flag via a partial update.
func (b *TaskBoard) Toggle(ctx context.Context, task domain.Task) error {
	completed := !task.Completed
	return b.Update(ctx, task.ID, domain.UpdateTaskInput{Completed: &completed})
}

func (b *TaskBoard) Delete(ctx context.Context, id string) error {
	ok, err := b.api.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to delete task %s", id)
	}
	return b.Refresh(ctx)
}

// DeleteAll wipes every task. It is destructive and refuses to run without
// an explicit confirmation from the caller. Deleting an already empty
// collection still succeeds.
func (b *TaskBoard) DeleteAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	ok, err := b.api.DeleteAllTasks(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("failed to delete all tasks")
	}
	return b.Refresh(ctx)
}
