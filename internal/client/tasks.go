package client

import (
	"context"
	"net/http"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/tasks/", nil, &tasks, true, "Failed to fetch tasks")
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) TaskStats(ctx context.Context) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/tasks/stats", nil, &stats, true, "Failed to fetch stats")
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	var task domain.Task
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/tasks/", in, &task, true, "Failed to create task")
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (*domain.Task, error) {
	var task domain.Task
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/tasks/"+id, in, &task, true, "Failed to update task")
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) (bool, error) {
	return c.doDelete(ctx, "/api/v1/tasks/"+id, "Failed to delete task")
}

func (c *Client) DeleteAllTasks(ctx context.Context) (bool, error) {
	return c.doDelete(ctx, "/api/v1/tasks/", "Failed to delete tasks")
}
