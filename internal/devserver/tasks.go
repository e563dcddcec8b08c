package devserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func taskToDomain(r taskRecord) domain.Task {
	return domain.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    domain.Priority(r.Priority),
		Category:    domain.Category(r.Category),
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *Server) listTasks(c echo.Context) error {
	var records []taskRecord
	err := s.db.Where("user_id = ?", currentUserID(c)).Order("created_at desc").Find(&records).Error
	if err != nil {
		return detail(c, http.StatusInternalServerError, "failed to list tasks")
	}
	tasks := make([]domain.Task, len(records))
	for i, r := range records {
		tasks[i] = taskToDomain(r)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) taskStats(c echo.Context) error {
	uid := currentUserID(c)
	var total, completed int64
	if err := s.db.Model(&taskRecord{}).Where("user_id = ?", uid).Count(&total).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to count tasks")
	}
	if err := s.db.Model(&taskRecord{}).Where("user_id = ? AND completed = ?", uid, true).Count(&completed).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to count tasks")
	}
	return c.JSON(http.StatusOK, domain.TaskStats{
		Total:     int(total),
		Completed: int(completed),
		Pending:   int(total - completed),
	})
}

func (s *Server) createTask(c echo.Context) error {
	var in domain.CreateTaskInput
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return validationFailed(c, []fieldErr{{Loc: []string{"body", "title"}, Msg: "field required"}})
	}

	now := time.Now().UTC()
	record := taskRecord{
		ID:          uuid.NewString(),
		UserID:      currentUserID(c),
		Title:       in.Title,
		Description: in.Description,
		Priority:    string(defaultPriority(in.Priority)),
		Category:    string(defaultCategory(in.Category)),
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to create task")
	}
	return c.JSON(http.StatusCreated, taskToDomain(record))
}

func (s *Server) updateTask(c echo.Context) error {
	var record taskRecord
	err := s.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail(c, http.StatusNotFound, "Task not found")
		}
		return detail(c, http.StatusInternalServerError, "failed to load task")
	}

	var in domain.UpdateTaskInput
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return validationFailed(c, []fieldErr{{Loc: []string{"body", "title"}, Msg: "field required"}})
		}
		record.Title = title
	}
	if in.Description != nil {
		record.Description = in.Description
	}
	if in.Completed != nil {
		record.Completed = *in.Completed
	}
	if in.Priority != nil {
		record.Priority = string(*in.Priority)
	}
	if in.Category != nil {
		record.Category = string(*in.Category)
	}
	if in.DueDate != nil {
		record.DueDate = in.DueDate
	}
	record.UpdatedAt = time.Now().UTC()

	if err := s.db.Save(&record).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to update task")
	}
	return c.JSON(http.StatusOK, taskToDomain(record))
}

func (s *Server) deleteTask(c echo.Context) error {
	res := s.db.Where("id = ? AND user_id = ?", c.Param("id"), currentUserID(c)).Delete(&taskRecord{})
	if res.Error != nil {
		return detail(c, http.StatusInternalServerError, "failed to delete task")
	}
	if res.RowsAffected == 0 {
		return detail(c, http.StatusNotFound, "Task not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// deleteAllTasks is idempotent: wiping an empty collection still succeeds.
func (s *Server) deleteAllTasks(c echo.Context) error {
	if err := s.db.Where("user_id = ?", currentUserID(c)).Delete(&taskRecord{}).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to delete tasks")
	}
	return c.NoContent(http.StatusNoContent)
}

func defaultPriority(p domain.Priority) domain.Priority {
	if p == "" {
		return domain.PriorityMedium
	}
	return p
}

func defaultCategory(cat domain.Category) domain.Category {
	if cat == "" {
		return domain.CategoryOther
	}
	return cat
}
