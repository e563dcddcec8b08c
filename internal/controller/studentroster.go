package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

// StudentAPI is the slice of the API client the roster needs.
type StudentAPI interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error)
	UpdateStudent(ctx context.Context, id int, in domain.StudentInput) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id int) (bool, error)
	DeleteAllStudents(ctx context.Context) (bool, error)
}

// StudentRoster mirrors TaskBoard for the student registry. There is no
// stats aggregate, so a refresh is a single read.
type StudentRoster struct {
	api      StudentAPI
	students []domain.Student
}

func NewStudentRoster(api StudentAPI) *StudentRoster {
	return &StudentRoster{api: api}
}

func (r *StudentRoster) Refresh(ctx context.Context) error {
	students, err := r.api.ListStudents(ctx)
	if err != nil {
		return err
	}
	r.students = students
	return nil
}

func (r *StudentRoster) Students() []domain.Student {
	return r.students
}

func (r *StudentRoster) Visible(f domain.StudentFilter) []domain.Student {
	out := make([]domain.Student, 0, len(r.students))
	for _, s := range r.students {
		if f.Matches(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *StudentRoster) Create(ctx context.Context, in domain.StudentInput) error {
	if _, err := r.api.CreateStudent(ctx, in); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

func (r *StudentRoster) Update(ctx context.Context, id int, in domain.StudentInput) error {
	if _, err := r.api.UpdateStudent(ctx, id, in); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

func (r *StudentRoster) Delete(ctx context.Context, id int) error {
	ok, err := r.api.DeleteStudent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to delete student %d", id)
	}
	return r.Refresh(ctx)
}

func (r *StudentRoster) DeleteAll(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	ok, err := r.api.DeleteAllStudents(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("failed to delete all students")
	}
	return r.Refresh(ctx)
}
