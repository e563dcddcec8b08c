package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func (c *Client) ListStudents(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/students/", nil, &students, true, "Failed to fetch students")
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id int) (*domain.Student, error) {
	var student domain.Student
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/students/"+strconv.Itoa(id), nil, &student, true, "Failed to fetch student")
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error) {
	var student domain.Student
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/students/", in, &student, true, "Failed to create student")
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int, in domain.StudentInput) (*domain.Student, error) {
	var student domain.Student
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/students/"+strconv.Itoa(id), in, &student, true, "Failed to update student")
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id int) (bool, error) {
	return c.doDelete(ctx, "/api/v1/students/"+strconv.Itoa(id), "Failed to delete student")
}

func (c *Client) DeleteAllStudents(ctx context.Context) (bool, error) {
	return c.doDelete(ctx, "/api/v1/students/", "Failed to delete students")
}
