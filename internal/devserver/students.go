package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func studentToDomain(r studentRecord) domain.Student {
	return domain.Student{ID: r.ID, Name: r.Name, Email: r.Email, Age: r.Age}
}

func (s *Server) listStudents(c echo.Context) error {
	var records []studentRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to list students")
	}
	students := make([]domain.Student, len(records))
	for i, r := range records {
		students[i] = studentToDomain(r)
	}
	return c.JSON(http.StatusOK, students)
}

func (s *Server) getStudent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid student id")
	}
	var record studentRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail(c, http.StatusNotFound, "Student not found")
		}
		return detail(c, http.StatusInternalServerError, "failed to load student")
	}
	return c.JSON(http.StatusOK, studentToDomain(record))
}

func (s *Server) createStudent(c echo.Context) error {
	in, errs := bindStudent(c)
	if errs != nil {
		return validationFailed(c, errs)
	}

	var existing studentRecord
	if err := s.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return detail(c, http.StatusBadRequest, "A student with this email already exists")
	}

	record := studentRecord{Name: in.Name, Email: in.Email, Age: in.Age}
	if err := s.db.Create(&record).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to create student")
	}
	return c.JSON(http.StatusCreated, studentToDomain(record))
}

func (s *Server) updateStudent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid student id")
	}
	var record studentRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail(c, http.StatusNotFound, "Student not found")
		}
		return detail(c, http.StatusInternalServerError, "failed to load student")
	}

	in, errs := bindStudent(c)
	if errs != nil {
		return validationFailed(c, errs)
	}

	var other studentRecord
	if err := s.db.Where("email = ? AND id <> ?", in.Email, id).First(&other).Error; err == nil {
		return detail(c, http.StatusBadRequest, "A student with this email already exists")
	}

	record.Name = in.Name
	record.Email = in.Email
	record.Age = in.Age
	if err := s.db.Save(&record).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to update student")
	}
	return c.JSON(http.StatusOK, studentToDomain(record))
}

func (s *Server) deleteStudent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid student id")
	}
	res := s.db.Delete(&studentRecord{}, id)
	if res.Error != nil {
		return detail(c, http.StatusInternalServerError, "failed to delete student")
	}
	if res.RowsAffected == 0 {
		return detail(c, http.StatusNotFound, "Student not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteAllStudents(c echo.Context) error {
	if err := s.db.Where("1 = 1").Delete(&studentRecord{}).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to delete students")
	}
	return c.NoContent(http.StatusNoContent)
}

func bindStudent(c echo.Context) (domain.StudentInput, []fieldErr) {
	var in domain.StudentInput
	if err := c.Bind(&in); err != nil {
		return in, []fieldErr{{Loc: []string{"body"}, Msg: "invalid request body"}}
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	var errs []fieldErr
	if in.Name == "" {
		errs = append(errs, fieldErr{Loc: []string{"body", "name"}, Msg: "field required"})
	}
	if in.Email == "" {
		errs = append(errs, fieldErr{Loc: []string{"body", "email"}, Msg: "field required"})
	}
	if in.Age <= 0 {
		errs = append(errs, fieldErr{Loc: []string{"body", "age"}, Msg: "ensure this value is greater than 0"})
	}
	return in, errs
}
