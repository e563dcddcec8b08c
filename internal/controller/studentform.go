package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Minahil-Hamza/taskdesk/internal/client"
	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

type StudentDraft struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"required,gt=0"`
}

type StudentForm struct {
	roster     *StudentRoster
	validate   *validator.Validate
	Draft      StudentDraft
	Errors     map[string]string
	editID     int
	submitting bool
}

func NewStudentForm(roster *StudentRoster) *StudentForm {
	return &StudentForm{
		roster:   roster,
		validate: validator.New(),
		Errors:   map[string]string{},
	}
}

func (f *StudentForm) BeginEdit(s domain.Student) {
	f.editID = s.ID
	f.Errors = map[string]string{}
	f.Draft = StudentDraft{Name: s.Name, Email: s.Email, Age: s.Age}
}

func (f *StudentForm) CancelEdit() {
	f.editID = 0
	f.Draft = StudentDraft{}
	f.Errors = map[string]string{}
}

func (f *StudentForm) Editing() bool {
	return f.editID != 0
}

func (f *StudentForm) Submitting() bool {
	return f.submitting
}

func (f *StudentForm) Submit(ctx context.Context) error {
	if f.submitting {
		return ErrSubmitInFlight
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	f.Errors = map[string]string{}
	f.Draft.Name = strings.TrimSpace(f.Draft.Name)
	f.Draft.Email = strings.TrimSpace(f.Draft.Email)

	if err := f.validate.Struct(f.Draft); err != nil {
		f.collectSchemaErrors(err)
		return err
	}

	in := domain.StudentInput{Name: f.Draft.Name, Email: f.Draft.Email, Age: f.Draft.Age}
	var err error
	if f.editID != 0 {
		err = f.roster.Update(ctx, f.editID, in)
	} else {
		err = f.roster.Create(ctx, in)
	}
	if err != nil {
		f.mergeServerErrors(err)
		return err
	}

	f.Draft = StudentDraft{}
	f.editID = 0
	return nil
}

func (f *StudentForm) collectSchemaErrors(err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.Errors["form"] = err.Error()
		return
	}
	for _, fe := range verrs {
		f.Errors[strings.ToLower(fe.Field())] = schemaMessage(fe)
	}
}

func (f *StudentForm) mergeServerErrors(err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return
	}
	for field, msg := range apiErr.FieldErrors {
		f.Errors[field] = msg
	}
	if len(apiErr.FieldErrors) == 0 {
		f.Errors["form"] = apiErr.Detail
	}
}
