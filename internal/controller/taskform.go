package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Minahil-Hamza/taskdesk/internal/client"
	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

// ErrSubmitInFlight is returned when a submit is attempted while a previous
// one has not completed yet.
var ErrSubmitInFlight = errors.New("submit already in flight")

// TaskDraft is the raw form input, validated before any request is built.
type TaskDraft struct {
	Title       string `validate:"required"`
	Description string
	Priority    string `validate:"omitempty,oneof=low medium high urgent"`
	Category    string `validate:"omitempty,oneof=personal work shopping health finance education other"`
	DueDate     string
}

// TaskForm validates a task draft and dispatches it through the board, so a
// successful submit always ends with a fresh server read. Client-side schema
// errors and server-reported field errors land in the same Errors map keyed
// by field name; the view cannot tell them apart.
type TaskForm struct {
	board      *TaskBoard
	validate   *validator.Validate
	Draft      TaskDraft
	Errors     map[string]string
	editID     string
	submitting bool
}

func NewTaskForm(board *TaskBoard) *TaskForm {
	return &TaskForm{
		board:    board,
		validate: validator.New(),
		Errors:   map[string]string{},
	}
}

// BeginEdit switches the form to edit mode, loading the draft from an
// existing task. The same validation schema applies.
func (f *TaskForm) BeginEdit(t domain.Task) {
	f.editID = t.ID
	f.Errors = map[string]string{}
	f.Draft = TaskDraft{
		Title:    t.Title,
		Priority: string(t.Priority),
		Category: string(t.Category),
	}
	if t.Description != nil {
		f.Draft.Description = *t.Description
	}
	if t.DueDate != nil {
		f.Draft.DueDate = *t.DueDate
	}
}

func (f *TaskForm) CancelEdit() {
	f.editID = ""
	f.Draft = TaskDraft{}
	f.Errors = map[string]string{}
}

func (f *TaskForm) Editing() bool {
	return f.editID != ""
}

func (f *TaskForm) Submitting() bool {
	return f.submitting
}

// Submit validates the draft and dispatches create or update depending on
// mode. Invalid drafts never reach the network. A successful submit resets
// the draft and clears edit mode.
func (f *TaskForm) Submit(ctx context.Context) error {
	if f.submitting {
		return ErrSubmitInFlight
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	f.Errors = map[string]string{}
	f.trim()

	if err := f.validate.Struct(f.Draft); err != nil {
		f.collectSchemaErrors(err)
		return err
	}

	var err error
	if f.editID != "" {
		err = f.board.Update(ctx, f.editID, f.updateInput())
	} else {
		err = f.board.Create(ctx, f.createInput())
	}
	if err != nil {
		f.mergeServerErrors(err)
		return err
	}

	f.Draft = TaskDraft{}
	f.editID = ""
	return nil
}

func (f *TaskForm) trim() {
	f.Draft.Title = strings.TrimSpace(f.Draft.Title)
	f.Draft.Description = strings.TrimSpace(f.Draft.Description)
	f.Draft.DueDate = strings.TrimSpace(f.Draft.DueDate)
}

func (f *TaskForm) createInput() domain.CreateTaskInput {
	in := domain.CreateTaskInput{
		Title:    f.Draft.Title,
		Priority: domain.Priority(defaultString(f.Draft.Priority, string(domain.PriorityMedium))),
		Category: domain.Category(defaultString(f.Draft.Category, string(domain.CategoryOther))),
	}
	if f.Draft.Description != "" {
		in.Description = &f.Draft.Description
	}
	if f.Draft.DueDate != "" {
		in.DueDate = &f.Draft.DueDate
	}
	return in
}

func (f *TaskForm) updateInput() domain.UpdateTaskInput {
	in := domain.UpdateTaskInput{Title: &f.Draft.Title}
	priority := domain.Priority(defaultString(f.Draft.Priority, string(domain.PriorityMedium)))
	category := domain.Category(defaultString(f.Draft.Category, string(domain.CategoryOther)))
	in.Priority = &priority
	in.Category = &category
	if f.Draft.Description != "" {
		in.Description = &f.Draft.Description
	}
	if f.Draft.DueDate != "" {
		in.DueDate = &f.Draft.DueDate
	}
	return in
}

func (f *TaskForm) collectSchemaErrors(err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.Errors["form"] = err.Error()
		return
	}
	for _, fe := range verrs {
		f.Errors[strings.ToLower(fe.Field())] = schemaMessage(fe)
	}
}

// mergeServerErrors folds server-reported field errors into the same slot
// as schema errors.
func (f *TaskForm) mergeServerErrors(err error) {
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

func schemaMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "email":
		return "Invalid email address"
	case "gt":
		return "Must be greater than " + fe.Param()
	default:
		return "Invalid value"
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
