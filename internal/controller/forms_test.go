package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minahil-Hamza/taskdesk/internal/client"
	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func TestSubmitWhitespaceTitleNeverHitsNetwork(t *testing.T) {
	api := &fakeTaskAPI{}
	form := NewTaskForm(NewTaskBoard(api))
	form.Draft.Title = "   \t "

	err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, form.Errors, "title")
	assert.Zero(t, api.createCalls, "invalid draft must be rejected client-side")
	assert.Zero(t, api.listCalls)
}

func TestSubmitTrimsAndDefaults(t *testing.T) {
	api := &fakeTaskAPI{}
	form := NewTaskForm(NewTaskBoard(api))
	form.Draft = TaskDraft{Title: "  Buy milk  ", Description: "   "}

	require.NoError(t, form.Submit(context.Background()))
	require.Equal(t, 1, api.createCalls)

	created := api.tasks[0]
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, domain.CategoryOther, created.Category)
	assert.Empty(t, form.Draft.Title, "successful submit resets the draft")
}

func TestSubmitRejectsUnknownEnumValues(t *testing.T) {
	api := &fakeTaskAPI{}
	form := NewTaskForm(NewTaskBoard(api))
	form.Draft = TaskDraft{Title: "x", Priority: "extreme"}

	err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, form.Errors, "priority")
	assert.Zero(t, api.createCalls)
}

func TestReentrantSubmitIsRejected(t *testing.T) {
	api := &fakeTaskAPI{}
	board := NewTaskBoard(api)
	form := NewTaskForm(board)

	// Simulate an event handler firing again while the first submit is
	// still in flight.
	var reentrantErr error
	reentrant := &reentrantAPI{fakeTaskAPI: api, onCreate: func() {
		reentrantErr = form.Submit(context.Background())
	}}
	form.board = NewTaskBoard(reentrant)

	form.Draft.Title = "once"
	require.NoError(t, form.Submit(context.Background()))
	assert.ErrorIs(t, reentrantErr, ErrSubmitInFlight)
	assert.Equal(t, 1, api.createCalls)
}

type reentrantAPI struct {
	*fakeTaskAPI
	onCreate func()
}

func (r *reentrantAPI) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	r.onCreate()
	return r.fakeTaskAPI.CreateTask(ctx, in)
}

func TestEditModeDispatchesUpdateAndClears(t *testing.T) {
	ctx := context.Background()
	api := &fakeTaskAPI{tasks: seedTasks()}
	board := NewTaskBoard(api)
	form := NewTaskForm(board)
	require.NoError(t, board.Refresh(ctx))

	form.BeginEdit(board.Tasks()[0])
	assert.True(t, form.Editing())
	form.Draft.Title = "Buy oat milk"

	require.NoError(t, form.Submit(ctx))
	assert.Equal(t, 1, api.updateCalls)
	assert.Zero(t, api.createCalls)
	assert.False(t, form.Editing(), "successful submit must clear edit mode")
	assert.Equal(t, "Buy oat milk", api.tasks[0].Title)
}

func TestServerFieldErrorsMergeIntoSameSlot(t *testing.T) {
	api := &failingCreateAPI{err: &client.APIError{
		StatusCode:  422,
		Detail:      "Failed to create task",
		FieldErrors: map[string]string{"due_date": "invalid date format"},
	}}
	form := NewTaskForm(NewTaskBoard(api))
	form.Draft.Title = "valid title"

	err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "invalid date format", form.Errors["due_date"])
}

type failingCreateAPI struct {
	fakeTaskAPI
	err error
}

func (f *failingCreateAPI) CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	return nil, f.err
}

func TestStudentFormValidation(t *testing.T) {
	api := &fakeStudentAPI{}
	form := NewStudentForm(NewStudentRoster(api))

	form.Draft = StudentDraft{Name: " ", Email: "not-an-email", Age: 0}
	err := form.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, form.Errors, "name")
	assert.Contains(t, form.Errors, "email")
	assert.Contains(t, form.Errors, "age")
	assert.Zero(t, api.createCalls)

	form.Draft = StudentDraft{Name: "Ada Lovelace", Email: "ada@maths.org", Age: 28}
	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.listCalls, "student create must refetch the roster")
}

// fakeStudentAPI mirrors fakeTaskAPI for the roster.
type fakeStudentAPI struct {
	students    []domain.Student
	nextID      int
	listCalls   int
	createCalls int
}

func (f *fakeStudentAPI) ListStudents(ctx context.Context) ([]domain.Student, error) {
	f.listCalls++
	out := make([]domain.Student, len(f.students))
	copy(out, f.students)
	return out, nil
}

func (f *fakeStudentAPI) CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error) {
	f.createCalls++
	f.nextID++
	s := domain.Student{ID: f.nextID, Name: in.Name, Email: in.Email, Age: in.Age}
	f.students = append(f.students, s)
	return &s, nil
}

func (f *fakeStudentAPI) UpdateStudent(ctx context.Context, id int, in domain.StudentInput) (*domain.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students[i] = domain.Student{ID: id, Name: in.Name, Email: in.Email, Age: in.Age}
			return &f.students[i], nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Detail: "Student not found"}
}

func (f *fakeStudentAPI) DeleteStudent(ctx context.Context, id int) (bool, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentAPI) DeleteAllStudents(ctx context.Context) (bool, error) {
	f.students = nil
	return true, nil
}
