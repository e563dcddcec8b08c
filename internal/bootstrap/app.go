package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Minahil-Hamza/taskdesk/internal/client"
	"github.com/Minahil-Hamza/taskdesk/internal/config"
	"github.com/Minahil-Hamza/taskdesk/internal/controller"
	"github.com/Minahil-Hamza/taskdesk/internal/logger"
	"github.com/Minahil-Hamza/taskdesk/internal/session"
)

// App wires the session store, the API client and the controllers together.
// Initialize must run before anything else touches the fields.
type App struct {
	Sessions    *session.Store
	API         *client.Client
	Tasks       *controller.TaskBoard
	TaskForm    *controller.TaskForm
	Students    *controller.StudentRoster
	StudentForm *controller.StudentForm
}

func NewApp() *App {
	return &App{}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	a.Sessions = session.NewStore(config.DefaultEnvConfig.SESSION_FILE_PATH)
	a.Sessions.Restore()
	if user, ok := a.Sessions.User(); ok {
		logger.InfoLog(ctx, "Restored session for %s", user.Email)
	}

	timeout := time.Duration(config.DefaultEnvConfig.HTTP_TIMEOUT_SECONDS) * time.Second
	a.API = client.New(config.DefaultEnvConfig.API_BASE_URL, a.Sessions, timeout)

	a.Tasks = controller.NewTaskBoard(a.API)
	a.TaskForm = controller.NewTaskForm(a.Tasks)
	a.Students = controller.NewStudentRoster(a.API)
	a.StudentForm = controller.NewStudentForm(a.Students)

	return nil
}
