// Package devserver is a local stand-in for the production backend. It
// implements the same HTTP contract (paths, auth, error bodies) against a
// sqlite database, so the client stack can be developed and integration
// tested without a deployed API.
package devserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	db     *gorm.DB
	secret []byte
	expiry time.Duration
}

func New(db *gorm.DB, jwtSecret string, tokenExpiry time.Duration) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{echo: e, db: db, secret: []byte(jwtSecret), expiry: tokenExpiry}

	api := e.Group("/api/v1")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	tasks := api.Group("/tasks", s.requireAuth)
	tasks.GET("/", s.listTasks)
	tasks.GET("/stats", s.taskStats)
	tasks.POST("/", s.createTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)
	tasks.DELETE("/", s.deleteAllTasks)

	// The student registry is unauthenticated, matching the backend it
	// mirrors.
	students := api.Group("/students")
	students.GET("/", s.listStudents)
	students.POST("/", s.createStudent)
	students.GET("/:id", s.getStudent)
	students.PUT("/:id", s.updateStudent)
	students.DELETE("/:id", s.deleteStudent)
	students.DELETE("/", s.deleteAllStudents)

	return s
}

// Handler exposes the server as an http.Handler for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(port string) error {
	return s.echo.Start(":" + port)
}

// detail writes the backend's error envelope: every failure body is
// {"detail": ...} where detail is a string, an object with a message, or
// a list of field errors.
func detail(c echo.Context, code int, d interface{}) error {
	return c.JSON(code, map[string]interface{}{"detail": d})
}

// fieldErr is one entry of a validation-failure detail list.
type fieldErr struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func validationFailed(c echo.Context, errs []fieldErr) error {
	return detail(c, http.StatusUnprocessableEntity, errs)
}
