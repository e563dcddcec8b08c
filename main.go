package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Minahil-Hamza/taskdesk/internal/bootstrap"
	"github.com/Minahil-Hamza/taskdesk/internal/client"
	"github.com/Minahil-Hamza/taskdesk/internal/config"
	"github.com/Minahil-Hamza/taskdesk/internal/controller"
	"github.com/Minahil-Hamza/taskdesk/internal/devserver"
	"github.com/Minahil-Hamza/taskdesk/internal/domain"
	"github.com/Minahil-Hamza/taskdesk/internal/export"
)

const usage = `taskdesk <command>

  register <email>           create an account
  login <email>              sign in
  logout                     sign out and clear the stored session
  whoami                     show the current session
  tasks                      list tasks (flags: -search -priority -category -status)
  tasks add <title>          create a task (flags: -desc -priority -category -due)
  tasks done <id>            toggle completion
  tasks edit <id> <title>    rename a task
  tasks rm <id>              delete a task
  tasks clear -yes           delete every task
  students                   list students (flags: -search)
  students add               create a student (flags: -name -email -age)
  students rm <id>           delete a student
  students clear -yes        delete every student
  students export [path]     write the full roster to students.xlsx
  serve                      run the local dev backend
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "register":
		err = runAuth(ctx, app, os.Args[2:], app.API.Register)
	case "login":
		err = runAuth(ctx, app, os.Args[2:], app.API.Login)
	case "logout":
		app.Sessions.Logout()
		fmt.Println("Signed out.")
	case "whoami":
		if user, ok := app.Sessions.User(); ok {
			fmt.Printf("%s (since %s)\n", user.Email, user.CreatedAt.Format(time.DateOnly))
		} else {
			fmt.Println("Not signed in.")
		}
	case "tasks":
		err = runTasks(ctx, app, os.Args[2:])
	case "students":
		err = runStudents(ctx, app, os.Args[2:])
	case "serve":
		err = runServe()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "Session expired. Please sign in again with: taskdesk login <email>")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runAuth(ctx context.Context, app *bootstrap.App, args []string, call func(context.Context, string, string) (*domain.AuthResponse, error)) error {
	if len(args) < 1 {
		return errors.New("email required")
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	password, _ := reader.ReadString('\n')
	resp, err := call(ctx, args[0], strings.TrimSpace(password))
	if err != nil {
		return err
	}
	app.Sessions.Login(*resp)
	fmt.Printf("Signed in as %s\n", resp.User.Email)
	return nil
}

func runTasks(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fs := flag.NewFlagSet("tasks", flag.ExitOnError)
		search := fs.String("search", "", "free-text filter over title and description")
		priority := fs.String("priority", domain.FilterAll, "priority filter")
		category := fs.String("category", domain.FilterAll, "category filter")
		status := fs.String("status", domain.FilterAll, "completed|pending")
		fs.Parse(args)

		if err := app.Tasks.Refresh(ctx); err != nil {
			return err
		}
		filter := domain.TaskFilter{Search: *search, Priority: *priority, Category: *category, Status: *status}
		printTasks(app.Tasks.Visible(filter), app.Tasks.Stats())
		return nil
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("tasks add", flag.ExitOnError)
		desc := fs.String("desc", "", "description")
		priority := fs.String("priority", "", "low|medium|high|urgent")
		category := fs.String("category", "", "task category")
		due := fs.String("due", "", "due date")
		fs.Parse(args[1:])
		if fs.NArg() < 1 {
			return errors.New("title required")
		}
		app.TaskForm.Draft = controller.TaskDraft{
			Title:       strings.Join(fs.Args(), " "),
			Description: *desc,
			Priority:    *priority,
			Category:    *category,
			DueDate:     *due,
		}
		if err := app.TaskForm.Submit(ctx); err != nil {
			return formError(app.TaskForm.Errors, err)
		}
		fmt.Println("Task created.")
	case "done":
		if len(args) < 2 {
			return errors.New("task id required")
		}
		if err := app.Tasks.Refresh(ctx); err != nil {
			return err
		}
		for _, t := range app.Tasks.Tasks() {
			if t.ID == args[1] {
				return app.Tasks.Toggle(ctx, t)
			}
		}
		return fmt.Errorf("no task with id %s", args[1])
	case "edit":
		if len(args) < 3 {
			return errors.New("task id and title required")
		}
		if err := app.Tasks.Refresh(ctx); err != nil {
			return err
		}
		for _, t := range app.Tasks.Tasks() {
			if t.ID == args[1] {
				app.TaskForm.BeginEdit(t)
				app.TaskForm.Draft.Title = strings.Join(args[2:], " ")
				if err := app.TaskForm.Submit(ctx); err != nil {
					return formError(app.TaskForm.Errors, err)
				}
				fmt.Println("Task updated.")
				return nil
			}
		}
		return fmt.Errorf("no task with id %s", args[1])
	case "rm":
		if len(args) < 2 {
			return errors.New("task id required")
		}
		return app.Tasks.Delete(ctx, args[1])
	case "clear":
		fs := flag.NewFlagSet("tasks clear", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm deleting every task")
		fs.Parse(args[1:])
		if !*yes && !confirm("Delete ALL tasks?") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := app.Tasks.DeleteAll(ctx, true); err != nil {
			return err
		}
		fmt.Println("All tasks deleted.")
	default:
		return fmt.Errorf("unknown tasks command %q", args[0])
	}
	return nil
}

func runStudents(ctx context.Context, app *bootstrap.App, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fs := flag.NewFlagSet("students", flag.ExitOnError)
		search := fs.String("search", "", "free-text filter over name and email")
		fs.Parse(args)

		if err := app.Students.Refresh(ctx); err != nil {
			return err
		}
		for _, s := range app.Students.Visible(domain.StudentFilter{Search: *search}) {
			fmt.Printf("%4d  %-25s %-30s %d\n", s.ID, s.Name, s.Email, s.Age)
		}
		return nil
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("students add", flag.ExitOnError)
		name := fs.String("name", "", "student name")
		email := fs.String("email", "", "student email")
		age := fs.Int("age", 0, "student age")
		fs.Parse(args[1:])
		app.StudentForm.Draft = controller.StudentDraft{Name: *name, Email: *email, Age: *age}
		if err := app.StudentForm.Submit(ctx); err != nil {
			return formError(app.StudentForm.Errors, err)
		}
		fmt.Println("Student created.")
	case "rm":
		if len(args) < 2 {
			return errors.New("student id required")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid student id %q", args[1])
		}
		return app.Students.Delete(ctx, id)
	case "clear":
		fs := flag.NewFlagSet("students clear", flag.ExitOnError)
		yes := fs.Bool("yes", false, "confirm deleting every student")
		fs.Parse(args[1:])
		if !*yes && !confirm("Delete ALL students?") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := app.Students.DeleteAll(ctx, true); err != nil {
			return err
		}
		fmt.Println("All students deleted.")
	case "export":
		// Export ignores any active filter: the workbook always holds the
		// full roster.
		if err := app.Students.Refresh(ctx); err != nil {
			return err
		}
		path := "students.xlsx"
		if len(args) > 1 {
			path = args[1]
		}
		if err := export.WriteStudentsFile(path, app.Students.Students()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	default:
		return fmt.Errorf("unknown students command %q", args[0])
	}
	return nil
}

func runServe() error {
	db, err := devserver.Open(config.DefaultEnvConfig.DB_PATH)
	if err != nil {
		return err
	}
	expiry := time.Duration(config.DefaultEnvConfig.JWT_EXPIRY_HOURS) * time.Hour
	srv := devserver.New(db, config.DefaultEnvConfig.JWT_SECRET, expiry)
	fmt.Printf("Dev backend listening on :%s\n", config.DefaultEnvConfig.DEV_SERVER_PORT)
	return srv.Start(config.DefaultEnvConfig.DEV_SERVER_PORT)
}

func printTasks(tasks []domain.Task, stats domain.TaskStats) {
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = " due " + *t.DueDate
		}
		fmt.Printf("[%s] %-36s %-30s %s/%s%s\n", mark, t.ID, t.Title, t.Priority, t.Category, due)
	}
	fmt.Printf("\n%d total, %d completed, %d pending\n", stats.Total, stats.Completed, stats.Pending)
}

func formError(fields map[string]string, err error) error {
	if len(fields) == 0 {
		return err
	}
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	return errors.New(strings.Join(parts, "; "))
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
