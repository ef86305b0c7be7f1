// Package cli wires the interactive task client: a prompt loop routing user
// intents to the auth and task services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"taskapp/internal/client/api"
	"taskapp/internal/client/config"
	"taskapp/internal/client/repositories/session"
	"taskapp/internal/client/services"
	"taskapp/internal/logging"
)

// Stage is the top-level routing state: the auth gate or the task views.
type Stage string

const (
	StageAuth Stage = "auth"
	StageApp  Stage = "app"
)

// View is the active task view while in StageApp.
type View string

const (
	ViewList   View = "list"
	ViewCreate View = "create"
)

// App holds the routing state and dispatches user intents to the services.
// It performs no business logic of its own: the stage flips to StageApp only
// when the auth service reports success, and the active view reverts to the
// list after a successful create.
type App struct {
	config      *config.Config
	authService services.AuthService
	taskService services.TaskService

	stage      Stage
	activeView View
	userName   string
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := session.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing session database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, db, logger)
	ts := services.NewTaskService(apiClient, as, logger)

	return &App{
		config:      c,
		authService: as,
		taskService: ts,
		stage:       StageAuth,
		activeView:  ViewList,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	log.Println("Welcome to the task CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.stage == StageApp
}

func (a *App) getStatus() string {
	if a.stage == StageAuth {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s %s)", a.userName, a.activeView)
}
