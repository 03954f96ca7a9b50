package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// appDeps groups the services shared by all commands. Populated once
// by initializeServices before any RunE fires.
type appDeps struct {
	config   *config.Config
	storage  ports.Storage
	tasks    *services.TaskService
	timer    *services.TimerService
	settings *services.SettingsService
	state    *services.StateService
	notifier *notification.Notifier
	git      ports.GitDetector
}

var app appDeps

func initializeServices() error {
	var err error

	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		app.config = config.DefaultConfig()
	}

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(getDir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	app.settings = services.NewSettingsService(app.config)
	app.tasks = services.NewTaskService(app.storage)
	app.timer = services.NewTimerService(app.storage, app.tasks, app.settings)
	app.state = services.NewStateService(app.storage)
	app.state.SetTaskService(app.tasks)
	app.state.SetTimerService(app.timer)

	app.notifier = notification.New(app.settings.Current)
	app.timer.SetNotifier(app.notifier)

	app.git = git.NewDetector()
	if workingDir, err := os.Getwd(); err == nil {
		app.timer.SetGitDetector(app.git, workingDir)
	}

	app.timer.Init(context.Background())

	return nil
}

func cleanupServices() error {
	if app.storage == nil {
		return nil
	}
	err := app.storage.Close()
	app.storage = nil
	return err
}

// setupSignalHandler returns a context canceled on SIGINT or SIGTERM.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}
