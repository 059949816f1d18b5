package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/mindit-cli/internal/adapters/clock"
	"github.com/xvierd/mindit-cli/internal/adapters/gemini"
	"github.com/xvierd/mindit-cli/internal/adapters/notification"
	"github.com/xvierd/mindit-cli/internal/adapters/storage"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
	"github.com/xvierd/mindit-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage  ports.Storage
	sessions *services.SessionService
	chat     *services.ChatService
	notifier *notification.Notifier
	config   *config.Config
	logFile  *os.File
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
		app.config = config.DefaultConfig()
	}
	if logFile != "" {
		app.config.Log.File = logFile
	}

	openLog()

	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.sessions = services.NewSessionService(clock.Second())
	app.sessions.SetNotifier(app.notifier)

	app.chat = services.NewChatService(ctx, app.storage.Transcripts(), newChatModel(ctx), app.config)

	return nil
}

// newChatModel connects to Gemini. Without a credential it returns nil and
// the chat service answers with the fallback text.
func newChatModel(ctx context.Context) ports.ChatModel {
	client, err := gemini.New(ctx, app.config.Chat.APIKey())
	if err != nil {
		if !errors.Is(err, domain.ErrMissingCredential) {
			log.Printf("[gemini] client unavailable: %v", err)
		}
		return nil
	}
	return client
}

// openLog sends the standard logger to the log file so it never draws over
// the TUI. Failures keep logging on stderr.
func openLog() {
	path := config.GetLogPath(app.config)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
		return
	}
	f, err := tea.LogToFile(path, "mindit")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		return
	}
	app.logFile = f
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.sessions != nil {
		app.sessions.Abandon()
		app.sessions.WaitNotifications()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		log.SetOutput(os.Stderr)
		app.logFile = nil
	}
	if app.storage != nil {
		err := app.storage.Close()
		app.storage = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
