package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/liliang-cn/docchat/internal/backend"
	"github.com/liliang-cn/docchat/internal/catalog"
	"github.com/liliang-cn/docchat/internal/config"
	"github.com/liliang-cn/docchat/internal/credential"
	"github.com/liliang-cn/docchat/internal/dispatch"
	"github.com/liliang-cn/docchat/internal/logger"
	"github.com/liliang-cn/docchat/internal/repository"
	"github.com/liliang-cn/docchat/internal/session"
	"github.com/liliang-cn/docchat/internal/status"
	"github.com/liliang-cn/docchat/internal/tui"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger (file-backed; the terminal belongs to the TUI)
	zlog := logger.New(cfg.LogPath(), cfg.Log.Level)
	defer zlog.Sync()

	// Initialize the client-scoped settings database
	db, err := repository.NewDB(cfg.DatabasePath())
	if err != nil {
		zlog.Fatal("Failed to initialize settings database", zap.Error(err))
	}
	defer db.Close()

	settingsRepo := repository.NewSettingsRepository(db)

	// Credential store, loaded once at startup
	creds, err := credential.NewStore(settingsRepo)
	if err != nil {
		zlog.Fatal("Failed to load credential store", zap.Error(err))
	}

	// Backend clients. Catalog calls are bounded by the client-level
	// request timeout; the query path carries no blanket timeout, the
	// dispatcher's per-query context is its only bound.
	client := backend.NewClient(cfg.Backend.BaseURL, &http.Client{
		Timeout: cfg.Backend.RequestTimeout,
	}, zlog)
	queryClient := backend.NewClient(cfg.Backend.BaseURL, &http.Client{}, zlog)

	// Orchestration core
	surface := status.NewSurface()
	sess := session.New()
	catly := catalog.NewCatalog(client, creds, sess, surface, zlog)
	dispatcher := dispatch.NewDispatcher(sess, queryClient, creds, surface, cfg.Backend.QueryTimeout, zlog)

	zlog.Info("Starting docchat",
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Bool("credential_present", creds.Present()),
	)

	m := tui.New(tui.Deps{
		Catalog:    catly,
		Session:    sess,
		Dispatcher: dispatcher,
		Credential: creds,
		Surface:    surface,
		Logger:     zlog,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		zlog.Error("TUI exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zlog.Info("docchat exited")
}
