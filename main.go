package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/mustafamoossawi/brief-server/brief"
	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/db"
	"github.com/mustafamoossawi/brief-server/dispatch"
	"github.com/mustafamoossawi/brief-server/draft"
	"github.com/mustafamoossawi/brief-server/render"
	"github.com/mustafamoossawi/brief-server/router"
)

func main() {
	var err error

	// Load .env for local development; a missing file is fine.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open SQLite database
	dbConn, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Pick the PDF backend
	renderer, err := render.New(cfg)
	if err != nil {
		slog.Error("renderer setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("PDF backend ready", "backend", cfg.PDFBackend)

	// Wire delivery channels from configuration
	var channels []dispatch.Channel
	if cfg.EmailConfigured() {
		channels = append(channels, dispatch.NewEmailChannel(cfg))
	} else {
		slog.Warn("email delivery not configured, submissions will be rejected")
	}
	if cfg.ChatConfigured() {
		channels = append(channels, dispatch.NewTelegramChannel(cfg))
	} else {
		slog.Info("telegram delivery not configured, skipping")
	}

	store := draft.NewStore(dbConn, draft.DefaultDebounce)
	orch := brief.NewOrchestrator(store, renderer, dispatch.NewDispatcher(channels...), dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: router.NewRouter(orch),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		// Push pending draft writes to disk before closing
		store.FlushAll()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
