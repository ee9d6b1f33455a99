package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/aoemotors/leaddesk/internal/analytics"
	"github.com/aoemotors/leaddesk/internal/cli"
	"github.com/aoemotors/leaddesk/internal/cli/formatter"
	"github.com/aoemotors/leaddesk/internal/config"
	"github.com/aoemotors/leaddesk/internal/db"
	"github.com/aoemotors/leaddesk/internal/llm"
	"github.com/aoemotors/leaddesk/internal/mail"
	"github.com/aoemotors/leaddesk/internal/outreach"
	"github.com/aoemotors/leaddesk/internal/repository"
	"github.com/aoemotors/leaddesk/internal/server"
	"github.com/aoemotors/leaddesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	formatter.SetColorEnabled(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

	database, factory, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	bookingRepo := factory.Bookings(database)
	uow := db.NewUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(os.Stderr)

	// The completion client exists only when an endpoint is configured;
	// everything downstream degrades to its deterministic default without it.
	var llmClient llm.Client
	if cfg.LLMEnabled() {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if cfg.LLMLogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		llmClient = llm.NewOpenAIClient(cfg.LLMConfig(), llmObserver)
	}

	vocab := analytics.DefaultVocabulary()
	var strategy analytics.Strategy = analytics.NewRuleStrategy(vocab)
	if cfg.AnalyticsMode == config.ModeLLM {
		strategy = analytics.NewLLMStrategy(llmClient, vocab, analytics.DefaultConfidenceThreshold)
	}

	var sender mail.Sender = mail.NewLogSender(nil)
	if cfg.EmailEnabled() {
		sender = mail.NewSMTPSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailAddress, cfg.EmailPassword)
	}

	var notes *outreach.NotesAnalyzer
	if llmClient != nil {
		notes = outreach.NewNotesAnalyzer(llmClient)
	}

	app := &cli.App{
		Bookings:  service.NewBookingService(bookingRepo, factory, uow, observer),
		Analytics: service.NewAnalyticsService(bookingRepo, strategy, observer),
		Outreach:  service.NewOutreachService(bookingRepo, factory, uow, sender, notes, observer),
		HTTPAddr:  cfg.HTTPAddr,
		ServerOpts: server.Options{
			APIKey:      cfg.APIKey,
			TestEmailTo: cfg.EmailAddress,
		},
	}

	return cli.NewRootCmd(app).Execute()
}

// openDatabase opens the configured backend and pairs it with the matching
// repository factory.
func openDatabase(cfg *config.Config) (*sql.DB, repository.Factory, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		database, err := db.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres: %w", err)
		}
		return database, repository.PostgresFactory{}, nil
	default:
		path := cfg.SQLitePath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("finding home directory: %w", err)
			}
			path = filepath.Join(home, ".leaddesk", "leaddesk.db")
		}
		database, err := db.OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return database, repository.SQLiteFactory{}, nil
	}
}
