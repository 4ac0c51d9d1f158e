package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/refundport/internal/cryptox"
	"github.com/dmitrijs2005/refundport/internal/logging"
	"github.com/dmitrijs2005/refundport/internal/portal/challenge"
	"github.com/dmitrijs2005/refundport/internal/portal/config"
	"github.com/dmitrijs2005/refundport/internal/portal/notify"
	"github.com/dmitrijs2005/refundport/internal/portal/repositories/accounts"
	"github.com/dmitrijs2005/refundport/internal/portal/session"
)

// App holds the portal CLI's wiring: the session manager and the terminal I/O.
type App struct {
	config  *config.Config
	manager *session.Manager
	reader  *bufio.Reader
	db      *sql.DB
}

// NewApp assembles the portal from its configuration. Accounts live in
// PostgreSQL when a DSN is configured, otherwise in a local SQLite file.
// Verification codes live in Redis when an address is configured, otherwise
// in process memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.NewSlogLogger(slogger)

	var repo accounts.Repository
	var db *sql.DB
	var err error
	if c.PostgresDSN != "" {
		db, err = accounts.OpenPostgres(ctx, c.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("account database init: %w", err)
		}
		repo = accounts.NewPostgresRepository(db)
	} else {
		db, err = accounts.OpenSQLite(ctx, c.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("account database init: %w", err)
		}
		repo = accounts.NewSQLiteRepository(db)
	}

	var issuer challenge.Issuer
	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		issuer = challenge.NewRedisIssuer(rdb, c.CodeLength, c.CodeTTL)
	} else {
		issuer = challenge.NewMemoryIssuer(c.CodeLength, c.CodeTTL)
	}

	vault := cryptox.NewVault(c.KDFIterations, c.SaltBytes, c.IVBytes)
	gateway := notify.NewRelayClient(c.RelayEndpoint, c.RelayTimeout)

	manager := session.NewManager(vault, repo, issuer, gateway, logger, session.Config{
		PasswordPolicy: session.PasswordPolicy{MinLength: c.PasswordMinLength, RequireLetter: true, RequireDigit: true},
		SessionTTL:     c.SessionTTL,
		TokenSecret:    []byte(c.SessionSecret),
		CompanyEmail:   c.CompanyEmail,
	})

	return &App{
		config:  c,
		manager: manager,
		reader:  bufio.NewReader(os.Stdin),
		db:      db,
	}, nil
}

// Run drives the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Tax Refund Portal CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}

// Close releases the account database.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// status renders the prompt fragment describing the current session.
func (a *App) status() string {
	switch a.manager.State() {
	case session.StatePendingChallenge:
		return fmt.Sprintf("(%s: code sent, 'verify' to continue)", a.manager.Subject())
	case session.StateResetAuthorized:
		return "(reset verified, 'newpassword' to finish)"
	case session.StateAuthenticated:
		sess := a.manager.Current()
		if sess != nil {
			return fmt.Sprintf("(%s, expires %s)", sess.Subject, sess.ExpiresAt.Format(time.Kitchen))
		}
		return "(authenticated)"
	default:
		return "(anonymous)"
	}
}
