package relay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/refundport/internal/logging"
	"github.com/dmitrijs2005/refundport/internal/relay/config"
)

// App wires the relay's configuration, sender, and HTTP server together and
// handles graceful shutdown.
type App struct {
	config *config.Config
	logger logging.Logger
	sender Sender
}

// NewApp builds the relay application. The outbound transport is the
// provider HTTP API when an API key is configured, plain SMTP otherwise.
func NewApp(c *config.Config) *App {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	var sender Sender
	if c.APIKey != "" {
		sender = NewAPISender(c.APIURL, c.APIKey, c.SenderEmail, c.SenderName)
		logger.Info(context.Background(), "using provider API for outgoing email")
	} else {
		sender = NewSMTPSender(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, c.SenderEmail, c.SenderName)
		logger.Info(context.Background(), "using SMTP for outgoing email")
	}

	return &App{config: c, logger: logger, sender: sender}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := NewHandler(app.sender, app.logger)
	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: NewRouter(handler)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "relay listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts the relay and blocks until a termination signal arrives and the
// server drains.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
