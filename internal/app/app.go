package app

import (
	"context"
	"net/http"
	"os"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/tienda-mobile/storectl/internal/api"
	"github.com/tienda-mobile/storectl/internal/session"
	"github.com/tienda-mobile/storectl/internal/shell"
	"github.com/tienda-mobile/storectl/pkg/httpclient"
)

// Run creates all dependencies and drives the interactive shell until the
// user quits or the context is cancelled. It is the single wiring point for
// the client.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Debug("Initializing", zap.String("api_url", cfg.APIURL))

	// Session store, eagerly loaded from disk. A malformed file just means
	// a logged-out start.
	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return errors.Wrap(err, "resolve session path")
		}
		sessionPath = p
	}
	sessions := session.NewFileStore(sessionPath)

	// HTTP client with the outgoing middleware chain.
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: httpclient.Wrap(nil,
			httpclient.RequestID(),
			httpclient.UserAgent("storectl"),
			httpclient.LogRequests(),
		),
	}

	client := api.New(cfg.APIURL, httpClient)

	ctrl := shell.NewController(client, sessions)
	sh := shell.New(ctrl, os.Stdin, os.Stdout)

	if err := sh.Run(ctx, client.BaseURL()); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "shell")
	}
	return nil
}
