package cli

import (
	"context"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/server"
	"task-manager/internal/validation"
)

// ServeCommand runs the reference REST backend on SQLite
type ServeCommand struct {
	config *config.Config
}

// NewServeCommand creates a new serve command handler. It does not need a
// client, so it takes the configuration directly.
func NewServeCommand(cfg *config.Config) *ServeCommand {
	return &ServeCommand{config: cfg}
}

// Execute serves until ctx is cancelled, then shuts down gracefully
func (c *ServeCommand) Execute(ctx context.Context) error {
	repo, err := config.CreateRepository(c.config)
	if err != nil {
		return NewErrorHandler().Handle("open task database", err)
	}
	defer repo.Close()

	backend := api.New(repo, api.WithValidator(validation.NewValidatorWithConfig(c.config)))
	srv := server.New(backend, server.Options{
		Addr:           c.config.Server.Addr,
		AllowedOrigins: c.config.Server.AllowedOrigins,
	})

	logging.Infof("using %s task database", c.config.Application.Environment)
	return srv.ListenAndServe(ctx)
}
