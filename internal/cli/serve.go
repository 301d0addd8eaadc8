package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dcruz/phasegen/internal/server"
	"github.com/dcruz/phasegen/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Database   string
	ConfigPath string
	Addr       string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API over HTTP",
		Long: `Serve the JSON API: mapping table inspection and update, phase
listing, generation preview, and generation.

Example:
  phasegen serve --db ./plant.db --addr :8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "plc_config.json", "mapping tables file")
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	log := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	srv, err := server.New(log, st, opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize server", err)
	}

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", opts.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server failed", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return WrapExitError(ExitCommandError, "shutdown failed", err)
		}
	}

	return nil
}
