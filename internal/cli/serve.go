package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wakacards/pkg/pipeline"
)

// serveShutdownTimeout bounds graceful shutdown after SIGINT.
const serveShutdownTimeout = 5 * time.Second

// serveCommand creates the serve command: serve the cards over HTTP,
// rendering on demand with the configured cache in front of the API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the SVG cards over HTTP",
		Long: `Serve the SVG cards over HTTP.

Cards are rendered on demand from the latest stats; the response cache keeps
API traffic to one fetch per TTL window. Endpoints:

  GET /cards/languages.svg
  GET /cards/projects.svg
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.RequireAPIKey(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	server := &http.Server{
		Addr:    addr,
		Handler: c.serveHandler(runner),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	c.Logger.Info("serving cards", "addr", addr)
	printInfo("Serving cards on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// serveHandler builds the HTTP router.
func (c *CLI) serveHandler(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})

	r.Get("/cards/{card}.svg", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "card") + ".svg"
		if name != pipeline.ArtifactLanguages && name != pipeline.ArtifactProjects {
			http.NotFound(w, req)
			return
		}

		result, err := runner.Execute(req.Context(), c.pipelineOptions(false))
		if err != nil {
			c.Logger.Error("render card", "card", name, "err", err)
			http.Error(w, "card generation failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "max-age=300")
		_, _ = w.Write(result.Artifacts[name])
	})

	return r
}
