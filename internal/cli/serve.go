package cli

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/canvaskit/canvashtml/pkg/config"
	"github.com/canvaskit/canvashtml/pkg/server"
)

// shutdownTimeout bounds graceful shutdown after Ctrl-C.
const shutdownTimeout = 5 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string // listen address (overrides config)
	rootDir    string // root directory for asset resolution
	configPath string // alternate config file
	noCache    bool   // disable artifact caching
}

// serveCommand creates the serve command for live canvas previews.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve [file.canvas]",
		Short: "Preview a canvas in the browser with live re-conversion",
		Long: `Preview a canvas in the browser with live re-conversion.

The server converts the canvas on each request, so edits show up on
refresh. Rendered HTML is cached by content hash; editing the canvas
invalidates the cache automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := inputOrPick(args)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVarP(&opts.rootDir, "root-dir", "r", "", "root directory for asset resolution (default: canvas file directory)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/canvashtml/config.toml)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// runServe starts the preview server and blocks until the context is
// cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	rootDir := opts.rootDir
	if rootDir == "" {
		rootDir = cfg.RootDir
	}
	if rootDir, err = resolveRootDir(rootDir, filepath.Dir(input)); err != nil {
		return err
	}

	artifactCache, err := newCache(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer artifactCache.Close()

	srv := server.New(input, rootDir, artifactCache, cfg.Cache.TTL.Duration, logger)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	printInfo("Serving %s", input)
	printDetail("Listening on %s", addr)
	printLink("Open", "http://localhost"+addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields defaults.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(defaultPath)
}
