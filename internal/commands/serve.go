package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/api"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/extractor"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/logging"
	"github.com/siddhirj-1803/Credit-Card-Statement-Analyzer/internal/store"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != 0 {
				a.cfg.Server.Port = port
			}
			h, cleanup, err := a.handler(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return a.serve(cmd, api.NewApp(h))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

// handler wires the API handler from configuration.
func (a *app) handler(cmd *cobra.Command) (*api.Handler, func(), error) {
	sum, closeSum, err := a.summarizer(cmd.Context())
	if err != nil {
		return nil, nil, err
	}

	h := &api.Handler{
		StaticDir:      a.cfg.Server.StaticDir,
		Logger:         a.log,
		Summarizer:     sum,
		Extract:        (&extractor.Extractor{Logger: a.log}).Text,
		RawSampleBytes: a.cfg.Server.RawSampleBytes,
		DumpDir:        a.cfg.Debug.DumpDir,
		BodyLimit:      a.cfg.BodyLimit(),
	}

	cleanup := closeSum
	if a.cfg.Store.Enabled {
		st, err := store.Open(a.cfg.Store.Path)
		if err != nil {
			closeSum()
			return nil, nil, err
		}
		h.Store = st
		cleanup = func() {
			closeSum()
			if err := st.Close(); err != nil {
				a.log.WithError(err).Warn("Failed to close statement store")
			}
		}
	}
	return h, cleanup, nil
}

type server interface {
	Listen(addr string) error
	ShutdownWithTimeout(timeout time.Duration) error
}

func (a *app) serve(cmd *cobra.Command, srv server) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()
	a.log.Info("Server listening",
		logging.F("addr", addr),
		logging.F("store", a.cfg.Store.Enabled))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.log.Info("Shutting down")
		return srv.ShutdownWithTimeout(shutdownTimeout)
	}
}
