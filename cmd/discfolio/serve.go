package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/discfolio/content"
	"github.com/teranos/discfolio/logging"
	"github.com/teranos/discfolio/site"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			bind := cfg.Site.Bind
			if bindFlag != "" {
				bind = bindFlag
			}

			provider := newContentProvider(cfg, logger)
			frame := frameConfig(cfg)
			frame.OutputDir = ""
			submitter := newContactSubmitter(cfg, logger)
			handler := site.NewServer(site.Options{
				Title:       cfg.Site.Title,
				Owner:       cfg.Site.Owner,
				Content:     provider,
				Contact:     submitter,
				Frame:       frame,
				DiscRadius:  cfg.Carousel.DiscRadius,
				ActiveScale: cfg.Carousel.ActiveScale,
				Logger:      logger,
			})
			srv := site.NewHTTPServer(bind, handler)

			listener, err := net.Listen("tcp", bind)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", bind, err)
			}

			group, groupCtx := errgroup.WithContext(signalCtx)

			if cfg.Content.DataFile != "" {
				watcher, err := content.NewWatcher(provider, cfg.Content.DataFile, logger)
				if err != nil {
					logging.WarnWithContext(logger, "data file watch disabled", "content_watch",
						logging.Error(err),
						logging.String(logging.FieldImpact, "edits need a restart to show"))
				} else {
					group.Go(func() error { return watcher.Run(groupCtx) })
				}
			}

			group.Go(func() error {
				logger.Info("server listening",
					logging.String("addr", listener.Addr().String()),
					logging.String("content", describeSource(cfg)),
					logging.String("config", ctx.configPath))
				if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			})

			group.Go(func() error {
				<-groupCtx.Done()
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Warn("graceful shutdown failed", logging.Error(err))
					_ = srv.Close()
				}
				return nil
			})

			err = group.Wait()
			logTripSummaries(logger, provider, submitter)
			if err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override the bind address (host:port)")
	return cmd
}

func logTripSummaries(logger *slog.Logger, values ...any) {
	for _, v := range values {
		if r, ok := v.(site.TripReporter); ok {
			logger.Info("integration trips", logging.String("summary", r.Trips().Summary()))
		}
	}
}
