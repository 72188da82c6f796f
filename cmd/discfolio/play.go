package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/teranos/discfolio/logging"
	"github.com/teranos/discfolio/tui"
)

var errNotTerminal = errors.New("play needs an interactive terminal; use `discfolio render` for headless frames")

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Browse the video carousel in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin.Fd()) || !isTerminal(os.Stdout.Fd()) {
				return errNotTerminal
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// the alternate screen owns stdout and stderr; logs are dropped
			logger, err := ctx.logger(io.Discard)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			payload := newContentProvider(cfg, logger).AllData(cmd.Context())
			model := tui.NewModel(tui.Options{
				Owner:       cfg.Site.Owner,
				Items:       payload.DisplayItems(),
				DiscRadius:  cfg.Carousel.DiscRadius,
				ActiveScale: cfg.Carousel.ActiveScale,
				Logger:      logger,
			})

			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			if url, ok := model.Playing(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), url)
			}
			logger.Debug("terminal ui closed", logging.String("owner", cfg.Site.Owner))
			return nil
		},
	}
}
