package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/logging"
)

type renderOptions struct {
	frames         int
	scroll         float64
	settle         int
	out            string
	baseline       string
	updateBaseline bool
	tolerance      float64
	sheet          bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render carousel frames to PNG files",
		Long: "Render scrolls the carousel headlessly and writes one settled frame per step.\n" +
			"With --baseline each frame is compared against the PNG of the same name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.frames < 1 {
				return fmt.Errorf("--frames must be at least 1")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			fc := frameConfig(cfg)
			if opts.out != "" {
				fc.OutputDir = opts.out
			}
			items := newContentProvider(cfg, logger).AllData(cmd.Context()).DisplayItems()

			op := discfolio.NewOperator(items, fc,
				discfolio.WithDiscRadius(cfg.Carousel.DiscRadius),
				discfolio.WithActiveScale(cfg.Carousel.ActiveScale))
			op.CaptureTrackingShot("initial")
			for i := 1; i < opts.frames; i++ {
				op.ScrollWithTrackingShot(opts.scroll, opts.settle, fmt.Sprintf("step_%02d", i))
			}
			take := op.Stop()
			if take.Error != nil {
				return take.Error
			}

			out := cmd.OutOrStdout()
			for _, shot := range take.Shots {
				title := ""
				if shot.Selected >= 0 && shot.Selected < len(items) {
					title = items[shot.Selected].Title
				}
				fmt.Fprintf(out, "%s\tselected=%d\t%s\n", shot.Filename, shot.Selected, title)
			}
			logger.Info("render complete",
				logging.Int("frames", take.Frames),
				logging.Int("shots", len(take.Shots)),
				logging.String("dir", fc.OutputDir))

			if opts.sheet {
				sheet, err := discfolio.NewContactSheet(cfg.Site.Owner, take, items)
				if err != nil {
					return fmt.Errorf("build contact sheet: %w", err)
				}
				path := filepath.Join(fc.OutputDir, "index.html")
				if err := sheet.Write(path); err != nil {
					return err
				}
				fmt.Fprintf(out, "contact sheet: %s\n", path)
			}

			if opts.baseline == "" {
				return nil
			}
			return compareBaseline(cmd, opts, fc.OutputDir, take)
		},
	}

	cmd.Flags().IntVar(&opts.frames, "frames", 6, "Number of frames to capture")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 120, "Wheel delta applied between frames")
	cmd.Flags().IntVar(&opts.settle, "settle", 120, "Maximum animation frames to settle each step")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (defaults to carousel.film_dir)")
	cmd.Flags().StringVar(&opts.baseline, "baseline", "", "Directory of baseline frames to compare against")
	cmd.Flags().BoolVar(&opts.updateBaseline, "update-baseline", false, "Replace baseline frames with this render")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0.05, "Allowed fraction of differing pixels")
	cmd.Flags().BoolVar(&opts.sheet, "sheet", false, "Write an index.html contact sheet next to the frames")
	return cmd
}

func compareBaseline(cmd *cobra.Command, opts renderOptions, dir string, take *discfolio.Take) error {
	supervisor := discfolio.NewFrameSupervisor(opts.baseline, dir).WithTolerance(opts.tolerance)
	out := cmd.OutOrStdout()

	var failures []string
	for _, shot := range take.Shots {
		name := strings.TrimSuffix(filepath.Base(shot.Filename), ".png")
		if opts.updateBaseline {
			if err := supervisor.SetBaseline(name, shot.Filename); err != nil {
				return fmt.Errorf("update baseline %s: %w", name, err)
			}
			fmt.Fprintf(out, "baseline updated: %s\n", name)
			continue
		}
		if err := supervisor.ValidateConsistency(name); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(failures) > 0 {
		return errors.New(strings.Join(failures, "\n"))
	}
	if !opts.updateBaseline {
		fmt.Fprintf(out, "%d frames match baseline\n", len(take.Shots))
	}
	return nil
}
