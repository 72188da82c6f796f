package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/config"
	"github.com/teranos/discfolio/contact"
	"github.com/teranos/discfolio/content"
	"github.com/teranos/discfolio/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// logger builds the configured logger writing to w.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: w,
	})
}

// newContentProvider picks the payload source: a local data file wins over the
// remote endpoint, and neither means the built-in payload.
func newContentProvider(cfg *config.Config, logger *slog.Logger) *content.Provider {
	opts := content.Options{
		CacheDuration: cfg.CacheDuration(),
		Logger:        logger,
	}
	switch {
	case cfg.Content.DataFile != "":
		opts.Source = content.FileSource{Path: cfg.Content.DataFile}
		opts.Enabled = true
	case cfg.Content.Enabled:
		opts.Source = content.NewHTTPSource(cfg.Content.URL, cfg.ContentTimeout())
		opts.Enabled = true
	}
	return content.NewProvider(opts)
}

func newContactSubmitter(cfg *config.Config, logger *slog.Logger) contact.Submitter {
	return contact.NewSubmitter(cfg.Contact.URL, cfg.Contact.Enabled, cfg.ContactTimeout(), logger)
}

func frameConfig(cfg *config.Config) discfolio.FrameConfig {
	fc := discfolio.DefaultFrameConfig()
	fc.Width = cfg.Carousel.Width
	fc.Height = cfg.Carousel.Height
	fc.OutputDir = cfg.Carousel.FilmDir
	return fc
}

func describeSource(cfg *config.Config) string {
	switch {
	case cfg.Content.DataFile != "":
		return fmt.Sprintf("file %s", cfg.Content.DataFile)
	case cfg.Content.Enabled:
		return "remote endpoint"
	default:
		return "built-in"
	}
}
