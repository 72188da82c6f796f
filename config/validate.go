package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateContent(); err != nil {
		return err
	}
	if err := c.validateContact(); err != nil {
		return err
	}
	if err := c.validateCarousel(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSite() error {
	if c.Site.Bind == "" {
		return errors.New("site.bind must be set")
	}
	if _, _, err := net.SplitHostPort(c.Site.Bind); err != nil {
		return fmt.Errorf("site.bind: %w", err)
	}
	return nil
}

func (c *Config) validateContent() error {
	if c.Content.Enabled && c.Content.DataFile == "" {
		if err := validateURL("content.url", c.Content.URL); err != nil {
			return err
		}
	}
	if c.Content.CacheDurationMS < 0 {
		return errors.New("content.cache_duration_ms must be zero or positive")
	}
	if c.Content.RequestTimeout <= 0 {
		return errors.New("content.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateContact() error {
	if c.Contact.Enabled {
		if err := validateURL("contact.url", c.Contact.URL); err != nil {
			return err
		}
	}
	if c.Contact.RequestTimeout <= 0 {
		return errors.New("contact.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateCarousel() error {
	if c.Carousel.Width <= 0 || c.Carousel.Height <= 0 {
		return fmt.Errorf("carousel size must be positive, got %dx%d", c.Carousel.Width, c.Carousel.Height)
	}
	if c.Carousel.DiscRadius <= 0 {
		return errors.New("carousel.disc_radius must be positive")
	}
	if c.Carousel.ActiveScale < 1 {
		return errors.New("carousel.active_scale must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s must be set when enabled", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: host is required", field)
	}
	return nil
}
