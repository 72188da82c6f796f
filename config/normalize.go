package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if port, ok := os.LookupEnv("PORT"); ok && strings.TrimSpace(port) != "" {
		host := "0.0.0.0"
		if h, _, err := net.SplitHostPort(c.Site.Bind); err == nil && h != "" {
			host = h
		}
		c.Site.Bind = net.JoinHostPort(host, strings.TrimSpace(port))
	}
	if value, ok := os.LookupEnv("DISCFOLIO_CONTENT_URL"); ok {
		c.Content.URL = value
		c.Content.Enabled = strings.TrimSpace(value) != ""
	}
	if value, ok := os.LookupEnv("DISCFOLIO_CONTACT_URL"); ok {
		c.Contact.URL = value
		c.Contact.Enabled = strings.TrimSpace(value) != ""
	}

	c.Site.Bind = strings.TrimSpace(c.Site.Bind)
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	c.Site.Owner = strings.TrimSpace(c.Site.Owner)
	c.Content.URL = strings.TrimSpace(c.Content.URL)
	c.Contact.URL = strings.TrimSpace(c.Contact.URL)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	var err error
	if c.Content.DataFile != "" {
		if c.Content.DataFile, err = expandPath(strings.TrimSpace(c.Content.DataFile)); err != nil {
			return fmt.Errorf("content.data_file: %w", err)
		}
	}
	if c.Carousel.FilmDir != "" {
		if c.Carousel.FilmDir, err = expandPath(strings.TrimSpace(c.Carousel.FilmDir)); err != nil {
			return fmt.Errorf("carousel.film_dir: %w", err)
		}
	}
	return nil
}
