package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Site contains the HTTP bind address and page identity.
type Site struct {
	Bind  string `toml:"bind"`
	Title string `toml:"title"`
	Owner string `toml:"owner"`
}

// Content configures where the biography, events, discography and videos come from.
type Content struct {
	Enabled         bool   `toml:"enabled"`
	URL             string `toml:"url"`
	DataFile        string `toml:"data_file"`
	CacheDurationMS int    `toml:"cache_duration_ms"`
	RequestTimeout  int    `toml:"request_timeout"`
}

// Contact configures contact form delivery.
type Contact struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Carousel configures rendered frames.
type Carousel struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	DiscRadius  float64 `toml:"disc_radius"`
	ActiveScale float64 `toml:"active_scale"`
	FilmDir     string  `toml:"film_dir"`
}

// Logging selects log level and output format.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config aggregates every section.
type Config struct {
	Site     Site     `toml:"site"`
	Content  Content  `toml:"content"`
	Contact  Contact  `toml:"contact"`
	Carousel Carousel `toml:"carousel"`
	Logging  Logging  `toml:"logging"`
}

// CacheDuration is the content cache lifetime.
func (c *Config) CacheDuration() time.Duration {
	return time.Duration(c.Content.CacheDurationMS) * time.Millisecond
}

// ContentTimeout is the HTTP timeout for content fetches.
func (c *Config) ContentTimeout() time.Duration {
	return time.Duration(c.Content.RequestTimeout) * time.Second
}

// ContactTimeout is the HTTP timeout for contact submissions.
func (c *Config) ContactTimeout() time.Duration {
	return time.Duration(c.Contact.RequestTimeout) * time.Second
}

// DefaultConfigPath returns ~/.config/discfolio/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/discfolio/config.toml")
}

// Load reads path (or the default locations when empty), applies environment
// overrides and validates the result. exists reports whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("discfolio.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Abs(pathValue)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
