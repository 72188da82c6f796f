package config

const (
	defaultBind                = "127.0.0.1:8080"
	defaultTitle               = "Michael Rodenkirch"
	defaultOwner               = "Michael Rodenkirch"
	defaultScriptURL           = "https://script.google.com/macros/s/AKfycbwbQ7YYLkiXCfrYL5HJI2CQh4R0WOPVwmhYFniLag9HW4Ldd2Ko4oGEysMDztLO2sgH/exec"
	defaultCacheDurationMillis = 5 * 60 * 1000
	defaultRequestTimeout      = 10
	defaultFrameWidth          = 1280
	defaultFrameHeight         = 720
	defaultDiscRadius          = 120
	defaultActiveScale         = 1.1
	defaultFilmDir             = "film"
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
	defaultContentEnabled      = false
	defaultContactEnabled      = false
)

// Default returns a Config populated with repository defaults. The remote
// spreadsheet integration is off until a deployment opts in.
func Default() Config {
	return Config{
		Site: Site{
			Bind:  defaultBind,
			Title: defaultTitle,
			Owner: defaultOwner,
		},
		Content: Content{
			Enabled:         defaultContentEnabled,
			URL:             defaultScriptURL,
			CacheDurationMS: defaultCacheDurationMillis,
			RequestTimeout:  defaultRequestTimeout,
		},
		Contact: Contact{
			Enabled:        defaultContactEnabled,
			URL:            defaultScriptURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Carousel: Carousel{
			Width:       defaultFrameWidth,
			Height:      defaultFrameHeight,
			DiscRadius:  defaultDiscRadius,
			ActiveScale: defaultActiveScale,
			FilmDir:     defaultFilmDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
