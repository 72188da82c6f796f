package content

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/teranos/discfolio/logging"
	"github.com/teranos/discfolio/trip"
)

// DefaultCacheDuration is how long a fetched payload is reused.
const DefaultCacheDuration = 5 * time.Minute

// Options configures a Provider.
type Options struct {
	Source        Source
	Enabled       bool
	CacheDuration time.Duration
	Logger        *slog.Logger
	// Now replaces the wall clock, for tests.
	Now func() time.Time
}

// Provider serves the site payload with caching and fallback. It is safe for
// concurrent use; concurrent cache misses share one fetch.
type Provider struct {
	source        Source
	enabled       bool
	cacheDuration time.Duration
	now           func() time.Time
	logger        *slog.Logger
	trips         *trip.Handler
	group         singleflight.Group

	mu       sync.RWMutex
	cached   *Payload
	cachedAt time.Time
}

// NewProvider builds a provider. A provider without a source behaves as disabled.
func NewProvider(opts Options) *Provider {
	if opts.CacheDuration < 0 {
		opts.CacheDuration = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Provider{
		source:        opts.Source,
		enabled:       opts.Enabled && opts.Source != nil,
		cacheDuration: opts.CacheDuration,
		now:           opts.Now,
		logger:        logging.NewComponentLogger(opts.Logger, "content"),
		trips:         trip.NewHandler("content", nil),
	}
}

// Enabled reports whether the provider consults its source.
func (p *Provider) Enabled() bool { return p.enabled }

// AllData returns the cached payload while it is fresh, the default payload
// when disabled, and otherwise the source's payload. Any source failure falls
// back to the default payload, which is not cached.
func (p *Provider) AllData(ctx context.Context) Payload {
	if cached, ok := p.fresh(); ok {
		p.logger.Debug("using cached data")
		return cached
	}

	if !p.enabled {
		p.logger.Debug("remote content disabled, using default data")
		return defaultPayloadAt(p.now())
	}

	// The shared fetch outlives any single caller; each caller stops waiting
	// when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan("all", func() (interface{}, error) {
		if cached, ok := p.fresh(); ok {
			return cached, nil
		}
		return p.fetch(fetchCtx), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Payload).clone()
	case <-ctx.Done():
		p.logger.Debug("caller gone before content arrived", logging.Error(ctx.Err()))
		return defaultPayloadAt(p.now())
	}
}

func (p *Provider) fetch(ctx context.Context) Payload {
	p.logger.Debug("fetching content", logging.String("source", p.source.String()))

	payload, err := p.source.Fetch(ctx)
	if err != nil {
		t := p.classify(err)
		p.trips.Record(t)
		logging.WarnWithContext(p.logger, "content fetch failed, falling back to default data", "content_fallback",
			logging.Error(err),
			logging.String("trip", t.Type),
			logging.String(logging.FieldErrorHint, "check content.url or content.data_file"))
		return defaultPayloadAt(p.now())
	}

	p.mu.Lock()
	p.cached = &payload
	p.cachedAt = p.now()
	p.mu.Unlock()

	p.logger.Info("content fetched",
		logging.String("source", p.source.String()),
		logging.Int("videos", len(payload.Videos)),
		logging.Int("events", len(payload.Events)))
	return payload.clone()
}

func (p *Provider) fresh() (Payload, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached == nil {
		return Payload{}, false
	}
	if p.now().Sub(p.cachedAt) >= p.cacheDuration {
		return Payload{}, false
	}
	return p.cached.clone(), true
}

func (p *Provider) classify(err error) *trip.Trip {
	ctx := trip.Context{"source": p.source.String()}
	if statusErr, ok := isStatus(err); ok {
		ctx["status"] = statusErr.Code
		return trip.NewStumble(trip.TypeStatus, "content endpoint returned an error status", ctx).WithCause(err)
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return trip.NewStumble(trip.TypePayload, "content payload unusable", ctx).WithCause(err)
	}
	if errors.Is(err, os.ErrNotExist) {
		return trip.NewFall(trip.TypePayload, "content file missing", ctx).WithCause(err)
	}
	return trip.NewStumble(trip.TypeNetwork, "content source unreachable", ctx).WithCause(err)
}

// ClearCache forces the next AllData to consult the source.
func (p *Provider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
	p.cachedAt = time.Time{}
}

// Trips exposes recorded fetch failures.
func (p *Provider) Trips() *trip.Handler { return p.trips }
