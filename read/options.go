package read

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/minff/geodata"
	"github.com/minff/geodata/cache"
	"github.com/minff/geodata/middleware"
	"github.com/minff/geodata/network"
	"github.com/minff/geodata/repository"
)

// Option configures a client at construction time.
type Option func(*config)

type config struct {
	codecName string
	extra     []middleware.Middleware
	tracer    trace.Tracer
	meter     metric.Meter
}

// WithCodec selects the cache serialization codec by name ("json" or
// "msgpack"). Defaults to JSON.
func WithCodec(name string) Option {
	return func(c *config) { c.codecName = name }
}

// WithMiddleware appends custom middleware to the fetch chain, innermost
// position (after recovery, tracing, metrics, and logging).
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *config) { c.extra = append(c.extra, mws...) }
}

// WithTracerProvider uses the given provider for fetch spans instead of
// the OTel global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracer = tp.Tracer("github.com/minff/geodata") }
}

// WithMeterProvider uses the given provider for fetch metrics instead of
// the OTel global.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) { c.meter = mp.Meter("github.com/minff/geodata") }
}

func newConfig(opts ...Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// chain assembles the fetch middleware stack:
// recover → tracing → metrics → logging → custom → fetch.
func (c config) chain(logger *slog.Logger) middleware.Middleware {
	mws := []middleware.Middleware{middleware.Recover(logger)}
	if c.tracer != nil {
		mws = append(mws, middleware.TracingWithTracer(c.tracer))
	} else {
		mws = append(mws, middleware.Tracing())
	}
	if c.meter != nil {
		mws = append(mws, middleware.MetricsWithMeter(c.meter))
	} else {
		mws = append(mws, middleware.Metrics())
	}
	mws = append(mws, middleware.Logging(logger))
	mws = append(mws, c.extra...)
	return middleware.Chain(mws...)
}

// repoConfig binds the shared collaborators into a repository config.
func (c config) repoConfig(hrn geodata.HRN, settings geodata.Settings, logger *slog.Logger) repository.Config {
	return repository.Config{
		Catalog:   hrn,
		Cache:     settings.Cache,
		Codec:     cache.GetCodec(c.codecName),
		Chain:     c.chain(logger),
		Scheduler: settings.Scheduler,
		Logger:    logger,
	}
}

// networkClient builds the REST collaborator from the settings.
func networkClient(settings geodata.Settings, logger *slog.Logger) *network.Client {
	opts := []network.Option{network.WithLogger(logger)}
	if settings.HTTPClient != nil {
		opts = append(opts, network.WithHTTPClient(settings.HTTPClient))
	}
	if settings.RateLimit > 0 {
		opts = append(opts, network.WithRateLimit(settings.RateLimit, settings.RateBurst))
	}
	return network.New(settings.Endpoint, opts...)
}
