package plot

import (
	"fmt"
	"io"
	"log/slog"
)

// Options configures a chart.
//
// Width/Height – image size in pixels.
// Transform    – coordinate system of fit charts.
// Legend       – draw a legend naming every replicate or Set.
// Samples      – points per fitted curve, at least 2.
// Title        – optional chart title.
// Logger       – receives a debug line per dropped point; nil discards.
type Options struct {
	Width     int
	Height    int
	Transform Transform
	Legend    bool
	Samples   int
	Title     string
	Logger    *slog.Logger
}

// Option represents a functional option for configuring a chart.
type Option func(*Options)

// WithSize sets the image size. Non-positive sizes panic.
func WithSize(w, h int) Option {
	return func(o *Options) {
		if w <= 0 || h <= 0 {
			panic(fmt.Sprintf("plot: invalid size %dx%d", w, h))
		}
		o.Width, o.Height = w, h
	}
}

// WithTransform selects the coordinate system.
func WithTransform(t Transform) Option {
	return func(o *Options) { o.Transform = t }
}

// WithLegend enables the legend.
func WithLegend() Option {
	return func(o *Options) { o.Legend = true }
}

// WithSamples sets the number of samples per curve. Values below 2 panic.
func WithSamples(n int) Option {
	return func(o *Options) {
		if n < 2 {
			panic("plot: samples must be >= 2")
		}
		o.Samples = n
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithLogger routes debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// DefaultOptions returns an 800x600 direct chart with 100-point curves.
func DefaultOptions() Options {
	return Options{
		Width:     800,
		Height:    600,
		Transform: Direct,
		Samples:   100,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = DefaultOptions().Logger
	}

	return o
}
