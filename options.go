package glpoint

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r := glpoint.NewRenderer(
//	    glpoint.WithClearColor(gputypes.Color{R: 0, G: 0, B: 0, A: 1}),
//	    glpoint.WithPoint([4]float32{0, 0, 0, 1}, 8, gputypes.Color{R: 1, G: 1, B: 1, A: 1}),
//	)
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	config Config
	logger *slog.Logger
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		config: DefaultConfig(),
		logger: nil, // package logger
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(c Config) Option {
	return func(o *rendererOptions) {
		o.config = c
	}
}

// WithClearColor sets the background color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *rendererOptions) {
		o.config.ClearColor = c
	}
}

// WithPoint sets the clip-space position, size in pixels and color of the
// point. It has no effect on stages overridden with WithShaderSources.
func WithPoint(position [4]float32, size float32, c gputypes.Color) Option {
	return func(o *rendererOptions) {
		o.config.PointPosition = position
		o.config.PointSize = size
		o.config.PointColor = c
	}
}

// WithShaderSources compiles the given GLSL instead of the generated point
// shaders. An empty string keeps the generated source for that stage.
func WithShaderSources(vertex, fragment string) Option {
	return func(o *rendererOptions) {
		o.config.VertexSource = vertex
		o.config.FragmentSource = fragment
	}
}

// WithLogger sets a renderer-specific logger. Without it the renderer logs
// through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *rendererOptions) {
		o.logger = l
	}
}
