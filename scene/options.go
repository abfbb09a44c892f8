package scene

import (
	"log/slog"

	"cubeviz/internal/logx"
	"cubeviz/quarkgl"
)

type options struct {
	edge       float64
	pointSize  int
	axes       quarkgl.Scalar
	damping    quarkgl.Scalar
	background quarkgl.Color
	faces      quarkgl.RenderMode
	log        *slog.Logger
}

func defaultOptions() options {
	return options{
		edge:       1,
		pointSize:  5,
		axes:       1.5,
		damping:    0.25,
		background: quarkgl.Hex(0x000000),
		faces:      quarkgl.MeshHidden,
	}
}

// Option configures a Scene.
type Option func(*options)

// WithEdgeLength sets the cube edge length before any transform. It must be
// positive.
func WithEdgeLength(p float64) Option { return func(o *options) { o.edge = p } }

// WithPointSize sets the vertex dot size in pixels.
func WithPointSize(px int) Option { return func(o *options) { o.pointSize = px } }

// WithAxesLength sets the length of the axis indicator.
func WithAxesLength(l float32) Option { return func(o *options) { o.axes = quarkgl.Scalar(l) } }

// WithDamping sets the fraction of queued orbit input applied per tick.
// 0 or 1 disables easing.
func WithDamping(f float32) Option { return func(o *options) { o.damping = quarkgl.Scalar(f) } }

// WithBackground sets the surface clear color.
func WithBackground(c quarkgl.Color) Option { return func(o *options) { o.background = c } }

// WithFaces sets the initial face display mode.
func WithFaces(mode quarkgl.RenderMode) Option { return func(o *options) { o.faces = mode } }

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

func (o *options) logger() *slog.Logger {
	if o.log == nil {
		return logx.Discard()
	}
	return o.log
}
