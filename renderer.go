package glpoint

import (
	"fmt"
	"log/slog"
)

// SurfaceRenderer is the callback set a host windowing layer drives.
//
// The host calls every method from its rendering thread, one at a time.
// OnSurfaceCreated runs once per surface (re)creation and must complete
// before the next OnFrameTick. OnSurfaceResized runs whenever the drawable
// area changes. OnFrameTick runs once per display refresh and returns
// without blocking.
type SurfaceRenderer interface {
	OnSurfaceCreated(d Driver) error
	OnSurfaceResized(width, height int)
	OnFrameTick()
}

// SurfaceReleaser is implemented by renderers that want to know when the
// host destroyed the surface. After OnSurfaceLost the driver passed to
// OnSurfaceCreated is never touched again.
type SurfaceReleaser interface {
	OnSurfaceLost()
}

// State is the lifecycle state of a Renderer.
type State uint8

const (
	// StateUninitialized means no surface has been created, or it was lost.
	StateUninitialized State = iota
	// StateSurfaceReady means the program is built and active.
	StateSurfaceReady
	// StateRendering means at least one frame was drawn on the current surface.
	StateRendering
	// StateFailed means the last program build failed. Frames are skipped
	// until the host creates a new surface.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateSurfaceReady:
		return "SurfaceReady"
	case StateRendering:
		return "Rendering"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Viewport is the window rectangle normalized device coordinates map to.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Renderer draws one point per frame on a cleared background.
//
// A Renderer follows the host's single rendering thread and does no
// locking of its own. It implements SurfaceRenderer and SurfaceReleaser.
//
// Calls that arrive without a usable program are no-ops: OnSurfaceResized
// and OnFrameTick do nothing before OnSurfaceCreated, after a failed build,
// or after OnSurfaceLost.
type Renderer struct {
	cfg      Config
	vertex   string
	fragment string
	logger   *slog.Logger

	driver   Driver
	program  ProgramHandle
	viewport Viewport
	state    State
	frames   uint64
}

var (
	_ SurfaceRenderer = (*Renderer)(nil)
	_ SurfaceReleaser = (*Renderer)(nil)
)

// NewRenderer creates a Renderer. Without options it draws the reference
// scene of DefaultConfig.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	vertex, fragment, err := o.config.Sources()
	if err != nil {
		return nil, err
	}

	return &Renderer{
		cfg:      o.config,
		vertex:   vertex,
		fragment: fragment,
		logger:   o.logger,
	}, nil
}

// Config returns the configuration the renderer was created with.
func (r *Renderer) Config() Config { return r.cfg }

// Sources returns the GLSL compiled on every surface creation.
func (r *Renderer) Sources() (vertex, fragment string) { return r.vertex, r.fragment }

// State returns the current lifecycle state.
func (r *Renderer) State() State { return r.state }

// Program returns the active program, or InvalidProgram when none is usable.
func (r *Renderer) Program() ProgramHandle { return r.program }

// Viewport returns the last viewport applied to the current surface.
func (r *Renderer) Viewport() Viewport { return r.viewport }

// Frames returns the number of frames drawn on the current surface.
func (r *Renderer) Frames() uint64 { return r.frames }

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// OnSurfaceCreated sets the clear color, builds the program on d and makes
// it current.
//
// Handles from an earlier surface are dropped without being deleted: the
// surface that issued them is gone. If the build fails the renderer enters
// StateFailed, keeps no program, and the typed build error is returned so
// the host can decide whether to retry on the next surface.
func (r *Renderer) OnSurfaceCreated(d Driver) error {
	r.driver = d
	r.program = InvalidProgram
	r.viewport = Viewport{}
	r.frames = 0

	d.ClearColor(r.cfg.ClearColor)

	p, err := buildProgram(d, r.vertex, r.fragment, r.log())
	if err != nil {
		r.state = StateFailed
		return err
	}

	d.UseProgram(p)
	r.program = p
	r.state = StateSurfaceReady

	r.log().Info("surface created", "program", uint32(p))
	return nil
}

// OnSurfaceResized sets the viewport to (0, 0, width, height).
// Non-positive sizes are ignored.
func (r *Renderer) OnSurfaceResized(width, height int) {
	if !r.ready() {
		r.log().Debug("resize ignored without program", "state", r.state.String())
		return
	}
	if width <= 0 || height <= 0 {
		r.log().Warn("resize ignored", "width", width, "height", height)
		return
	}

	r.driver.Viewport(0, 0, width, height)
	r.viewport = Viewport{Width: width, Height: height}

	r.log().Info("surface resized", "width", width, "height", height)
}

// OnFrameTick clears the color buffer and draws the point.
func (r *Renderer) OnFrameTick() {
	if !r.ready() {
		return
	}

	r.driver.Clear(ClearColorBuffer)
	r.driver.DrawArrays(PrimitivePoints, 0, 1)

	r.state = StateRendering
	r.frames++

	r.log().Debug("frame drawn", "frame", r.frames)
}

// OnSurfaceLost forgets the driver and every handle it issued.
func (r *Renderer) OnSurfaceLost() {
	r.driver = nil
	r.program = InvalidProgram
	r.viewport = Viewport{}
	r.state = StateUninitialized
	r.frames = 0

	r.log().Info("surface lost")
}

func (r *Renderer) ready() bool {
	return r.state == StateSurfaceReady || r.state == StateRendering
}
