package glpoint_test

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glpoint"
	"github.com/gogpu/glpoint/driver/soft"
	"github.com/gogpu/glpoint/internal/gltest"
)

func newRenderer(t *testing.T, opts ...glpoint.Option) *glpoint.Renderer {
	t.Helper()
	r, err := glpoint.NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func TestRendererEndToEnd(t *testing.T) {
	d := &gltest.Driver{}
	r := newRenderer(t)

	if err := r.OnSurfaceCreated(d); err != nil {
		t.Fatalf("OnSurfaceCreated() error = %v", err)
	}
	r.OnSurfaceResized(800, 600)
	r.OnFrameTick()

	if want := (gputypes.Color{R: 0, G: 1, B: 1, A: 1}); d.ClearColorValue != want {
		t.Errorf("clear color = %+v, want %+v", d.ClearColorValue, want)
	}
	if d.ViewportValue != [4]int{0, 0, 800, 600} {
		t.Errorf("viewport = %v, want [0 0 800 600]", d.ViewportValue)
	}
	if len(d.Clears) != 1 || d.Clears[0] != glpoint.ClearColorBuffer {
		t.Errorf("clears = %v, want one color-only clear", d.Clears)
	}
	want := gltest.Draw{Mode: glpoint.PrimitivePoints, First: 0, Count: 1, Program: r.Program()}
	if len(d.Draws) != 1 || d.Draws[0] != want {
		t.Errorf("draws = %+v, want [%+v]", d.Draws, want)
	}
	if d.Current != r.Program() || r.Program() == glpoint.InvalidProgram {
		t.Errorf("current program = %d, renderer program = %d", d.Current, r.Program())
	}
	if r.State() != glpoint.StateRendering {
		t.Errorf("State() = %v, want Rendering", r.State())
	}

	vs, fs := r.Sources()
	for _, s := range []string{"vec4(-1.0, 1.0, 0.0, 1.0)", "gl_PointSize = 20.0"} {
		if !strings.Contains(vs, s) {
			t.Errorf("vertex source missing %q:\n%s", s, vs)
		}
	}
	if !strings.Contains(fs, "gl_FragColor = vec4(1.0, 0.0, 0.0, 1.0)") {
		t.Errorf("fragment source:\n%s", fs)
	}
}

func TestRendererEndToEndPixels(t *testing.T) {
	d := soft.New(800, 600)
	r := newRenderer(t)

	if err := r.OnSurfaceCreated(d); err != nil {
		t.Fatalf("OnSurfaceCreated() error = %v", err)
	}
	r.OnSurfaceResized(800, 600)
	r.OnFrameTick()

	img := d.Image()
	red := color.RGBA{R: 255, A: 255}
	cyan := color.RGBA{G: 255, B: 255, A: 255}
	if got := img.RGBAAt(0, 0); got != red {
		t.Errorf("top-left pixel = %v, want red", got)
	}
	if got := img.RGBAAt(10, 10); got != cyan {
		t.Errorf("pixel (10,10) = %v, want cyan", got)
	}
	if got := img.RGBAAt(799, 599); got != cyan {
		t.Errorf("bottom-right pixel = %v, want cyan", got)
	}
	if st := d.Stats(); st.DrawCalls != 1 || st.Vertices != 1 {
		t.Errorf("Stats() = %+v, want one draw of one vertex", st)
	}
}

func TestFrameTickWithoutSurfaceIsNoop(t *testing.T) {
	r := newRenderer(t)
	r.OnFrameTick()
	r.OnSurfaceResized(640, 480)

	if r.State() != glpoint.StateUninitialized {
		t.Errorf("State() = %v, want Uninitialized", r.State())
	}
	if r.Frames() != 0 || r.Viewport() != (glpoint.Viewport{}) {
		t.Errorf("Frames() = %d, Viewport() = %+v, want untouched", r.Frames(), r.Viewport())
	}
}

func TestResizeBeforeCreateIsNoop(t *testing.T) {
	d := &gltest.Driver{}
	r := newRenderer(t)
	r.OnSurfaceResized(800, 600)
	if err := r.OnSurfaceCreated(d); err != nil {
		t.Fatal(err)
	}
	if d.Called("Viewport") {
		t.Error("viewport set by a resize that preceded the surface")
	}
}

func TestResizeIdempotent(t *testing.T) {
	once := &gltest.Driver{}
	twice := &gltest.Driver{}

	r1 := newRenderer(t)
	if err := r1.OnSurfaceCreated(once); err != nil {
		t.Fatal(err)
	}
	r1.OnSurfaceResized(1024, 768)

	r2 := newRenderer(t)
	if err := r2.OnSurfaceCreated(twice); err != nil {
		t.Fatal(err)
	}
	r2.OnSurfaceResized(1024, 768)
	r2.OnSurfaceResized(1024, 768)

	if once.ViewportValue != twice.ViewportValue || r1.Viewport() != r2.Viewport() {
		t.Errorf("viewport once = %v, twice = %v", once.ViewportValue, twice.ViewportValue)
	}
}

func TestResizeRejectsEmptyGeometry(t *testing.T) {
	d := &gltest.Driver{}
	r := newRenderer(t)
	if err := r.OnSurfaceCreated(d); err != nil {
		t.Fatal(err)
	}
	r.OnSurfaceResized(800, 600)
	r.OnSurfaceResized(0, 600)
	r.OnSurfaceResized(800, -1)

	if d.Count("Viewport") != 1 || d.ViewportValue != [4]int{0, 0, 800, 600} {
		t.Errorf("viewport = %v after %d calls", d.ViewportValue, d.Count("Viewport"))
	}
}

func TestSurfaceCreatedBuildFailure(t *testing.T) {
	d := &gltest.Driver{LinkFail: true, LinkLog: "bad link"}
	r := newRenderer(t)

	err := r.OnSurfaceCreated(d)
	if !errors.Is(err, glpoint.ErrProgramLink) {
		t.Fatalf("OnSurfaceCreated() error = %v, want link error", err)
	}
	if r.State() != glpoint.StateFailed || r.Program() != glpoint.InvalidProgram {
		t.Errorf("State() = %v, Program() = %d after failed build", r.State(), r.Program())
	}

	r.OnSurfaceResized(800, 600)
	r.OnFrameTick()
	if d.Called("UseProgram") || d.Called("Viewport") || d.Called("DrawArrays") || d.Called("Clear") {
		t.Errorf("driver used after failed build: %v", d.Ops)
	}
}

func TestSurfaceRecreation(t *testing.T) {
	r := newRenderer(t)

	first := &gltest.Driver{LinkFail: true}
	if err := r.OnSurfaceCreated(first); err == nil {
		t.Fatal("first build succeeded, want failure")
	}

	// A new surface retries the build on its own context.
	second := &gltest.Driver{}
	if err := r.OnSurfaceCreated(second); err != nil {
		t.Fatalf("rebuild error = %v", err)
	}
	r.OnSurfaceResized(320, 240)
	r.OnFrameTick()
	r.OnFrameTick()

	if len(second.Draws) != 2 || len(first.Draws) != 0 {
		t.Errorf("draws first=%d second=%d, want 0 and 2", len(first.Draws), len(second.Draws))
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}

	r.OnSurfaceLost()
	r.OnFrameTick()
	if len(second.Draws) != 2 {
		t.Error("drew after the surface was lost")
	}
	if r.State() != glpoint.StateUninitialized || r.Program() != glpoint.InvalidProgram {
		t.Errorf("State() = %v, Program() = %d after loss", r.State(), r.Program())
	}
}

func TestRendererOptions(t *testing.T) {
	black := gputypes.Color{A: 1}
	white := gputypes.Color{R: 1, G: 1, B: 1, A: 1}
	r := newRenderer(t,
		glpoint.WithClearColor(black),
		glpoint.WithPoint([4]float32{0.5, -0.25, 0, 1}, 8, white),
	)

	vs, fs := r.Sources()
	if !strings.Contains(vs, "vec4(0.5, -0.25, 0.0, 1.0)") || !strings.Contains(vs, "gl_PointSize = 8.0") {
		t.Errorf("vertex source:\n%s", vs)
	}
	if !strings.Contains(fs, "vec4(1.0, 1.0, 1.0, 1.0)") {
		t.Errorf("fragment source:\n%s", fs)
	}

	d := soft.New(16, 16)
	if err := r.OnSurfaceCreated(d); err != nil {
		t.Fatalf("generated shaders rejected: %v", err)
	}
}

func TestRendererShaderOverride(t *testing.T) {
	r := newRenderer(t, glpoint.WithShaderSources("void main() { gl_Position = vec4(0.0) }", ""))

	err := r.OnSurfaceCreated(soft.New(4, 4))
	var ce *glpoint.ShaderCompileError
	if !errors.As(err, &ce) || ce.Kind != glpoint.VertexShader {
		t.Fatalf("error = %v, want vertex compile error", err)
	}
	if !strings.Contains(ce.Log, "syntax error") {
		t.Errorf("Log = %q, want driver diagnostics", ce.Log)
	}
}

func TestNewRendererValidates(t *testing.T) {
	tests := []struct {
		name string
		opt  glpoint.Option
	}{
		{"zero point size", glpoint.WithPoint([4]float32{0, 0, 0, 1}, 0, gputypes.Color{A: 1})},
		{"color out of range", glpoint.WithClearColor(gputypes.Color{R: 2, A: 1})},
		{"negative alpha", glpoint.WithPoint([4]float32{0, 0, 0, 1}, 1, gputypes.Color{A: -1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := glpoint.NewRenderer(tt.opt); err == nil {
				t.Error("NewRenderer() succeeded, want validation error")
			}
		})
	}
}

func TestRendererLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newRenderer(t, glpoint.WithLogger(l))

	if err := r.OnSurfaceCreated(&gltest.Driver{}); err != nil {
		t.Fatal(err)
	}
	r.OnSurfaceResized(0, 0)

	out := buf.String()
	for _, s := range []string{"shader compiled", "program linked", "surface created", "resize ignored"} {
		if !strings.Contains(out, s) {
			t.Errorf("log missing %q:\n%s", s, out)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    glpoint.State
		want string
	}{
		{glpoint.StateUninitialized, "Uninitialized"},
		{glpoint.StateSurfaceReady, "SurfaceReady"},
		{glpoint.StateRendering, "Rendering"},
		{glpoint.StateFailed, "Failed"},
		{glpoint.State(42), "State(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", uint8(tt.s), got, tt.want)
		}
	}
}
