// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gles

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/glpoint"
)

// fakeContext implements the part of gl.Context the driver uses. Calls to
// any other method panic on the nil embedded interface.
type fakeContext struct {
	gl.Context

	next        uint32
	types       map[uint32]gl.Enum
	failCompile map[gl.Enum]string
	linkLog     string
	deleted     []uint32

	clearColor [4]float32
	viewport   [4]int
	clearMask  gl.Enum
	drawMode   gl.Enum
	drawCount  int
	current    gl.Program
}

func newFakeContext() *fakeContext {
	return &fakeContext{types: make(map[uint32]gl.Enum), failCompile: make(map[gl.Enum]string)}
}

func (c *fakeContext) CreateShader(ty gl.Enum) gl.Shader {
	c.next++
	c.types[c.next] = ty
	return gl.Shader{Value: c.next}
}

func (c *fakeContext) ShaderSource(gl.Shader, string) {}
func (c *fakeContext) CompileShader(gl.Shader)        {}

func (c *fakeContext) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if pname != gl.COMPILE_STATUS {
		return 0
	}
	if _, fail := c.failCompile[c.types[s.Value]]; fail {
		return gl.FALSE
	}
	return gl.TRUE
}

func (c *fakeContext) GetShaderInfoLog(s gl.Shader) string {
	return c.failCompile[c.types[s.Value]]
}

func (c *fakeContext) DeleteShader(s gl.Shader) { c.deleted = append(c.deleted, s.Value) }

func (c *fakeContext) CreateProgram() gl.Program {
	c.next++
	return gl.Program{Init: true, Value: c.next}
}

func (c *fakeContext) AttachShader(gl.Program, gl.Shader) {}
func (c *fakeContext) LinkProgram(gl.Program)             {}

func (c *fakeContext) GetProgrami(p gl.Program, pname gl.Enum) int {
	if pname == gl.LINK_STATUS && c.linkLog == "" {
		return gl.TRUE
	}
	return gl.FALSE
}

func (c *fakeContext) GetProgramInfoLog(gl.Program) string { return c.linkLog }
func (c *fakeContext) DeleteProgram(p gl.Program)          { c.deleted = append(c.deleted, p.Value) }
func (c *fakeContext) UseProgram(p gl.Program)             { c.current = p }

func (c *fakeContext) ClearColor(r, g, b, a float32) { c.clearColor = [4]float32{r, g, b, a} }
func (c *fakeContext) Viewport(x, y, w, h int)       { c.viewport = [4]int{x, y, w, h} }
func (c *fakeContext) Clear(mask gl.Enum)            { c.clearMask = mask }

func (c *fakeContext) DrawArrays(mode gl.Enum, first, count int) {
	c.drawMode = mode
	c.drawCount = count
}

func TestRendererOnGLES(t *testing.T) {
	ctx := newFakeContext()
	r, err := glpoint.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	if err := r.OnSurfaceCreated(New(ctx)); err != nil {
		t.Fatalf("OnSurfaceCreated() error = %v", err)
	}
	r.OnSurfaceResized(800, 600)
	r.OnFrameTick()

	if ctx.clearColor != [4]float32{0, 1, 1, 1} {
		t.Errorf("clear color = %v, want [0 1 1 1]", ctx.clearColor)
	}
	if ctx.viewport != [4]int{0, 0, 800, 600} {
		t.Errorf("viewport = %v, want [0 0 800 600]", ctx.viewport)
	}
	if ctx.clearMask != gl.COLOR_BUFFER_BIT {
		t.Errorf("clear mask = %#x, want COLOR_BUFFER_BIT", ctx.clearMask)
	}
	if ctx.drawMode != gl.POINTS || ctx.drawCount != 1 {
		t.Errorf("draw = mode %#x count %d, want POINTS x1", ctx.drawMode, ctx.drawCount)
	}
	if !ctx.current.Init || glpoint.ProgramHandle(ctx.current.Value) != r.Program() {
		t.Errorf("current program = %+v, want %d", ctx.current, r.Program())
	}
}

func TestCompileFailureMapsStage(t *testing.T) {
	ctx := newFakeContext()
	ctx.failCompile[gl.FRAGMENT_SHADER] = "0:1: error"

	_, err := glpoint.BuildProgram(New(ctx), "void main() {}", "void main() {}")

	var ce *glpoint.ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ShaderCompileError", err)
	}
	if ce.Kind != glpoint.FragmentShader || ce.Log != "0:1: error" {
		t.Errorf("error = %+v, want fragment stage with driver log", ce)
	}
	// fragment shader deleted on failure, then the vertex shader on unwind
	if len(ctx.deleted) != 2 || ctx.deleted[0] != 2 || ctx.deleted[1] != 1 {
		t.Errorf("deleted = %v, want [2 1]", ctx.deleted)
	}
}

func TestLinkFailure(t *testing.T) {
	ctx := newFakeContext()
	ctx.linkLog = "varying mismatch"

	_, err := glpoint.BuildProgram(New(ctx), "void main() {}", "void main() {}")
	if !errors.Is(err, glpoint.ErrProgramLink) {
		t.Fatalf("error = %v, want ErrProgramLink", err)
	}
	var le *glpoint.ProgramLinkError
	if errors.As(err, &le) && le.Log != "varying mismatch" {
		t.Errorf("Log = %q", le.Log)
	}
}

func TestClearBits(t *testing.T) {
	tests := []struct {
		mask glpoint.ClearMask
		want gl.Enum
	}{
		{glpoint.ClearColorBuffer, gl.COLOR_BUFFER_BIT},
		{glpoint.ClearDepthBuffer, gl.DEPTH_BUFFER_BIT},
		{glpoint.ClearColorBuffer | glpoint.ClearStencilBuffer, gl.COLOR_BUFFER_BIT | gl.STENCIL_BUFFER_BIT},
		{0, 0},
	}
	for _, tt := range tests {
		if got := ClearBits(tt.mask); got != tt.want {
			t.Errorf("ClearBits(%d) = %#x, want %#x", tt.mask, got, tt.want)
		}
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		p    glpoint.Primitive
		want gl.Enum
	}{
		{glpoint.PrimitivePoints, gl.POINTS},
		{glpoint.PrimitiveLines, gl.LINES},
		{glpoint.PrimitiveTriangles, gl.TRIANGLES},
	}
	for _, tt := range tests {
		if got := Mode(tt.p); got != tt.want {
			t.Errorf("Mode(%d) = %#x, want %#x", tt.p, got, tt.want)
		}
	}
}

func TestCreateShaderUnknownKind(t *testing.T) {
	d := New(newFakeContext())
	if s := d.CreateShader(gputypes.ShaderStageCompute); s != glpoint.InvalidShader {
		t.Errorf("CreateShader(compute) = %d, want InvalidShader", s)
	}
}
