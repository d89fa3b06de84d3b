// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gles implements glpoint.Driver on top of an OpenGL ES 2.0
// context from golang.org/x/mobile/gl.
//
// The host owns the gl.Context (on Android it arrives with the
// lifecycle.Event that makes the app visible). A Driver is only valid on
// the goroutine and for the lifetime of that context.
package gles

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/glpoint"
)

// Driver forwards glpoint driver calls to a gl.Context.
type Driver struct {
	ctx gl.Context
}

var _ glpoint.Driver = (*Driver)(nil)

// New wraps ctx. It panics if ctx is nil.
func New(ctx gl.Context) *Driver {
	if ctx == nil {
		panic("gles: nil gl.Context")
	}
	return &Driver{ctx: ctx}
}

// Context returns the wrapped context.
func (d *Driver) Context() gl.Context { return d.ctx }

func shaderType(kind glpoint.ShaderKind) gl.Enum {
	switch kind {
	case glpoint.VertexShader:
		return gl.VERTEX_SHADER
	case glpoint.FragmentShader:
		return gl.FRAGMENT_SHADER
	}
	return 0
}

func shader(s glpoint.ShaderHandle) gl.Shader { return gl.Shader{Value: uint32(s)} }

func program(p glpoint.ProgramHandle) gl.Program {
	return gl.Program{Init: p != glpoint.InvalidProgram, Value: uint32(p)}
}

func (d *Driver) CreateShader(kind glpoint.ShaderKind) glpoint.ShaderHandle {
	ty := shaderType(kind)
	if ty == 0 {
		return glpoint.InvalidShader
	}
	return glpoint.ShaderHandle(d.ctx.CreateShader(ty).Value)
}

func (d *Driver) ShaderSource(s glpoint.ShaderHandle, src string) {
	d.ctx.ShaderSource(shader(s), src)
}

func (d *Driver) CompileShader(s glpoint.ShaderHandle) {
	d.ctx.CompileShader(shader(s))
}

func (d *Driver) ShaderCompiled(s glpoint.ShaderHandle) bool {
	return d.ctx.GetShaderi(shader(s), gl.COMPILE_STATUS) == gl.TRUE
}

func (d *Driver) ShaderInfoLog(s glpoint.ShaderHandle) string {
	return d.ctx.GetShaderInfoLog(shader(s))
}

func (d *Driver) DeleteShader(s glpoint.ShaderHandle) {
	d.ctx.DeleteShader(shader(s))
}

func (d *Driver) CreateProgram() glpoint.ProgramHandle {
	p := d.ctx.CreateProgram()
	if !p.Init {
		return glpoint.InvalidProgram
	}
	return glpoint.ProgramHandle(p.Value)
}

func (d *Driver) AttachShader(p glpoint.ProgramHandle, s glpoint.ShaderHandle) {
	d.ctx.AttachShader(program(p), shader(s))
}

func (d *Driver) LinkProgram(p glpoint.ProgramHandle) {
	d.ctx.LinkProgram(program(p))
}

func (d *Driver) ProgramLinked(p glpoint.ProgramHandle) bool {
	return d.ctx.GetProgrami(program(p), gl.LINK_STATUS) == gl.TRUE
}

func (d *Driver) ProgramInfoLog(p glpoint.ProgramHandle) string {
	return d.ctx.GetProgramInfoLog(program(p))
}

func (d *Driver) DeleteProgram(p glpoint.ProgramHandle) {
	d.ctx.DeleteProgram(program(p))
}

func (d *Driver) UseProgram(p glpoint.ProgramHandle) {
	d.ctx.UseProgram(program(p))
}

func (d *Driver) ClearColor(c gputypes.Color) {
	d.ctx.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

func (d *Driver) Viewport(x, y, width, height int) {
	d.ctx.Viewport(x, y, width, height)
}

// ClearBits converts a glpoint clear mask to GL buffer bits.
func ClearBits(mask glpoint.ClearMask) gl.Enum {
	var bits gl.Enum
	if mask&glpoint.ClearColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&glpoint.ClearDepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&glpoint.ClearStencilBuffer != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

func (d *Driver) Clear(mask glpoint.ClearMask) {
	d.ctx.Clear(ClearBits(mask))
}

// Mode converts a glpoint primitive to the GL draw mode.
func Mode(p glpoint.Primitive) gl.Enum {
	switch p {
	case glpoint.PrimitiveLines:
		return gl.LINES
	case glpoint.PrimitiveTriangles:
		return gl.TRIANGLES
	default:
		return gl.POINTS
	}
}

func (d *Driver) DrawArrays(mode glpoint.Primitive, first, count int) {
	d.ctx.DrawArrays(Mode(mode), first, count)
}
