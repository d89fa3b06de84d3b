// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft implements glpoint.Driver in pure Go.
//
// The driver renders into an *image.RGBA and needs no GPU, window or cgo.
// Shaders are compiled by internal/glsl, which accepts the constant-output
// GLSL ES subset point shaders are written in; anything else fails to
// compile with a driver-style info log. Object lifetimes follow GL ES
// rules: a shader deleted while attached lives until its program goes away.
//
// Example:
//
//	d := soft.New(800, 600)
//	r, _ := glpoint.NewRenderer()
//	if err := r.OnSurfaceCreated(d); err != nil {
//	    log.Fatal(err)
//	}
//	r.OnSurfaceResized(800, 600)
//	r.OnFrameTick()
//	img := d.Image()
package soft

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/glpoint"
	"github.com/gogpu/glpoint/internal/glsl"
)

// Point size range supported by the rasterizer, like GL_ALIASED_POINT_SIZE_RANGE.
const (
	MinPointSize = 1
	MaxPointSize = 1024
)

type shaderObject struct {
	kind     glpoint.ShaderKind
	source   string
	compiled *glsl.Shader
	infoLog  string
	attached int
	deleted  bool
}

type programObject struct {
	shaders  []glpoint.ShaderHandle
	linked   bool
	infoLog  string
	vertex   glsl.Shader
	fragment glsl.Shader
	deleted  bool
}

// Stats counts work submitted to the driver.
type Stats struct {
	Clears    int
	DrawCalls int
	Vertices  int
	Points    int
}

// Driver is a software glpoint.Driver. Like a GL context it is bound to
// one goroutine.
type Driver struct {
	fb         *image.RGBA
	clearColor color.RGBA
	viewport   image.Rectangle
	current    glpoint.ProgramHandle

	shaders  map[glpoint.ShaderHandle]*shaderObject
	programs map[glpoint.ProgramHandle]*programObject
	next     uint32

	// MaxObjects limits the number of live shader and program objects.
	// Zero means unlimited.
	MaxObjects int

	lost  bool
	stats Stats
}

var _ glpoint.Driver = (*Driver)(nil)

// New creates a driver with a width x height framebuffer. The viewport
// starts out covering the whole framebuffer, as with a fresh GL context.
func New(width, height int) *Driver {
	d := &Driver{
		shaders:  make(map[glpoint.ShaderHandle]*shaderObject),
		programs: make(map[glpoint.ProgramHandle]*programObject),
	}
	d.Resize(width, height)
	d.viewport = d.fb.Bounds()
	return d
}

// Resize replaces the framebuffer. Its contents are undefined until the
// next Clear; the viewport is left alone, as GL does.
func (d *Driver) Resize(width, height int) {
	d.fb = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Lose simulates context loss: every object is gone and nothing can be
// created afterwards.
func (d *Driver) Lose() {
	d.lost = true
	clear(d.shaders)
	clear(d.programs)
	d.current = glpoint.InvalidProgram
}

// Lost reports whether Lose was called.
func (d *Driver) Lost() bool { return d.lost }

// Image returns a copy of the framebuffer.
func (d *Driver) Image() *image.RGBA {
	img := image.NewRGBA(d.fb.Bounds())
	copy(img.Pix, d.fb.Pix)
	return img
}

// Stats returns the work counters.
func (d *Driver) Stats() Stats { return d.stats }

// ViewportRect returns the viewport in GL window coordinates (origin at
// the bottom-left).
func (d *Driver) ViewportRect() image.Rectangle { return d.viewport }

// CurrentProgram returns the program selected by UseProgram.
func (d *Driver) CurrentProgram() glpoint.ProgramHandle { return d.current }

// LiveObjects returns the number of shader and program objects still
// allocated.
func (d *Driver) LiveObjects() (shaders, programs int) {
	return len(d.shaders), len(d.programs)
}

func (d *Driver) invalid(op string, args ...any) {
	glpoint.Logger().Debug("soft: invalid operation", append([]any{"op", op}, args...)...)
}

func (d *Driver) canAllocate() bool {
	if d.lost {
		return false
	}
	return d.MaxObjects == 0 || len(d.shaders)+len(d.programs) < d.MaxObjects
}

func (d *Driver) id() uint32 {
	d.next++
	return d.next
}

// CreateShader implements glpoint.Driver.
func (d *Driver) CreateShader(kind glpoint.ShaderKind) glpoint.ShaderHandle {
	if kind != glpoint.VertexShader && kind != glpoint.FragmentShader {
		d.invalid("CreateShader", "kind", uint32(kind))
		return glpoint.InvalidShader
	}
	if !d.canAllocate() {
		return glpoint.InvalidShader
	}
	h := glpoint.ShaderHandle(d.id())
	d.shaders[h] = &shaderObject{kind: kind}
	return h
}

// ShaderSource implements glpoint.Driver.
func (d *Driver) ShaderSource(s glpoint.ShaderHandle, src string) {
	sh, ok := d.shaders[s]
	if !ok {
		d.invalid("ShaderSource", "shader", uint32(s))
		return
	}
	sh.source = src
}

// CompileShader implements glpoint.Driver.
func (d *Driver) CompileShader(s glpoint.ShaderHandle) {
	sh, ok := d.shaders[s]
	if !ok {
		d.invalid("CompileShader", "shader", uint32(s))
		return
	}
	compiled, err := glsl.Compile(sh.kind, sh.source)
	if err != nil {
		sh.compiled = nil
		sh.infoLog = err.Error()
		return
	}
	sh.compiled = compiled
	sh.infoLog = ""
}

// ShaderCompiled implements glpoint.Driver.
func (d *Driver) ShaderCompiled(s glpoint.ShaderHandle) bool {
	sh, ok := d.shaders[s]
	return ok && sh.compiled != nil
}

// ShaderInfoLog implements glpoint.Driver.
func (d *Driver) ShaderInfoLog(s glpoint.ShaderHandle) string {
	if sh, ok := d.shaders[s]; ok {
		return sh.infoLog
	}
	return ""
}

// DeleteShader implements glpoint.Driver. A shader attached to a program
// is only flagged; it is released with its last program.
func (d *Driver) DeleteShader(s glpoint.ShaderHandle) {
	if s == glpoint.InvalidShader {
		return
	}
	sh, ok := d.shaders[s]
	if !ok {
		d.invalid("DeleteShader", "shader", uint32(s))
		return
	}
	sh.deleted = true
	if sh.attached == 0 {
		delete(d.shaders, s)
	}
}

// CreateProgram implements glpoint.Driver.
func (d *Driver) CreateProgram() glpoint.ProgramHandle {
	if !d.canAllocate() {
		return glpoint.InvalidProgram
	}
	h := glpoint.ProgramHandle(d.id())
	d.programs[h] = &programObject{}
	return h
}

// AttachShader implements glpoint.Driver.
func (d *Driver) AttachShader(p glpoint.ProgramHandle, s glpoint.ShaderHandle) {
	pr, ok := d.programs[p]
	sh, sok := d.shaders[s]
	if !ok || !sok {
		d.invalid("AttachShader", "program", uint32(p), "shader", uint32(s))
		return
	}
	for _, a := range pr.shaders {
		if a == s {
			d.invalid("AttachShader", "program", uint32(p), "shader", uint32(s))
			return
		}
	}
	pr.shaders = append(pr.shaders, s)
	sh.attached++
}

// LinkProgram implements glpoint.Driver. A program links when exactly one
// compiled vertex shader and one compiled fragment shader are attached.
func (d *Driver) LinkProgram(p glpoint.ProgramHandle) {
	pr, ok := d.programs[p]
	if !ok {
		d.invalid("LinkProgram", "program", uint32(p))
		return
	}

	pr.linked = false
	var vs, fs *glsl.Shader
	for _, s := range pr.shaders {
		sh := d.shaders[s]
		if sh.compiled == nil {
			pr.infoLog = fmt.Sprintf("error: shader %d is not compiled", uint32(s))
			return
		}
		switch sh.kind {
		case glpoint.VertexShader:
			if vs != nil {
				pr.infoLog = "error: more than one vertex shader attached"
				return
			}
			vs = sh.compiled
		case glpoint.FragmentShader:
			if fs != nil {
				pr.infoLog = "error: more than one fragment shader attached"
				return
			}
			fs = sh.compiled
		}
	}
	switch {
	case vs == nil:
		pr.infoLog = "error: no vertex shader attached"
	case fs == nil:
		pr.infoLog = "error: no fragment shader attached"
	default:
		pr.vertex, pr.fragment = *vs, *fs
		pr.linked = true
		pr.infoLog = ""
	}
}

// ProgramLinked implements glpoint.Driver.
func (d *Driver) ProgramLinked(p glpoint.ProgramHandle) bool {
	pr, ok := d.programs[p]
	return ok && pr.linked
}

// ProgramInfoLog implements glpoint.Driver.
func (d *Driver) ProgramInfoLog(p glpoint.ProgramHandle) string {
	if pr, ok := d.programs[p]; ok {
		return pr.infoLog
	}
	return ""
}

// DeleteProgram implements glpoint.Driver. The current program stays
// usable until another one is selected.
func (d *Driver) DeleteProgram(p glpoint.ProgramHandle) {
	if p == glpoint.InvalidProgram {
		return
	}
	pr, ok := d.programs[p]
	if !ok {
		d.invalid("DeleteProgram", "program", uint32(p))
		return
	}
	pr.deleted = true
	if p != d.current {
		d.release(p)
	}
}

// release frees p and any flagged shaders it was keeping alive.
func (d *Driver) release(p glpoint.ProgramHandle) {
	pr := d.programs[p]
	for _, s := range pr.shaders {
		sh := d.shaders[s]
		sh.attached--
		if sh.deleted && sh.attached == 0 {
			delete(d.shaders, s)
		}
	}
	delete(d.programs, p)
}

// UseProgram implements glpoint.Driver. Unlinked programs are rejected.
func (d *Driver) UseProgram(p glpoint.ProgramHandle) {
	if p != glpoint.InvalidProgram {
		pr, ok := d.programs[p]
		if !ok || !pr.linked {
			d.invalid("UseProgram", "program", uint32(p))
			return
		}
	}
	prev := d.current
	d.current = p
	if prev != glpoint.InvalidProgram && prev != p {
		if pr, ok := d.programs[prev]; ok && pr.deleted {
			d.release(prev)
		}
	}
}

// ClearColor implements glpoint.Driver.
func (d *Driver) ClearColor(c gputypes.Color) {
	d.clearColor = toRGBA([4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)})
}

// Viewport implements glpoint.Driver.
func (d *Driver) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		d.invalid("Viewport", "width", width, "height", height)
		return
	}
	d.viewport = image.Rect(x, y, x+width, y+height)
}

// Clear implements glpoint.Driver. Depth and stencil bits are accepted and
// ignored: the framebuffer has neither attachment.
func (d *Driver) Clear(mask glpoint.ClearMask) {
	if d.lost {
		return
	}
	d.stats.Clears++
	if mask&glpoint.ClearColorBuffer != 0 {
		draw.Draw(d.fb, d.fb.Bounds(), &image.Uniform{C: d.clearColor}, image.Point{}, draw.Src)
	}
}

// DrawArrays implements glpoint.Driver. Only point primitives are
// rasterized.
func (d *Driver) DrawArrays(mode glpoint.Primitive, first, count int) {
	if d.lost {
		return
	}
	if first < 0 || count < 0 {
		d.invalid("DrawArrays", "first", first, "count", count)
		return
	}
	pr, ok := d.programs[d.current]
	if !ok || !pr.linked {
		d.invalid("DrawArrays", "program", uint32(d.current))
		return
	}

	d.stats.DrawCalls++
	d.stats.Vertices += count
	if mode != glpoint.PrimitivePoints {
		d.invalid("DrawArrays", "mode", int(mode))
		return
	}

	// Vertex outputs are constant, so every vertex lands on the same square.
	for i := 0; i < count; i++ {
		if d.drawPoint(&pr.vertex, &pr.fragment) {
			d.stats.Points++
		}
	}
}

// drawPoint rasterizes one point and reports whether it survived clipping.
func (d *Driver) drawPoint(vs, fs *glsl.Shader) bool {
	pos := vs.Position
	w := pos[3]
	if !(w > 0) {
		return false
	}
	for i := 0; i < 3; i++ {
		if pos[i] < -w || pos[i] > w {
			return false
		}
	}

	vp := d.viewport
	xw := float64(vp.Min.X) + (float64(pos[0]/w)+1)*float64(vp.Dx())/2
	yw := float64(vp.Min.Y) + (float64(pos[1]/w)+1)*float64(vp.Dy())/2

	size := math.Min(math.Max(float64(vs.PointSize), MinPointSize), MaxPointSize)
	x0 := int(math.Ceil(xw - size/2 - 0.5))
	x1 := int(math.Ceil(xw + size/2 - 0.5))
	y0 := int(math.Ceil(yw - size/2 - 0.5))
	y1 := int(math.Ceil(yw + size/2 - 0.5))

	// GL window rows grow upwards; image rows grow downwards.
	h := d.fb.Bounds().Dy()
	r := image.Rect(x0, h-y1, x1, h-y0).Intersect(d.fb.Bounds())
	if !r.Empty() {
		c := fs.FragColor
		col := toRGBA([4]float64{float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])})
		draw.Draw(d.fb, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
	}
	return true
}

// toRGBA converts normalized components to 8-bit premultiplied color,
// clamping to [0,1] as the fixed-point color buffer does.
func toRGBA(c [4]float64) color.RGBA {
	var out [4]uint8
	for i, v := range c {
		v = math.Min(math.Max(v, 0), 1)
		out[i] = uint8(math.Round(v * 255))
	}
	a := uint16(out[3])
	return color.RGBA{
		R: uint8(uint16(out[0]) * a / 255),
		G: uint8(uint16(out[1]) * a / 255),
		B: uint8(uint16(out[2]) * a / 255),
		A: out[3],
	}
}
