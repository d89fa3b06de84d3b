// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gltest provides a recording glpoint.Driver for tests.
package gltest

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glpoint"
)

// Draw records one DrawArrays call.
type Draw struct {
	Mode    glpoint.Primitive
	First   int
	Count   int
	Program glpoint.ProgramHandle
}

type shader struct {
	kind     glpoint.ShaderKind
	source   string
	compiled bool
}

type program struct {
	attached []glpoint.ShaderHandle
	linked   bool
}

// Driver records every call and lets a test script failures.
// The zero value is ready to use and succeeds at everything.
type Driver struct {
	// NoShader makes CreateShader return InvalidShader for these kinds.
	NoShader map[glpoint.ShaderKind]bool
	// NoProgram makes CreateProgram return InvalidProgram.
	NoProgram bool
	// CompileFail makes compiles of these kinds fail with the mapped log.
	CompileFail map[glpoint.ShaderKind]string
	// LinkFail makes LinkProgram fail with LinkLog.
	LinkFail bool
	LinkLog  string

	// Ops lists method names in call order.
	Ops []string

	ClearColorValue gputypes.Color
	ViewportValue   [4]int
	Current         glpoint.ProgramHandle
	Clears          []glpoint.ClearMask
	Draws           []Draw

	next     uint32
	shaders  map[glpoint.ShaderHandle]*shader
	programs map[glpoint.ProgramHandle]*program
}

var _ glpoint.Driver = (*Driver)(nil)

func (d *Driver) op(name string) { d.Ops = append(d.Ops, name) }

func (d *Driver) id() uint32 {
	d.next++
	return d.next
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Driver) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Driver) LivePrograms() int { return len(d.programs) }

// Called reports whether name appears in Ops.
func (d *Driver) Called(name string) bool {
	return d.Count(name) > 0
}

// Count returns how many times name appears in Ops.
func (d *Driver) Count(name string) int {
	n := 0
	for _, op := range d.Ops {
		if op == name {
			n++
		}
	}
	return n
}

// Source returns the text last submitted for s.
func (d *Driver) Source(s glpoint.ShaderHandle) string {
	if sh, ok := d.shaders[s]; ok {
		return sh.source
	}
	return ""
}

// Attached returns the shaders attached to p, in order.
func (d *Driver) Attached(p glpoint.ProgramHandle) []glpoint.ShaderHandle {
	if pr, ok := d.programs[p]; ok {
		return pr.attached
	}
	return nil
}

func (d *Driver) CreateShader(kind glpoint.ShaderKind) glpoint.ShaderHandle {
	d.op("CreateShader")
	if d.NoShader[kind] {
		return glpoint.InvalidShader
	}
	if d.shaders == nil {
		d.shaders = make(map[glpoint.ShaderHandle]*shader)
	}
	h := glpoint.ShaderHandle(d.id())
	d.shaders[h] = &shader{kind: kind}
	return h
}

func (d *Driver) ShaderSource(s glpoint.ShaderHandle, src string) {
	d.op("ShaderSource")
	if sh, ok := d.shaders[s]; ok {
		sh.source = src
	}
}

func (d *Driver) CompileShader(s glpoint.ShaderHandle) {
	d.op("CompileShader")
	sh, ok := d.shaders[s]
	if !ok {
		return
	}
	_, fail := d.CompileFail[sh.kind]
	sh.compiled = !fail
}

func (d *Driver) ShaderCompiled(s glpoint.ShaderHandle) bool {
	d.op("ShaderCompiled")
	sh, ok := d.shaders[s]
	return ok && sh.compiled
}

func (d *Driver) ShaderInfoLog(s glpoint.ShaderHandle) string {
	d.op("ShaderInfoLog")
	if sh, ok := d.shaders[s]; ok && !sh.compiled {
		return d.CompileFail[sh.kind]
	}
	return ""
}

func (d *Driver) DeleteShader(s glpoint.ShaderHandle) {
	d.op("DeleteShader")
	delete(d.shaders, s)
}

func (d *Driver) CreateProgram() glpoint.ProgramHandle {
	d.op("CreateProgram")
	if d.NoProgram {
		return glpoint.InvalidProgram
	}
	if d.programs == nil {
		d.programs = make(map[glpoint.ProgramHandle]*program)
	}
	h := glpoint.ProgramHandle(d.id())
	d.programs[h] = &program{}
	return h
}

func (d *Driver) AttachShader(p glpoint.ProgramHandle, s glpoint.ShaderHandle) {
	d.op("AttachShader")
	if pr, ok := d.programs[p]; ok {
		pr.attached = append(pr.attached, s)
	}
}

func (d *Driver) LinkProgram(p glpoint.ProgramHandle) {
	d.op("LinkProgram")
	if pr, ok := d.programs[p]; ok {
		pr.linked = !d.LinkFail
	}
}

func (d *Driver) ProgramLinked(p glpoint.ProgramHandle) bool {
	d.op("ProgramLinked")
	pr, ok := d.programs[p]
	return ok && pr.linked
}

func (d *Driver) ProgramInfoLog(p glpoint.ProgramHandle) string {
	d.op("ProgramInfoLog")
	if pr, ok := d.programs[p]; ok && !pr.linked {
		return d.LinkLog
	}
	return ""
}

func (d *Driver) DeleteProgram(p glpoint.ProgramHandle) {
	d.op("DeleteProgram")
	delete(d.programs, p)
}

func (d *Driver) UseProgram(p glpoint.ProgramHandle) {
	d.op("UseProgram")
	d.Current = p
}

func (d *Driver) ClearColor(c gputypes.Color) {
	d.op("ClearColor")
	d.ClearColorValue = c
}

func (d *Driver) Viewport(x, y, width, height int) {
	d.op("Viewport")
	d.ViewportValue = [4]int{x, y, width, height}
}

func (d *Driver) Clear(mask glpoint.ClearMask) {
	d.op("Clear")
	d.Clears = append(d.Clears, mask)
}

func (d *Driver) DrawArrays(mode glpoint.Primitive, first, count int) {
	d.op("DrawArrays")
	d.Draws = append(d.Draws, Draw{Mode: mode, First: first, Count: count, Program: d.Current})
}
