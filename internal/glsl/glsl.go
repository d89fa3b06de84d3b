// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glsl compiles the constant-output subset of GLSL ES 1.00 used by
// point shaders.
//
// A shader in the subset is a single void main() whose statements assign
// literal values to the stage's built-in outputs:
//
//	gl_Position  vec4   vertex
//	gl_PointSize float  vertex
//	gl_FragColor vec4   fragment
//
// Values are float literals or vec2/vec3/vec4/float constructors of them.
// #version 100, precision statements and comments are accepted. Anything
// else is reported the way GL drivers do in their info log, one
// "ERROR: 0:<line>: <message>" entry per problem.
package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Shader is the result of a successful compile: the constant values the
// stage writes to its built-in outputs.
type Shader struct {
	Stage gputypes.ShaderStage

	Position       [4]float32
	WritesPosition bool

	PointSize       float32
	WritesPointSize bool

	FragColor       [4]float32
	WritesFragColor bool
}

// Error is one compiler diagnostic.
type Error struct {
	Line int
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("ERROR: 0:%d: %s", e.Line, e.Msg)
}

// ErrorList is the set of diagnostics from one compile.
type ErrorList []Error

// Error formats the list as a driver info log, one entry per line.
func (l ErrorList) Error() string {
	var b strings.Builder
	for _, e := range l {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "ERROR: %d compilation errors.  No code generated.", len(l))
	return b.String()
}

// Compile compiles src for stage. On failure the returned error is an
// ErrorList.
func Compile(stage gputypes.ShaderStage, src string) (*Shader, error) {
	if stage != gputypes.ShaderStageVertex && stage != gputypes.ShaderStageFragment {
		return nil, ErrorList{{Line: 0, Msg: "unsupported shader stage"}}
	}

	p := newParser(stage, src)
	p.parse()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if stage == gputypes.ShaderStageVertex && !p.out.WritesPointSize {
		p.out.PointSize = 1
	}
	return p.out, nil
}
