// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glsl

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/gogpu/gputypes"
)

// value is a constant expression result: a float or int scalar, or a
// float vector of n components.
type value struct {
	n     int
	isInt bool
	comps [4]float32
}

func (v value) typeName() string {
	switch {
	case v.isInt:
		return "const int"
	case v.n == 1:
		return "const float"
	default:
		return fmt.Sprintf("const vec%d", v.n)
	}
}

// output describes a built-in variable a stage may write.
type output struct {
	n     int
	stage gputypes.ShaderStage
}

var outputs = map[string]output{
	"gl_Position":  {n: 4, stage: gputypes.ShaderStageVertex},
	"gl_PointSize": {n: 1, stage: gputypes.ShaderStageVertex},
	"gl_FragColor": {n: 4, stage: gputypes.ShaderStageFragment},
}

func outputTypeName(n int) string {
	if n == 1 {
		return "float"
	}
	return fmt.Sprintf("vec%d", n)
}

// errAbort unwinds the parser after an unrecoverable syntax error.
type errAbort struct{}

type parser struct {
	s     scanner.Scanner
	tok   rune
	stage gputypes.ShaderStage
	out   *Shader
	errs  ErrorList

	sawMain bool
}

func newParser(stage gputypes.ShaderStage, src string) *parser {
	p := &parser{
		stage: stage,
		out:   &Shader{Stage: stage},
	}
	p.s.Init(strings.NewReader(p.preprocess(src)))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errorf(s.Pos().Line, "%s", msg)
	}
	return p
}

// preprocess blanks directive lines, keeping line numbers intact.
// Only "#version 100" and empty directives are understood.
func (p *parser) preprocess(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, "#") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(t, "#"))
		switch {
		case len(fields) == 0:
		case fields[0] == "version":
			if len(fields) != 2 || fields[1] != "100" {
				p.errorf(i+1, "'%s' : version not supported", strings.Join(fields[1:], " "))
			} else if i != p.firstCodeLine(lines) {
				p.errorf(i+1, "'#version' : must occur before any other statement in the program")
			}
		default:
			p.errorf(i+1, "'#%s' : unsupported preprocessor directive", fields[0])
		}
		lines[i] = ""
	}
	return strings.Join(lines, "\n")
}

// firstCodeLine returns the index of the first line that is not blank or
// a line comment.
func (p *parser) firstCodeLine(lines []string) int {
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if t != "" && !strings.HasPrefix(t, "//") {
			return i
		}
	}
	return 0
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.errs = append(p.errs, Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) line() int { return p.s.Position.Line }

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) text() string { return p.s.TokenText() }

// fail records a syntax error at the current token and aborts parsing.
func (p *parser) fail(format string, args ...any) {
	p.errorf(p.line(), format, args...)
	panic(errAbort{})
}

func (p *parser) syntax() {
	if p.tok == scanner.EOF {
		p.fail("'' : syntax error: unexpected end of file")
	}
	p.fail("'%s' : syntax error", p.text())
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.syntax()
	}
	p.next()
}

func (p *parser) expectIdent(name string) {
	if p.tok != scanner.Ident || p.text() != name {
		p.syntax()
	}
	p.next()
}

func (p *parser) parse() {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errAbort); !ok {
				panic(r)
			}
		}
	}()

	p.next()
	for p.tok != scanner.EOF {
		p.topLevel()
	}
	if !p.sawMain {
		p.errorf(max(p.line(), 1), "'main' : function not defined")
	}
}

func (p *parser) topLevel() {
	if p.tok != scanner.Ident {
		p.syntax()
	}
	switch p.text() {
	case "precision":
		p.precision()
	case "void":
		p.main()
	default:
		p.syntax()
	}
}

func (p *parser) precision() {
	p.next()
	if p.tok != scanner.Ident {
		p.syntax()
	}
	switch p.text() {
	case "lowp", "mediump", "highp":
	default:
		p.syntax()
	}
	p.next()
	if p.tok != scanner.Ident || (p.text() != "float" && p.text() != "int") {
		p.syntax()
	}
	p.next()
	p.expect(';')
}

func (p *parser) main() {
	p.next()
	line := p.line()
	p.expectIdent("main")
	p.expect('(')
	if p.tok == scanner.Ident && p.text() == "void" {
		p.next()
	}
	p.expect(')')
	if p.sawMain {
		p.errorf(line, "'main' : function already has a body")
	}
	p.sawMain = true

	p.expect('{')
	for p.tok != '}' {
		if p.tok == scanner.EOF {
			p.syntax()
		}
		p.statement()
	}
	p.next()
}

func (p *parser) statement() {
	if p.tok == ';' {
		p.next()
		return
	}
	if p.tok != scanner.Ident {
		p.syntax()
	}

	name, line := p.text(), p.line()
	p.next()
	p.expect('=')
	v := p.expr()
	p.expect(';')

	out, ok := outputs[name]
	if !ok || out.stage != p.stage {
		p.errorf(line, "'%s' : undeclared identifier", name)
		return
	}
	if v.isInt || v.n != out.n {
		p.errorf(line, "'assign' : cannot convert from '%s' to '%s'", v.typeName(), outputTypeName(out.n))
		return
	}
	p.assign(name, v)
}

func (p *parser) assign(name string, v value) {
	switch name {
	case "gl_Position":
		p.out.Position = v.comps
		p.out.WritesPosition = true
	case "gl_PointSize":
		p.out.PointSize = v.comps[0]
		p.out.WritesPointSize = true
	case "gl_FragColor":
		p.out.FragColor = v.comps
		p.out.WritesFragColor = true
	}
}

// expr parses a literal, a signed literal or a constructor call.
func (p *parser) expr() value {
	switch p.tok {
	case '-', '+':
		neg := p.tok == '-'
		p.next()
		v := p.expr()
		if neg {
			for i := 0; i < v.n; i++ {
				v.comps[i] = -v.comps[i]
			}
		}
		return v
	case '(':
		p.next()
		v := p.expr()
		p.expect(')')
		return v
	case scanner.Int:
		f, err := strconv.ParseFloat(p.text(), 32)
		if err != nil {
			p.fail("'%s' : invalid integer constant", p.text())
		}
		p.next()
		return value{n: 1, isInt: true, comps: [4]float32{float32(f)}}
	case scanner.Float:
		f, err := strconv.ParseFloat(p.text(), 32)
		if err != nil {
			p.fail("'%s' : invalid float constant", p.text())
		}
		p.next()
		return value{n: 1, comps: [4]float32{float32(f)}}
	case scanner.Ident:
		return p.constructor()
	}
	p.syntax()
	return value{}
}

func (p *parser) constructor() value {
	name, line := p.text(), p.line()
	var n int
	switch name {
	case "float":
		n = 1
	case "vec2":
		n = 2
	case "vec3":
		n = 3
	case "vec4":
		n = 4
	default:
		p.fail("'%s' : undeclared identifier", name)
	}
	p.next()
	p.expect('(')

	var args []value
	if p.tok != ')' {
		args = append(args, p.expr())
		for p.tok == ',' {
			p.next()
			args = append(args, p.expr())
		}
	}
	p.expect(')')

	return p.construct(n, args, line)
}

// construct applies GLSL constructor rules: a single scalar fills every
// component, otherwise arguments are consumed in order and must provide
// enough components without any argument being left entirely unused.
func (p *parser) construct(n int, args []value, line int) value {
	out := value{n: n}
	if len(args) == 0 {
		p.errorf(line, "'constructor' : constructor does not have any arguments")
		return out
	}
	if len(args) == 1 && args[0].n == 1 {
		for i := 0; i < n; i++ {
			out.comps[i] = args[0].comps[0]
		}
		return out
	}

	filled := 0
	for _, a := range args {
		if filled >= n {
			p.errorf(line, "'constructor' : too many arguments")
			return out
		}
		for j := 0; j < a.n && filled < n; j++ {
			out.comps[filled] = a.comps[j]
			filled++
		}
	}
	if filled < n {
		p.errorf(line, "'constructor' : not enough data provided for construction")
	}
	return out
}
