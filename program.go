package glpoint

import "log/slog"

// ShaderSource is GLSL text tagged with the stage it is written for.
type ShaderSource struct {
	Kind ShaderKind
	Text string
}

// CompileShader creates a shader object of src.Kind on d, submits src.Text
// and compiles it.
//
// On failure no shader object is left allocated: a shader that fails to
// compile is deleted before the *ShaderCompileError is returned.
func CompileShader(d Driver, src ShaderSource) (ShaderHandle, error) {
	return compileShader(d, src, Logger())
}

func compileShader(d Driver, src ShaderSource, log *slog.Logger) (ShaderHandle, error) {
	stage := kindName(src.Kind)
	if src.Text == "" {
		return InvalidShader, &ShaderCompileError{Kind: src.Kind, Log: "empty shader source"}
	}

	s := d.CreateShader(src.Kind)
	if s == InvalidShader {
		return InvalidShader, &ShaderCreationError{Kind: src.Kind}
	}

	d.ShaderSource(s, src.Text)
	d.CompileShader(s)

	if !d.ShaderCompiled(s) {
		info := d.ShaderInfoLog(s)
		d.DeleteShader(s)
		log.Debug("shader compile failed", "stage", stage, "shader", uint32(s))
		return InvalidShader, &ShaderCompileError{Kind: src.Kind, Log: info}
	}

	log.Debug("shader compiled", "stage", stage, "shader", uint32(s))
	return s, nil
}

// LinkProgram creates a program on d, attaches vs and fs and links it.
// Ownership of the returned program passes to the caller. A program that
// fails to link is deleted before the *ProgramLinkError is returned.
//
// The shaders are not released; that stays with the caller.
func LinkProgram(d Driver, vs, fs ShaderHandle) (ProgramHandle, error) {
	return linkProgram(d, vs, fs, Logger())
}

func linkProgram(d Driver, vs, fs ShaderHandle, log *slog.Logger) (ProgramHandle, error) {
	p := d.CreateProgram()
	if p == InvalidProgram {
		return InvalidProgram, &ProgramCreationError{}
	}

	d.AttachShader(p, vs)
	d.AttachShader(p, fs)
	d.LinkProgram(p)

	if !d.ProgramLinked(p) {
		info := d.ProgramInfoLog(p)
		d.DeleteProgram(p)
		log.Debug("program link failed", "program", uint32(p))
		return InvalidProgram, &ProgramLinkError{Log: info}
	}

	log.Debug("program linked", "program", uint32(p))
	return p, nil
}

// BuildProgram compiles vertex and fragment sources and links them into a
// program.
//
// The first failing step aborts the build and its error is returned
// unchanged; linking is not attempted when either compile fails. Every
// object allocated by a failed build is released. After a successful link
// the shader objects are deleted; the driver keeps them alive for as long
// as the program references them.
func BuildProgram(d Driver, vertex, fragment string) (ProgramHandle, error) {
	return buildProgram(d, vertex, fragment, Logger())
}

func buildProgram(d Driver, vertex, fragment string, log *slog.Logger) (ProgramHandle, error) {
	vs, err := compileShader(d, ShaderSource{Kind: VertexShader, Text: vertex}, log)
	if err != nil {
		return InvalidProgram, err
	}
	defer d.DeleteShader(vs)

	fs, err := compileShader(d, ShaderSource{Kind: FragmentShader, Text: fragment}, log)
	if err != nil {
		return InvalidProgram, err
	}
	defer d.DeleteShader(fs)

	return linkProgram(d, vs, fs, log)
}
