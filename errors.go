package glpoint

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed build errors through errors.Is.
var (
	// ErrShaderCreation is reported when the driver cannot allocate a shader object.
	ErrShaderCreation = errors.New("glpoint: shader creation failed")

	// ErrShaderCompile is reported when a shader fails to compile.
	ErrShaderCompile = errors.New("glpoint: shader compilation failed")

	// ErrProgramCreation is reported when the driver cannot allocate a program object.
	ErrProgramCreation = errors.New("glpoint: program creation failed")

	// ErrProgramLink is reported when a program fails to link.
	ErrProgramLink = errors.New("glpoint: program link failed")
)

// StageError is implemented by every build error. Stage names the step that
// failed: "vertex", "fragment" or "link".
type StageError interface {
	error
	Stage() string
}

// ShaderCreationError indicates the driver returned no shader object,
// typically because no context is current or resources are exhausted.
type ShaderCreationError struct {
	Kind ShaderKind
}

func (e *ShaderCreationError) Error() string {
	return fmt.Sprintf("glpoint: unable to create %s shader", kindName(e.Kind))
}

// Stage returns the shader stage that could not be allocated.
func (e *ShaderCreationError) Stage() string { return kindName(e.Kind) }

// Is reports whether target is ErrShaderCreation.
func (e *ShaderCreationError) Is(target error) bool { return target == ErrShaderCreation }

// ShaderCompileError carries the driver's compile diagnostics. Log may be
// empty when the driver provides none.
type ShaderCompileError struct {
	Kind ShaderKind
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("glpoint: failed to compile %s shader: %s", kindName(e.Kind), e.Log)
}

// Stage returns the shader stage that failed to compile.
func (e *ShaderCompileError) Stage() string { return kindName(e.Kind) }

// Is reports whether target is ErrShaderCompile.
func (e *ShaderCompileError) Is(target error) bool { return target == ErrShaderCompile }

// ProgramCreationError indicates the driver returned no program object.
type ProgramCreationError struct{}

func (e *ProgramCreationError) Error() string {
	return "glpoint: failed to create program"
}

// Stage returns "link".
func (e *ProgramCreationError) Stage() string { return "link" }

// Is reports whether target is ErrProgramCreation.
func (e *ProgramCreationError) Is(target error) bool { return target == ErrProgramCreation }

// ProgramLinkError carries the driver's link diagnostics.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "glpoint: failed to link program: " + e.Log
}

// Stage returns "link".
func (e *ProgramLinkError) Stage() string { return "link" }

// Is reports whether target is ErrProgramLink.
func (e *ProgramLinkError) Is(target error) bool { return target == ErrProgramLink }
