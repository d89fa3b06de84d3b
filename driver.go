package glpoint

import "github.com/gogpu/gputypes"

// ShaderKind identifies a programmable stage. Only VertexShader and
// FragmentShader are meaningful to a GL ES 2.0 driver.
type ShaderKind = gputypes.ShaderStage

// Shader stages accepted by CompileShader.
const (
	VertexShader   ShaderKind = gputypes.ShaderStageVertex
	FragmentShader ShaderKind = gputypes.ShaderStageFragment
)

// kindName returns the lowercase stage name used in errors and logs.
func kindName(k ShaderKind) string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// ShaderHandle is a driver-issued shader object name.
type ShaderHandle uint32

// InvalidShader is returned by a driver that could not allocate a shader.
const InvalidShader ShaderHandle = 0

// ProgramHandle is a driver-issued program object name.
// It is a distinct type from ShaderHandle so the two cannot be mixed up.
type ProgramHandle uint32

// InvalidProgram is returned by a driver that could not allocate a program,
// and is the renderer's program before a successful build.
const InvalidProgram ProgramHandle = 0

// ClearMask selects the buffers cleared by Driver.Clear.
type ClearMask uint8

const (
	// ClearColorBuffer clears the color attachment.
	ClearColorBuffer ClearMask = 1 << iota
	// ClearDepthBuffer clears the depth attachment.
	ClearDepthBuffer
	// ClearStencilBuffer clears the stencil attachment.
	ClearStencilBuffer
)

// Primitive is the assembly mode of a draw call.
type Primitive uint8

const (
	// PrimitivePoints rasterizes every vertex as a screen-aligned square.
	PrimitivePoints Primitive = iota
	// PrimitiveLines draws independent line segments.
	PrimitiveLines
	// PrimitiveTriangles draws independent triangles.
	PrimitiveTriangles
)

// Driver is an explicit handle to one graphics context.
//
// Every call goes to the context the Driver was created for, so ownership
// of shader and program objects is visible at each call site instead of
// living in hidden driver globals. A Driver is bound to the host's
// rendering thread and must not be used from any other goroutine. When the
// host loses the surface, the Driver and every handle it returned become
// invalid together.
//
// The method set is the OpenGL ES 2.0 subset needed to build a program and
// draw with it. Creation methods report failure by returning the invalid
// handle, as GL does.
type Driver interface {
	// CreateShader allocates a shader object of the given kind.
	CreateShader(kind ShaderKind) ShaderHandle
	// ShaderSource replaces the source text of s.
	ShaderSource(s ShaderHandle, src string)
	// CompileShader compiles the source previously attached to s.
	CompileShader(s ShaderHandle)
	// ShaderCompiled reports the compile status of s.
	ShaderCompiled(s ShaderHandle) bool
	// ShaderInfoLog returns the compiler diagnostics for s.
	ShaderInfoLog(s ShaderHandle) string
	// DeleteShader releases s.
	DeleteShader(s ShaderHandle)

	// CreateProgram allocates a program object.
	CreateProgram() ProgramHandle
	// AttachShader attaches s to p.
	AttachShader(p ProgramHandle, s ShaderHandle)
	// LinkProgram links the shaders attached to p.
	LinkProgram(p ProgramHandle)
	// ProgramLinked reports the link status of p.
	ProgramLinked(p ProgramHandle) bool
	// ProgramInfoLog returns the linker diagnostics for p.
	ProgramInfoLog(p ProgramHandle) string
	// DeleteProgram releases p.
	DeleteProgram(p ProgramHandle)
	// UseProgram makes p the program used by subsequent draws.
	UseProgram(p ProgramHandle)

	// ClearColor sets the value Clear writes to the color buffer.
	ClearColor(c gputypes.Color)
	// Viewport maps normalized device coordinates to the given window rectangle.
	Viewport(x, y, width, height int)
	// Clear clears the selected buffers.
	Clear(mask ClearMask)
	// DrawArrays draws count vertices starting at first with the current program.
	DrawArrays(mode Primitive, first, count int)
}
