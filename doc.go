// Package glpoint draws a single fixed-size point on a cleared surface with
// a vertex/fragment GLSL program.
//
// # Overview
//
// glpoint is the smallest useful OpenGL ES renderer: it builds one program
// from two shader stages, activates it, and on every frame clears the color
// buffer and issues one point draw. It is meant as a starting point for
// GL ES hosts and as a reference for the compile/link error contract.
//
// # Quick Start
//
//	r, err := glpoint.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// From the host's rendering thread:
//	if err := r.OnSurfaceCreated(drv); err != nil {
//	    log.Printf("build failed: %v", err)
//	}
//	r.OnSurfaceResized(800, 600)
//	r.OnFrameTick()
//
// # Drivers
//
// All graphics calls go through an explicit Driver value instead of
// ambient context state:
//
//   - driver/gles: OpenGL ES through golang.org/x/mobile/gl (Android, iOS, desktop)
//   - driver/soft: pure Go headless driver rendering into an *image.RGBA
//
// # Hosts
//
// A host owns the surface and calls the SurfaceRenderer callbacks.
// host/mobile runs the golang.org/x/mobile app event loop; cmd/glpoint
// drives the software driver and writes a PNG.
//
// # Errors
//
// BuildProgram, CompileShader and LinkProgram return *ShaderCreationError,
// *ShaderCompileError, *ProgramCreationError or *ProgramLinkError. The
// compile and link errors carry the driver's info log. Each error matches
// its sentinel (ErrShaderCompile and so on) with errors.Is.
//
// # Logging
//
// glpoint is silent by default. Use SetLogger or WithLogger to enable
// structured logging through log/slog.
package glpoint
