package glpoint

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/gogpu/gputypes"
)

//go:embed shaders/point.vert.tmpl
var pointVertexTemplate string

//go:embed shaders/point.frag.tmpl
var pointFragmentTemplate string

var shaderTemplates = template.Must(
	template.New("point.vert").Funcs(template.FuncMap{"glsl": glslFloat}).Parse(pointVertexTemplate),
)

func init() {
	template.Must(shaderTemplates.New("point.frag").Parse(pointFragmentTemplate))
}

// Config describes what the renderer draws.
//
// The zero value is not useful; start from DefaultConfig.
type Config struct {
	// ClearColor is written to the color buffer at the start of every frame.
	ClearColor gputypes.Color

	// PointPosition is the clip-space position emitted by the vertex stage.
	PointPosition [4]float32

	// PointSize is the rasterized point size in pixels.
	PointSize float32

	// PointColor is the solid color emitted by the fragment stage.
	PointColor gputypes.Color

	// VertexSource overrides the generated vertex shader when non-empty.
	VertexSource string

	// FragmentSource overrides the generated fragment shader when non-empty.
	FragmentSource string
}

// DefaultConfig returns an opaque cyan background with a 20 pixel red
// point in the top-left corner of clip space.
func DefaultConfig() Config {
	return Config{
		ClearColor:    gputypes.Color{R: 0, G: 1, B: 1, A: 1},
		PointPosition: [4]float32{-1, 1, 0, 1},
		PointSize:     20,
		PointColor:    gputypes.Color{R: 1, G: 0, B: 0, A: 1},
	}
}

// Validate checks value ranges. Shader sources are not inspected here; the
// driver's compiler is the judge of those.
func (c Config) Validate() error {
	if !(c.PointSize > 0) {
		return fmt.Errorf("glpoint: point size must be positive, got %v", c.PointSize)
	}
	if err := validateColor("clear color", c.ClearColor); err != nil {
		return err
	}
	return validateColor("point color", c.PointColor)
}

func validateColor(name string, c gputypes.Color) error {
	for i, v := range []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)} {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("glpoint: %s component %d out of range [0,1]: %v", name, i, v)
		}
	}
	return nil
}

// Sources returns the vertex and fragment GLSL the renderer compiles.
// Explicit sources win; missing ones are generated from the point settings.
func (c Config) Sources() (vertex, fragment string, err error) {
	vertex, fragment = c.VertexSource, c.FragmentSource
	if vertex == "" {
		vertex, err = execTemplate("point.vert", struct {
			X, Y, Z, W, Size float64
		}{
			float64(c.PointPosition[0]), float64(c.PointPosition[1]),
			float64(c.PointPosition[2]), float64(c.PointPosition[3]),
			float64(c.PointSize),
		})
		if err != nil {
			return "", "", err
		}
	}
	if fragment == "" {
		fragment, err = execTemplate("point.frag", struct {
			R, G, B, A float64
		}{
			float64(c.PointColor.R), float64(c.PointColor.G),
			float64(c.PointColor.B), float64(c.PointColor.A),
		})
		if err != nil {
			return "", "", err
		}
	}
	return vertex, fragment, nil
}

func execTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := shaderTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("glpoint: render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// glslFloat formats v as a GLSL ES float literal. GLSL ES 1.00 has no
// implicit int to float conversion, so integral values keep a ".0".
func glslFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
