package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glpoint"
)

// fileConfig is the TOML layout of a scene file:
//
//	clear_color     = [0.0, 1.0, 1.0, 1.0]
//	point_position  = [-1.0, 1.0, 0.0, 1.0]
//	point_size      = 20.0
//	point_color     = [1.0, 0.0, 0.0, 1.0]
//	vertex_shader   = "shaders/point.vert"   # optional, relative to the file
//	fragment_shader = "shaders/point.frag"   # optional
type fileConfig struct {
	ClearColor     []float64 `toml:"clear_color"`
	PointPosition  []float64 `toml:"point_position"`
	PointSize      *float64  `toml:"point_size"`
	PointColor     []float64 `toml:"point_color"`
	VertexShader   string    `toml:"vertex_shader"`
	FragmentShader string    `toml:"fragment_shader"`
}

// loadConfig reads path on top of glpoint.DefaultConfig. Keys missing from
// the file keep their default.
func loadConfig(path string) (glpoint.Config, error) {
	cfg := glpoint.DefaultConfig()

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if fc.ClearColor != nil {
		if cfg.ClearColor, err = color4("clear_color", fc.ClearColor); err != nil {
			return cfg, err
		}
	}
	if fc.PointColor != nil {
		if cfg.PointColor, err = color4("point_color", fc.PointColor); err != nil {
			return cfg, err
		}
	}
	if fc.PointPosition != nil {
		if len(fc.PointPosition) != 4 {
			return cfg, fmt.Errorf("point_position: want 4 components, got %d", len(fc.PointPosition))
		}
		for i, v := range fc.PointPosition {
			cfg.PointPosition[i] = float32(v)
		}
	}
	if fc.PointSize != nil {
		cfg.PointSize = float32(*fc.PointSize)
	}

	dir := filepath.Dir(path)
	if cfg.VertexSource, err = readShader(dir, fc.VertexShader); err != nil {
		return cfg, err
	}
	if cfg.FragmentSource, err = readShader(dir, fc.FragmentShader); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func color4(key string, v []float64) (gputypes.Color, error) {
	if len(v) != 4 {
		return gputypes.Color{}, fmt.Errorf("%s: want 4 components, got %d", key, len(v))
	}
	return gputypes.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func readShader(dir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("load shader: %w", err)
	}
	return string(b), nil
}
