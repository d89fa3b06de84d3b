// Command glpoint renders the point scene headlessly with the software
// driver and writes the final frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/glpoint"
	"github.com/gogpu/glpoint/driver/soft"
)

func main() {
	var (
		width   = flag.Int("width", 800, "surface width")
		height  = flag.Int("height", 600, "surface height")
		frames  = flag.Int("frames", 1, "frames to draw")
		output  = flag.String("output", "point.png", "output file")
		config  = flag.String("config", "", "TOML scene file")
		verbose = flag.Bool("v", false, "log renderer activity")
	)
	flag.Parse()

	if *verbose {
		glpoint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := glpoint.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = loadConfig(*config); err != nil {
			log.Fatalf("glpoint: %v", err)
		}
	}

	d, err := render(cfg, *width, *height, *frames)
	if err != nil {
		log.Fatalf("glpoint: %v", err)
	}
	if err := writePNG(*output, d); err != nil {
		log.Fatalf("glpoint: %v", err)
	}

	log.Printf("Frame saved to %s (%dx%d)\n", *output, *width, *height)
}

// render plays one surface lifetime on a software driver: create, resize,
// then the requested number of frame ticks.
func render(cfg glpoint.Config, width, height, frames int) (*soft.Driver, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	r, err := glpoint.NewRenderer(glpoint.WithConfig(cfg))
	if err != nil {
		return nil, err
	}

	d := soft.New(width, height)
	if err := r.OnSurfaceCreated(d); err != nil {
		return nil, err
	}
	r.OnSurfaceResized(width, height)
	for i := 0; i < frames; i++ {
		r.OnFrameTick()
	}
	return d, nil
}

func writePNG(path string, d *soft.Driver) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, d.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
