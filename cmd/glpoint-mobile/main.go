// Command glpoint-mobile is the gomobile app that draws the point scene on
// the device's GL ES surface.
//
// Build and install on Android with:
//
//	gomobile install github.com/gogpu/glpoint/cmd/glpoint-mobile
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/glpoint"
	"github.com/gogpu/glpoint/host/mobile"
)

func main() {
	glpoint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	r, err := glpoint.NewRenderer()
	if err != nil {
		log.Fatalf("glpoint: %v", err)
	}
	mobile.NewHost(r).Main()
}
