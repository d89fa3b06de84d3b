// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mobile hosts a glpoint.SurfaceRenderer in the
// golang.org/x/mobile app event loop (Android, iOS and the desktop
// development shells).
//
// The event loop goroutine is the rendering thread: every renderer callback
// and every GL call happens on it.
package mobile

import (
	"log/slog"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"

	"github.com/gogpu/glpoint"
	"github.com/gogpu/glpoint/driver/gles"
)

// Host translates app events into SurfaceRenderer callbacks.
type Host struct {
	renderer glpoint.SurfaceRenderer
	logger   *slog.Logger

	// OnBuildError, if set, is called when OnSurfaceCreated fails. The
	// default logs the error; rendering stays off until the next surface.
	OnBuildError func(err error)

	glctx  gl.Context
	live   bool
	sz     size.Event
	hasSz  bool
	frames uint64
}

// NewHost creates a Host for r.
func NewHost(r glpoint.SurfaceRenderer) *Host {
	return &Host{renderer: r}
}

// SetLogger overrides the package logger for this host.
func (h *Host) SetLogger(l *slog.Logger) { h.logger = l }

func (h *Host) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return glpoint.Logger()
}

// Main runs the app event loop until the app exits. It must be called from
// the program's main function.
func (h *Host) Main() {
	app.Main(h.Run)
}

// Run consumes events from a until its event channel closes.
func (h *Host) Run(a app.App) {
	for e := range a.Events() {
		wasLive := h.live
		switch {
		case h.Handle(a.Filter(e)):
			a.Publish()
			a.Send(paint.Event{})
		case !wasLive && h.live:
			// Start the paint loop on a fresh surface.
			a.Send(paint.Event{})
		}
	}
}

// Handle processes one event and reports whether a frame was drawn and
// should be published.
func (h *Host) Handle(e any) bool {
	switch e := e.(type) {
	case lifecycle.Event:
		h.lifecycle(e)
	case size.Event:
		h.sz, h.hasSz = e, true
		if h.glctx != nil && h.live {
			h.renderer.OnSurfaceResized(e.WidthPx, e.HeightPx)
		}
	case paint.Event:
		if h.glctx == nil || !h.live || e.External {
			// External paint events come from the OS; we paint continuously
			// through our own requests instead.
			return false
		}
		h.renderer.OnFrameTick()
		h.frames++
		return true
	}
	return false
}

func (h *Host) lifecycle(e lifecycle.Event) {
	switch e.Crosses(lifecycle.StageVisible) {
	case lifecycle.CrossOn:
		ctx, ok := e.DrawContext.(gl.Context)
		if !ok {
			h.log().Warn("mobile: visible without a GL context")
			return
		}
		h.surfaceCreated(ctx)
	case lifecycle.CrossOff:
		h.surfaceLost()
	}
}

func (h *Host) surfaceCreated(ctx gl.Context) {
	h.glctx = ctx
	h.frames = 0
	if err := h.renderer.OnSurfaceCreated(gles.New(ctx)); err != nil {
		h.live = false
		if h.OnBuildError != nil {
			h.OnBuildError(err)
		} else {
			h.log().Error("mobile: surface setup failed", "err", err)
		}
		return
	}
	h.live = true

	// The size event can arrive before the surface; replay it.
	if h.hasSz {
		h.renderer.OnSurfaceResized(h.sz.WidthPx, h.sz.HeightPx)
	}
}

func (h *Host) surfaceLost() {
	if rel, ok := h.renderer.(glpoint.SurfaceReleaser); ok {
		rel.OnSurfaceLost()
	}
	h.glctx = nil
	h.live = false
}

// Frames returns the number of frames drawn on the current surface.
func (h *Host) Frames() uint64 { return h.frames }
