// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package stage is the Ebitengine side of weboverlay: the top-most layer that
// draws overlay containers above the game and the UI thread their
// operations run on.
//
// A game owns one Stage and calls it from its own Update, Draw and Layout:
//
//	func (g *Game) Update() error { return g.stage.Update() }
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//	    g.drawWorld(screen)
//	    g.stage.Draw(screen)
//	}
//
//	func (g *Game) Layout(w, h int) (int, int) { return g.stage.Layout(w, h) }
package stage

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
)

// Stage implements weboverlay.Host, weboverlay.Window and weboverlay.UIThread
// for an Ebitengine game. Everything except Post must be called from the
// game loop.
type Stage struct {
	queue *weboverlay.Queue
	stack weboverlay.Stack

	scale float64

	glyphs glyphCache
	log    zerolog.Logger
}

// Option configures a Stage.
type Option func(*Stage)

// WithLogger sets the stage logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Stage) { s.log = l.With().Str("component", "stage").Logger() }
}

// WithDeviceScale fixes the device scale instead of asking the monitor.
func WithDeviceScale(scale float64) Option {
	return func(s *Stage) { s.scale = scale }
}

// New creates an empty stage.
func New(opts ...Option) *Stage {
	s := &Stage{
		queue: weboverlay.NewQueue(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post queues fn to run during the next Update. Safe from any goroutine.
func (s *Stage) Post(fn func()) {
	s.queue.Post(fn)
}

// Flush runs posted operations without ticking containers. Games call it
// after ebiten.RunGame returns so a final Overlay.Close can release the
// browser.
func (s *Stage) Flush() {
	s.queue.Drain()
}

// ActiveWindow returns the stage once the game has been laid out.
func (s *Stage) ActiveWindow() weboverlay.Window {
	if !s.stack.Ready() {
		return nil
	}
	return s
}

// Attach adds c on top of the stage.
func (s *Stage) Attach(c *weboverlay.Container) {
	if s.stack.Attach(c) {
		s.log.Debug().Int("containers", s.stack.Len()).Msg("container attached")
	}
}

// Detach removes c from the stage.
func (s *Stage) Detach(c *weboverlay.Container) {
	if !s.stack.Detach(c) {
		return
	}
	s.log.Debug().Int("containers", s.stack.Len()).Msg("container detached")
}

// BringToFront draws c after every container of the same elevation.
func (s *Stage) BringToFront(c *weboverlay.Container) {
	s.stack.Raise(c)
}

// RequestFocus routes keyboard input to c's browser.
func (s *Stage) RequestFocus(c *weboverlay.Container) {
	s.stack.Focus(c)
	if b := c.Browser(); b != nil {
		b.SetFocus()
	}
}

// HasFocus reports whether a visible container holds keyboard focus, in
// which case key presses belong to its page.
func (s *Stage) HasFocus() bool {
	return s.stack.HasFocus()
}

// Size returns the layout size recorded by Layout.
func (s *Stage) Size() (int, int) {
	return s.stack.Size()
}

// DeviceScale returns the fixed scale or the current monitor's.
func (s *Stage) DeviceScale() float64 {
	if s.scale > 0 {
		return s.scale
	}
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// Layout records the game's screen size and returns it unchanged.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.stack.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Update runs posted overlay operations, routes pointer input to the
// top-most container under the cursor, handles presses on dismiss controls
// and ticks every attached container.
func (s *Stage) Update() error {
	s.queue.Drain()

	s.stack.RouteInput(image.Pt(ebiten.CursorPosition()))
	scale := s.DeviceScale()
	for _, p := range pressedPoints() {
		s.stack.Press(p, scale)
	}

	var errs []error
	for _, c := range s.stack.Ordered() {
		if err := c.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func pressedPoints() []image.Point {
	var points []image.Point
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		points = append(points, image.Pt(ebiten.CursorPosition()))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		points = append(points, image.Pt(ebiten.TouchPosition(id)))
	}
	return points
}

// Draw draws visible containers above whatever the game drew on screen,
// lowest elevation first.
func (s *Stage) Draw(screen *ebiten.Image) {
	scale := s.DeviceScale()
	for _, c := range s.stack.Ordered() {
		if c.Visible() {
			s.drawContainer(screen, c, scale)
		}
	}
}

// Len returns the number of attached containers.
func (s *Stage) Len() int {
	return s.stack.Len()
}
