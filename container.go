// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"
	"image/color"
)

// Container is the overlay's root node: a background, the browser filling
// it, and the dismiss control on top. The window reads it to draw and
// hit-test; only the owning overlay mutates it.
type Container struct {
	browser    Browser
	layout     Layout
	visible    bool
	elevation  float64
	background color.RGBA
	dismiss    DismissControl

	onDismiss func()
	onUpdate  func() error
}

func newContainer(layout Layout, dismiss DismissControl) *Container {
	return &Container{
		layout:     layout,
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		dismiss:    dismiss,
	}
}

// Browser returns the nested browser, or nil once released.
func (c *Container) Browser() Browser { return c.browser }

// Layout returns the placement requested when the container was built.
func (c *Container) Layout() Layout { return c.layout }

// Visible reports whether the container is drawn and hit-tested.
func (c *Container) Visible() bool { return c.visible }

// Elevation returns the stacking elevation. Higher draws later.
func (c *Container) Elevation() float64 { return c.elevation }

// Background returns the fill drawn under the browser.
func (c *Container) Background() color.RGBA { return c.background }

// DismissControl returns the close button description.
func (c *Container) DismissControl() DismissControl { return c.dismiss }

// Bounds resolves the container rectangle in a window of winW x winH.
func (c *Container) Bounds(winW, winH int) image.Rectangle {
	return c.layout.Rect(winW, winH)
}

// HitDismiss reports whether a press at (x, y) lands on the dismiss control.
func (c *Container) HitDismiss(winW, winH int, scale float64, x, y int) bool {
	if !c.visible {
		return false
	}
	return c.dismiss.Hit(c.Bounds(winW, winH), scale, x, y)
}

// Dismiss is called by the window when the user presses the dismiss control.
func (c *Container) Dismiss() {
	if c.onDismiss != nil {
		c.onDismiss()
	}
}

// Update ticks the container's browser. The window calls it every frame.
func (c *Container) Update() error {
	if c.onUpdate == nil {
		return nil
	}
	return c.onUpdate()
}
