// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

// Host gives the overlay access to the game's window.
type Host interface {
	// ActiveWindow returns the foreground window, or nil when there is none
	// (for example before the first layout).
	ActiveWindow() Window
}

// Window is the top-most layer of the game's window, drawn above the game's
// own surface. Methods are called on the UI goroutine.
type Window interface {
	Attach(c *Container)
	Detach(c *Container)
	BringToFront(c *Container)
	RequestFocus(c *Container)
	// Size returns the window size in layout pixels.
	Size() (width, height int)
	// DeviceScale returns the device scale factor used for the dismiss control.
	DeviceScale() float64
}
