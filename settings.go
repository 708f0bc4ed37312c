// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"
	"image/color"
	"math"
	"strings"
)

// MaxElevation is the stacking elevation forced on a shown container so it
// renders above the game's surface and any lower overlay.
const MaxElevation = 100

// DefaultUserAgent is the user agent Ultralight 1.4 reports on desktop.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/615.1.18.100.1 " +
	"(KHTML, like Gecko) Ultralight/1.4.0 Version/16.4.1 Safari/615.1.18.100.1"

// CacheMode selects how the browser uses its HTTP cache.
type CacheMode int

const (
	// CacheDefault uses the cache following normal HTTP rules.
	CacheDefault CacheMode = iota
	// CacheNoCache always goes to the network.
	CacheNoCache
)

// Settings is the capability set a browser is configured with at creation.
// It is never changed afterwards.
type Settings struct {
	JavaScript        bool
	LocalStorage      bool
	Database          bool
	AutoplayNoGesture bool
	FileAccess        bool
	MixedContent      bool
	Zoom              bool
	ZoomControls      bool // on-screen zoom buttons
	WideViewport      bool
	OverviewMode      bool
	Cache             CacheMode

	BaseUserAgent   string
	UserAgentSuffix string
}

// DefaultSettings returns the fixed capability set used for overlays:
// scripts, storage, autoplay, file access and zoom enabled, wide viewport
// layout and a mobile user agent.
func DefaultSettings() Settings {
	return Settings{
		JavaScript:        true,
		LocalStorage:      true,
		Database:          true,
		AutoplayNoGesture: true,
		FileAccess:        true,
		MixedContent:      true,
		Zoom:              true,
		ZoomControls:      false,
		WideViewport:      true,
		OverviewMode:      true,
		Cache:             CacheDefault,
		BaseUserAgent:     DefaultUserAgent,
		UserAgentSuffix:   " Mobile",
	}
}

// UserAgent returns the user agent string the browser must send.
func (s Settings) UserAgent() string {
	base := s.BaseUserAgent
	if base == "" {
		base = DefaultUserAgent
	}
	if s.UserAgentSuffix == "" || strings.HasSuffix(base, s.UserAgentSuffix) {
		return base
	}
	return base + s.UserAgentSuffix
}

// Layout places a container in window coordinates. A non-positive width or
// height means fullscreen.
type Layout struct {
	Left, Top     int
	Width, Height int
}

// Fullscreen reports whether the layout covers the whole window.
func (l Layout) Fullscreen() bool {
	return l.Width <= 0 || l.Height <= 0
}

// Rect resolves the layout against a window of size winW x winH.
func (l Layout) Rect(winW, winH int) image.Rectangle {
	if l.Fullscreen() {
		return image.Rect(0, 0, winW, winH)
	}
	return image.Rect(l.Left, l.Top, l.Left+l.Width, l.Top+l.Height)
}

// PercentLayout returns a layout centred in the window and sized as a
// fraction of it. Fractions outside (0, 1] fall back to fullscreen.
func PercentLayout(winW, winH int, widthFrac, heightFrac float64) Layout {
	if widthFrac <= 0 || widthFrac > 1 || heightFrac <= 0 || heightFrac > 1 {
		return Layout{}
	}
	w := int(math.Round(float64(winW) * widthFrac))
	h := int(math.Round(float64(winH) * heightFrac))
	return Layout{Left: (winW - w) / 2, Top: (winH - h) / 2, Width: w, Height: h}
}

// DismissControl describes the circular close button pinned to the
// container's top-right corner. Size, Margin and GlyphSize are logical
// units, multiplied by the window's device scale.
type DismissControl struct {
	Size      float64
	Margin    float64
	Fill      color.RGBA
	Glyph     string
	GlyphSize float64
	GlyphBold bool
}

// DefaultDismissControl returns a 40 unit dark circle, 16 units from the
// top and right edges, with a white cross.
func DefaultDismissControl() DismissControl {
	return DismissControl{
		Size:      40,
		Margin:    16,
		Fill:      color.RGBA{R: 30, G: 30, B: 30, A: 200},
		Glyph:     "×",
		GlyphSize: 20,
		GlyphBold: true,
	}
}

// Rect returns the control's bounds for a container occupying bounds.
func (d DismissControl) Rect(bounds image.Rectangle, scale float64) image.Rectangle {
	if scale <= 0 {
		scale = 1
	}
	size := int(d.Size * scale)
	margin := int(d.Margin * scale)
	maxX := bounds.Max.X - margin
	minY := bounds.Min.Y + margin
	return image.Rect(maxX-size, minY, maxX, minY+size)
}

// Hit reports whether (x, y) falls inside the circle.
func (d DismissControl) Hit(bounds image.Rectangle, scale float64, x, y int) bool {
	r := d.Rect(bounds, scale)
	if r.Empty() {
		return false
	}
	radius := float64(r.Dx()) / 2
	cx := float64(r.Min.X) + radius
	cy := float64(r.Min.Y) + radius
	dx := float64(x) + 0.5 - cx
	dy := float64(y) + 0.5 - cy
	return dx*dx+dy*dy <= radius*radius
}
