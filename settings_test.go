// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutRect(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   image.Rectangle
	}{
		{"zero is fullscreen", Layout{}, image.Rect(0, 0, 800, 600)},
		{"zero width is fullscreen", Layout{Left: 10, Top: 20, Height: 400}, image.Rect(0, 0, 800, 600)},
		{"negative height is fullscreen", Layout{Width: 300, Height: -1}, image.Rect(0, 0, 800, 600)},
		{"fixed", Layout{Left: 10, Top: 20, Width: 300, Height: 400}, image.Rect(10, 20, 310, 420)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.layout.Rect(800, 600))
		})
	}
}

func TestPercentLayout(t *testing.T) {
	assert.Equal(t, Layout{Left: 133, Top: 100, Width: 533, Height: 400}, PercentLayout(800, 600, 2.0/3.0, 2.0/3.0))
	assert.True(t, PercentLayout(800, 600, 0, 0.5).Fullscreen())
	assert.True(t, PercentLayout(800, 600, 1.5, 0.5).Fullscreen())
}

func TestUserAgentAddsMobileOnce(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DefaultUserAgent+" Mobile", s.UserAgent())

	s.BaseUserAgent = "Custom/1.0 Mobile"
	assert.Equal(t, "Custom/1.0 Mobile", s.UserAgent())

	s.UserAgentSuffix = ""
	s.BaseUserAgent = ""
	assert.Equal(t, DefaultUserAgent, s.UserAgent())
}

func TestDismissControlScalesWithDevice(t *testing.T) {
	d := DefaultDismissControl()
	bounds := image.Rect(0, 0, 800, 600)

	assert.Equal(t, image.Rect(744, 16, 784, 56), d.Rect(bounds, 1))
	assert.Equal(t, image.Rect(688, 32, 768, 112), d.Rect(bounds, 2))
	assert.Equal(t, d.Rect(bounds, 1), d.Rect(bounds, 0), "non-positive scale falls back to 1")
}

func TestDismissControlHitIsCircular(t *testing.T) {
	d := DefaultDismissControl()
	bounds := image.Rect(10, 20, 310, 420)
	r := d.Rect(bounds, 1)
	cx, cy := (r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2

	assert.True(t, d.Hit(bounds, 1, cx, cy))
	assert.False(t, d.Hit(bounds, 1, r.Min.X, r.Min.Y), "corner of the square is outside the circle")
	assert.False(t, d.Hit(bounds, 1, 20, 30))
}

func TestContainerHitDismissOnlyWhenVisible(t *testing.T) {
	c := newContainer(Layout{}, DefaultDismissControl())
	assert.False(t, c.HitDismiss(800, 600, 1, 764, 36))

	c.visible = true
	assert.True(t, c.HitDismiss(800, 600, 1, 764, 36))
}
