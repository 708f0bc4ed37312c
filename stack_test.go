// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedBrowser records the last input gate the stack applied.
type gatedBrowser struct {
	fakeBrowser
	input bool
	gated int
}

func (b *gatedBrowser) SetInputEnabled(enabled bool) {
	b.input = enabled
	b.gated++
}

func stacked(layout Layout, elevation float64) (*Container, *gatedBrowser) {
	b := &gatedBrowser{}
	c := newContainer(layout, DefaultDismissControl())
	c.browser = b
	c.visible = true
	c.elevation = elevation
	return c, b
}

func newStack() *Stack {
	s := &Stack{}
	s.SetSize(800, 600)
	return s
}

func TestStackReadyAfterSize(t *testing.T) {
	var s Stack
	assert.False(t, s.Ready())

	s.SetSize(800, 0)
	assert.False(t, s.Ready())

	s.SetSize(800, 600)
	assert.True(t, s.Ready())
	w, h := s.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestStackOrdersByElevationThenRaise(t *testing.T) {
	s := newStack()
	high, _ := stacked(Layout{}, MaxElevation)
	low, _ := stacked(Layout{}, 1)
	peer, _ := stacked(Layout{}, MaxElevation)

	require.True(t, s.Attach(high))
	require.True(t, s.Attach(low))
	require.True(t, s.Attach(peer))
	assert.False(t, s.Attach(peer), "attaching twice is ignored")

	assert.Equal(t, []*Container{low, high, peer}, s.Ordered())

	s.Raise(high)
	assert.Equal(t, []*Container{low, peer, high}, s.Ordered())

	require.True(t, s.Detach(peer))
	assert.False(t, s.Detach(peer))
	assert.Equal(t, []*Container{low, high}, s.Ordered())
	assert.Equal(t, 2, s.Len())
}

func TestStackTopAtSkipsHiddenAndMisses(t *testing.T) {
	s := newStack()
	under, _ := stacked(Layout{}, MaxElevation)
	over, _ := stacked(Layout{Left: 100, Top: 100, Width: 200, Height: 200}, MaxElevation)
	s.Attach(under)
	s.Attach(over)

	assert.Same(t, over, s.TopAt(image.Pt(150, 150)))
	assert.Same(t, under, s.TopAt(image.Pt(10, 10)))
	assert.Nil(t, s.TopAt(image.Pt(900, 10)))

	over.visible = false
	assert.Same(t, under, s.TopAt(image.Pt(150, 150)))
}

func TestStackPressDismissesOnlyTopContainer(t *testing.T) {
	s := newStack()
	under, _ := stacked(Layout{}, MaxElevation)
	over, _ := stacked(Layout{}, MaxElevation)
	var dismissed []*Container
	under.onDismiss = func() { dismissed = append(dismissed, under) }
	over.onDismiss = func() { dismissed = append(dismissed, over) }
	s.Attach(under)
	s.Attach(over)

	// Both fullscreen containers share the same dismiss control position.
	r := over.DismissControl().Rect(over.Bounds(800, 600), 1)
	center := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)

	assert.True(t, s.Press(center, 1))
	assert.Equal(t, []*Container{over}, dismissed)

	assert.True(t, s.Press(image.Pt(400, 300), 1), "press inside a container is consumed")
	assert.Len(t, dismissed, 1)
}

func TestStackPressOutsideEverything(t *testing.T) {
	s := newStack()
	c, _ := stacked(Layout{Left: 0, Top: 0, Width: 100, Height: 100}, MaxElevation)
	s.Attach(c)

	assert.False(t, s.Press(image.Pt(500, 500), 1))
}

func TestStackRouteInputOnlyToTopUnderCursor(t *testing.T) {
	s := newStack()
	under, underB := stacked(Layout{}, MaxElevation)
	over, overB := stacked(Layout{Left: 100, Top: 100, Width: 200, Height: 200}, MaxElevation)
	s.Attach(under)
	s.Attach(over)

	s.RouteInput(image.Pt(150, 150))
	assert.True(t, overB.input)
	assert.False(t, underB.input, "covered page must not see the click")

	s.RouteInput(image.Pt(10, 10))
	assert.False(t, overB.input)
	assert.True(t, underB.input)

	s.RouteInput(image.Pt(900, 900))
	assert.False(t, overB.input)
	assert.False(t, underB.input)
	assert.Equal(t, 3, underB.gated)
}

func TestStackRouteInputIgnoresUngatedBrowsers(t *testing.T) {
	s := newStack()
	c := newContainer(Layout{}, DefaultDismissControl())
	c.browser = &fakeBrowser{}
	c.visible = true
	s.Attach(c)

	assert.NotPanics(t, func() { s.RouteInput(image.Pt(1, 1)) })
}

func TestStackFocusFollowsVisibilityAndDetach(t *testing.T) {
	s := newStack()
	c, _ := stacked(Layout{}, MaxElevation)
	s.Attach(c)
	assert.False(t, s.HasFocus())

	s.Focus(c)
	assert.True(t, s.HasFocus(), "keys belong to the visible page")

	c.visible = false
	assert.False(t, s.HasFocus(), "hidden page gives keys back to the game")

	c.visible = true
	require.True(t, s.Detach(c))
	assert.False(t, s.HasFocus())
}
