// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"
	"slices"
)

// InputGate is implemented by browsers whose pointer input can be switched
// off while another container covers the cursor.
type InputGate interface {
	SetInputEnabled(enabled bool)
}

type stackEntry struct {
	c      *Container
	raised uint64
}

// Stack keeps the containers attached to one window in drawing order and
// answers which of them sits on top at a point. Windows embed it; it is not
// safe for concurrent use.
type Stack struct {
	entries       []stackEntry
	seq           uint64
	focused       *Container
	width, height int
}

// SetSize records the window size used to resolve container bounds.
func (s *Stack) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the recorded window size.
func (s *Stack) Size() (int, int) {
	return s.width, s.height
}

// Ready reports whether a usable window size has been recorded.
func (s *Stack) Ready() bool {
	return s.width > 0 && s.height > 0
}

// Attach puts c on top of its elevation. It reports false if c was already
// attached.
func (s *Stack) Attach(c *Container) bool {
	if s.index(c) >= 0 {
		return false
	}
	s.seq++
	s.entries = append(s.entries, stackEntry{c: c, raised: s.seq})
	return true
}

// Detach removes c. It reports false if c was not attached.
func (s *Stack) Detach(c *Container) bool {
	i := s.index(c)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	if s.focused == c {
		s.focused = nil
	}
	return true
}

// Focus records c as the container holding keyboard focus.
func (s *Stack) Focus(c *Container) {
	s.focused = c
}

// HasFocus reports whether an attached, visible container holds keyboard
// focus, in which case key presses belong to its page.
func (s *Stack) HasFocus() bool {
	return s.focused != nil && s.focused.Visible()
}

// Raise moves c above every container of the same elevation.
func (s *Stack) Raise(c *Container) {
	if i := s.index(c); i >= 0 {
		s.seq++
		s.entries[i].raised = s.seq
	}
}

// Len returns the number of attached containers.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Ordered returns the containers bottom to top: by elevation, then by the
// order they were last raised.
func (s *Stack) Ordered() []*Container {
	sorted := slices.Clone(s.entries)
	slices.SortStableFunc(sorted, func(a, b stackEntry) int {
		switch {
		case a.c.Elevation() < b.c.Elevation():
			return -1
		case a.c.Elevation() > b.c.Elevation():
			return 1
		case a.raised < b.raised:
			return -1
		case a.raised > b.raised:
			return 1
		}
		return 0
	})
	out := make([]*Container, len(sorted))
	for i, e := range sorted {
		out[i] = e.c
	}
	return out
}

// TopAt returns the top-most visible container whose bounds hold p, or nil.
func (s *Stack) TopAt(p image.Point) *Container {
	ordered := s.Ordered()
	for i := len(ordered) - 1; i >= 0; i-- {
		c := ordered[i]
		if c.Visible() && p.In(c.Bounds(s.width, s.height)) {
			return c
		}
	}
	return nil
}

// Press hands a press at p to the top-most visible container under it and
// fires its dismiss control when the press lands there. It reports whether
// a container took the press.
func (s *Stack) Press(p image.Point, scale float64) bool {
	c := s.TopAt(p)
	if c == nil {
		return false
	}
	if c.HitDismiss(s.width, s.height, scale, p.X, p.Y) {
		c.Dismiss()
	}
	return true
}

// RouteInput enables pointer input only on the browser of the top-most
// container under the cursor and disables it everywhere else.
func (s *Stack) RouteInput(cursor image.Point) {
	top := s.TopAt(cursor)
	for _, e := range s.entries {
		if g, ok := e.c.Browser().(InputGate); ok {
			g.SetInputEnabled(e.c == top)
		}
	}
}

func (s *Stack) index(c *Container) int {
	return slices.IndexFunc(s.entries, func(e stackEntry) bool { return e.c == c })
}
