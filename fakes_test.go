// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"image"

	"github.com/stretchr/testify/mock"
)

type fakeBrowser struct {
	id       int
	width    int
	height   int
	settings Settings
	cb       BrowserCallbacks

	history   []string
	loads     []string
	evals     []string
	bounds    image.Rectangle
	focused   bool
	stopped   int
	cleared   int
	cacheGone int
	destroyed bool
	updates   int
}

func (b *fakeBrowser) LoadURL(url string) {
	b.loads = append(b.loads, url)
	b.history = append(b.history, url)
}

func (b *fakeBrowser) CanGoBack() bool { return len(b.history) > 1 }

func (b *fakeBrowser) GoBack() {
	if len(b.history) > 1 {
		b.history = b.history[:len(b.history)-1]
	}
}

func (b *fakeBrowser) Stop()                       { b.stopped++ }
func (b *fakeBrowser) ClearHistory()               { b.cleared++; b.history = nil }
func (b *fakeBrowser) ClearCache()                 { b.cacheGone++ }
func (b *fakeBrowser) Eval(script string)          { b.evals = append(b.evals, script) }
func (b *fakeBrowser) Resize(width, height int)    { b.width, b.height = width, height }
func (b *fakeBrowser) SetBounds(r image.Rectangle) { b.bounds = r }
func (b *fakeBrowser) SetFocus()                   { b.focused = true }
func (b *fakeBrowser) Update() error               { b.updates++; return nil }
func (b *fakeBrowser) Destroy()                    { b.destroyed = true }

// finish simulates the page-finished callback for the current page.
func (b *fakeBrowser) finish() {
	if b.cb.OnPageFinished != nil && len(b.history) > 0 {
		b.cb.OnPageFinished(b.history[len(b.history)-1])
	}
}

type browserRecorder struct {
	created []*fakeBrowser
	err     error
}

func (r *browserRecorder) factory(width, height int, settings Settings, cb BrowserCallbacks) (Browser, error) {
	if r.err != nil {
		return nil, r.err
	}
	b := &fakeBrowser{id: len(r.created) + 1, width: width, height: height, settings: settings, cb: cb}
	r.created = append(r.created, b)
	return b, nil
}

func (r *browserRecorder) last() *fakeBrowser {
	if len(r.created) == 0 {
		return nil
	}
	return r.created[len(r.created)-1]
}

type fakeWindow struct {
	width, height int
	scale         float64
	attached      []*Container
	raised        []*Container
	focused       *Container
	detached      int
}

func (w *fakeWindow) Attach(c *Container) { w.attached = append(w.attached, c) }

func (w *fakeWindow) Detach(c *Container) {
	for i, a := range w.attached {
		if a == c {
			w.attached = append(w.attached[:i], w.attached[i+1:]...)
			w.detached++
			return
		}
	}
}

func (w *fakeWindow) BringToFront(c *Container) { w.raised = append(w.raised, c) }
func (w *fakeWindow) RequestFocus(c *Container) { w.focused = c }
func (w *fakeWindow) Size() (int, int)          { return w.width, w.height }
func (w *fakeWindow) DeviceScale() float64      { return w.scale }

type fakeHost struct {
	window *fakeWindow
}

func (h *fakeHost) ActiveWindow() Window {
	if h.window == nil {
		return nil
	}
	return h.window
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(channel, method, payload string) error {
	args := m.Called(channel, method, payload)
	return args.Error(0)
}
