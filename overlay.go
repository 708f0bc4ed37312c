// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"encoding/json"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// State is the overlay lifecycle state.
type State int32

const (
	// StateAbsent means no container or browser exists.
	StateAbsent State = iota
	// StateVisible means the container is attached and drawn.
	StateVisible
	// StateHidden means the container is kept but not drawn.
	StateHidden
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Options configure an Overlay. Host, UI and NewBrowser are required.
type Options struct {
	Host       Host
	UI         UIThread
	NewBrowser BrowserFactory
	// Notifier receives page-loaded, closed and message notifications.
	Notifier Notifier
	// Channel names the notification channel. Defaults to DefaultChannel.
	Channel string
	// Settings overrides DefaultSettings when non-nil.
	Settings *Settings
	// Dismiss overrides DefaultDismissControl when non-nil.
	Dismiss *DismissControl
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Overlay owns at most one container/browser pair shown above the game.
// Methods are safe to call from any goroutine; everything touching the pair
// runs on the UI goroutine.
type Overlay struct {
	host       Host
	ui         UIThread
	newBrowser BrowserFactory
	notifier   Notifier
	channel    string
	settings   Settings
	dismiss    DismissControl
	log        zerolog.Logger

	// Owned by the UI goroutine.
	container  *Container
	browser    Browser
	window     Window
	winW, winH int
	gen        uint64

	state     atomic.Int32
	canGoBack atomic.Bool
	closed    atomic.Bool
}

// New creates an overlay in the absent state. Nothing is allocated until
// the first Show.
func New(opts Options) *Overlay {
	o := &Overlay{
		host:       opts.Host,
		ui:         opts.UI,
		newBrowser: opts.NewBrowser,
		notifier:   opts.Notifier,
		channel:    opts.Channel,
		settings:   DefaultSettings(),
		dismiss:    DefaultDismissControl(),
		log:        zerolog.Nop(),
	}
	if o.channel == "" {
		o.channel = DefaultChannel
	}
	if opts.Settings != nil {
		o.settings = *opts.Settings
	}
	if opts.Dismiss != nil {
		o.dismiss = *opts.Dismiss
	}
	if opts.Logger != nil {
		o.log = opts.Logger.With().Str("component", "weboverlay").Logger()
	}
	return o
}

// Show displays address in the overlay. A positive width and height place
// a fixed-size overlay at (left, top); otherwise it is fullscreen. If the
// overlay already exists it is made visible, raised and navigated; the
// existing browser and its history are kept.
func (o *Overlay) Show(address string, left, top, width, height int) {
	layout := Layout{Left: left, Top: top, Width: width, Height: height}
	o.log.Debug().Str("url", address).Int("left", left).Int("top", top).
		Int("width", width).Int("height", height).Msg("show requested")
	o.post("show", func() { o.show(address, func(int, int) Layout { return layout }) })
}

// ShowFullscreen is Show with a fullscreen layout.
func (o *Overlay) ShowFullscreen(address string) {
	o.Show(address, 0, 0, 0, 0)
}

// ShowPercent shows a centred overlay sized as a fraction of the window.
func (o *Overlay) ShowPercent(address string, widthFrac, heightFrac float64) {
	o.post("show", func() {
		o.show(address, func(winW, winH int) Layout {
			return PercentLayout(winW, winH, widthFrac, heightFrac)
		})
	})
}

// Hide stops drawing the overlay without releasing anything.
func (o *Overlay) Hide() {
	o.post("hide", o.hide)
}

// Destroy releases the browser and the container. A later Show starts over
// with a fresh browser.
func (o *Overlay) Destroy() {
	o.post("destroy", o.destroy)
}

// CanGoBack reports whether the browser has backward history. It returns
// false when no browser exists. The value is refreshed on the UI goroutine
// after every operation and frame.
func (o *Overlay) CanGoBack() bool {
	return o.canGoBack.Load()
}

// GoBack navigates back when history exists.
func (o *Overlay) GoBack() {
	o.post("go_back", func() {
		if o.browser != nil && o.browser.CanGoBack() {
			o.browser.GoBack()
		}
		o.refresh()
	})
}

// LoadURL navigates the existing browser. It does nothing when none exists.
func (o *Overlay) LoadURL(address string) {
	o.post("load_url", func() {
		if o.browser != nil {
			o.browser.LoadURL(address)
		}
		o.refresh()
	})
}

// EvaluateScript runs code in the current page. The result is discarded.
func (o *Overlay) EvaluateScript(code string) {
	o.post("evaluate_script", func() {
		if o.browser != nil {
			o.browser.Eval(code)
		}
	})
}

// PostMessage dispatches a window message event carrying jsonData (a JSON
// literal) to the page.
func (o *Overlay) PostMessage(jsonData string) {
	o.EvaluateScript(fmt.Sprintf("window.postMessage(%s, '*');", jsonData))
}

// Send serializes v to JSON and posts it to the page as a window message.
func (o *Overlay) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "send")
	}
	o.PostMessage(string(data))
	return nil
}

// IsVisible reports whether the overlay is currently shown.
func (o *Overlay) IsVisible() bool {
	return o.State() == StateVisible
}

// State returns the lifecycle state as of the last UI-goroutine update.
func (o *Overlay) State() State {
	return State(o.state.Load())
}

// Close destroys the overlay and ignores every later call.
func (o *Overlay) Close() {
	if !o.closed.CompareAndSwap(false, true) {
		return
	}
	o.ui.Post(o.destroy)
}

func (o *Overlay) post(op string, fn func()) {
	if o.closed.Load() {
		o.log.Debug().Err(ErrClosed).Str("op", op).Msg("operation dropped")
		return
	}
	o.ui.Post(fn)
}

func (o *Overlay) show(address string, layoutFor func(winW, winH int) Layout) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("panic: %v", r)
			o.log.Error().Stack().Err(err).Str("url", address).Msg("show overlay failed")
		}
	}()

	if o.container != nil {
		o.reuse(address)
		return
	}
	if err := o.create(address, layoutFor); err != nil {
		if errors.Is(err, ErrNoWindow) {
			o.log.Error().Err(err).Str("url", address).Msg("show skipped")
			return
		}
		o.log.Error().Stack().Err(err).Str("url", address).Msg("show overlay failed")
	}
}

func (o *Overlay) reuse(address string) {
	c := o.container
	c.visible = true
	if o.window != nil {
		o.window.BringToFront(c)
	}
	c.elevation = MaxElevation
	o.applyBounds()
	o.browser.LoadURL(address)
	o.state.Store(int32(StateVisible))
	o.refresh()
	o.log.Debug().Str("url", address).Msg("reusing existing browser")
}

func (o *Overlay) create(address string, layoutFor func(winW, winH int) Layout) (err error) {
	if o.host == nil || o.newBrowser == nil {
		return errors.New("overlay is missing a host or browser factory")
	}
	win := o.host.ActiveWindow()
	if win == nil {
		return ErrNoWindow
	}
	winW, winH := win.Size()
	c := newContainer(layoutFor(winW, winH), o.dismiss)
	rect := c.Bounds(winW, winH)

	gen := o.gen + 1
	b, err := o.newBrowser(rect.Dx(), rect.Dy(), o.settings, o.callbacks(gen))
	if err != nil {
		return errors.Wrap(err, "create browser")
	}
	if b == nil {
		return errors.New("browser factory returned nil")
	}

	attached := false
	committed := false
	defer func() {
		if committed {
			return
		}
		if attached {
			win.Detach(c)
		}
		b.Destroy()
	}()

	b.LoadURL(address)
	c.browser = b
	c.onDismiss = func() { o.dismissed(gen) }
	c.onUpdate = func() error { return o.update(gen) }
	c.visible = true

	win.Attach(c)
	attached = true
	win.BringToFront(c)
	win.RequestFocus(c)
	c.elevation = MaxElevation

	o.gen = gen
	o.container = c
	o.browser = b
	o.window = win
	o.winW, o.winH = winW, winH
	committed = true

	b.SetBounds(rect)
	o.state.Store(int32(StateVisible))
	o.refresh()
	o.log.Info().Str("url", address).Bool("fullscreen", c.layout.Fullscreen()).
		Msg("browser created and attached")
	return nil
}

func (o *Overlay) callbacks(gen uint64) BrowserCallbacks {
	return BrowserCallbacks{
		OnNavigate: func(url string) bool {
			if !o.current(gen) {
				return false
			}
			o.browser.LoadURL(url)
			return true
		},
		OnPageFinished: func(url string) {
			if !o.current(gen) {
				return
			}
			o.log.Debug().Str("url", url).Msg("page finished")
			o.refresh()
			o.notify(MethodPageLoaded, url)
		},
		OnMessage: func(msg string) {
			if !o.current(gen) {
				return
			}
			o.notify(MethodMessageReceived, msg)
		},
	}
}

// current reports whether gen still names the live browser.
func (o *Overlay) current(gen uint64) bool {
	return o.browser != nil && o.gen == gen
}

func (o *Overlay) hide() {
	if o.container == nil {
		return
	}
	o.container.visible = false
	o.browser.SetBounds(image.Rectangle{})
	o.state.Store(int32(StateHidden))
}

func (o *Overlay) dismissed(gen uint64) {
	if !o.current(gen) {
		return
	}
	o.hide()
	o.log.Debug().Msg("closed by user")
	o.notify(MethodClosed, "")
}

func (o *Overlay) destroy() {
	if o.browser != nil {
		o.browser.Stop()
		o.browser.ClearHistory()
		o.browser.ClearCache()
		o.browser.Destroy()
		o.browser = nil
	}
	if o.container != nil {
		if o.window != nil {
			o.window.Detach(o.container)
		}
		o.container.browser = nil
		o.container.onDismiss = nil
		o.container.onUpdate = nil
		o.container = nil
	}
	o.window = nil
	o.gen++
	o.state.Store(int32(StateAbsent))
	o.canGoBack.Store(false)
}

func (o *Overlay) update(gen uint64) error {
	if !o.current(gen) {
		return nil
	}
	if o.window != nil {
		if w, h := o.window.Size(); w != o.winW || h != o.winH {
			o.winW, o.winH = w, h
			o.applyBounds()
		}
	}
	err := o.browser.Update()
	if o.browser != nil {
		o.refresh()
	}
	return err
}

// applyBounds resizes the browser to the container and refreshes its input
// rectangle.
func (o *Overlay) applyBounds() {
	if o.container == nil || o.browser == nil {
		return
	}
	rect := o.container.Bounds(o.winW, o.winH)
	o.browser.Resize(rect.Dx(), rect.Dy())
	if o.container.visible {
		o.browser.SetBounds(rect)
	}
}

func (o *Overlay) refresh() {
	o.canGoBack.Store(o.browser != nil && o.browser.CanGoBack())
}

func (o *Overlay) notify(method, payload string) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn().Str("method", method).Interface("panic", r).Msg("notification failed")
		}
	}()
	if o.notifier == nil {
		o.log.Warn().Err(ErrNoListener).Str("method", method).Msg("notification dropped")
		return
	}
	if err := o.notifier.Notify(o.channel, method, payload); err != nil {
		o.log.Warn().Err(err).Str("channel", o.channel).Str("method", method).Msg("notification failed")
	}
}
