// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
)

// navPrefix marks messages the injected helper sends instead of letting the
// page open a new window.
const navPrefix = "__nav:"

// pageHelper sets up window.go.send on top of the native __goSend binding and
// keeps popups and targeted links inside the same view.
const pageHelper = `(function(){` +
	`if(typeof window.__goSend!=='function')return;` +
	`window.go=window.go||{};` +
	`if(!window.go.send)window.go.send=function(m){window.__goSend(typeof m==='string'?m:JSON.stringify(m));};` +
	`if(window.__goNav)return;window.__goNav=true;` +
	`window.open=function(u){if(u)window.__goSend('` + navPrefix + `'+new URL(u,location.href).href);return null;};` +
	`document.addEventListener('click',function(e){` +
	`var a=e.target&&e.target.closest?e.target.closest('a[target]'):null;` +
	`if(a&&a.target!=='_self'&&a.href){e.preventDefault();window.__goSend('` + navPrefix + `'+a.href);}` +
	`},true);})();`

// Options configure the browser factory. All fields are optional.
type Options struct {
	BaseDir string // Directory containing the bridge shared library and Ultralight SDK libraries. Defaults to working directory.
	Debug   bool   // Enable debug logging in the bridge (bridge.log and ultralight.log).
	// Assets, when set, is registered in the VFS before the first view is
	// created so pages can load file:/// URLs from it.
	Assets fs.FS
	Logger *zerolog.Logger
}

// NewFactory returns a weboverlay.BrowserFactory creating Ultralight views.
// The bridge is loaded on the first call.
func NewFactory(opts Options) weboverlay.BrowserFactory {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "ultralight").Logger()
	}
	var (
		assetsOnce sync.Once
		assetsErr  error
	)
	return func(width, height int, settings weboverlay.Settings, cb weboverlay.BrowserCallbacks) (weboverlay.Browser, error) {
		baseDir, debug := resolveOpts(opts)
		if err := initBridge(baseDir); err != nil {
			return nil, err
		}
		if err := ensureULInit(baseDir, debug); err != nil {
			return nil, err
		}
		if opts.Assets != nil {
			assetsOnce.Do(func() { assetsErr = RegisterFS(opts.Assets) })
			if assetsErr != nil {
				return nil, assetsErr
			}
		}
		return newView(width, height, settings, cb, log)
	}
}

func resolveOpts(opts Options) (string, bool) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir, _ = os.Getwd()
		if _, err := os.Stat(filepath.Join(baseDir, bridgeLibName())); err != nil {
			if exe, _ := os.Executable(); exe != "" {
				baseDir = filepath.Dir(exe)
			}
		}
	}
	return baseDir, opts.Debug
}

func capabilities(s weboverlay.Settings) uint32 {
	var caps uint32
	set := func(on bool, bit uint32) {
		if on {
			caps |= bit
		}
	}
	set(s.JavaScript, capJavaScript)
	set(s.LocalStorage, capLocalStorage)
	set(s.Database, capDatabase)
	set(s.AutoplayNoGesture, capAutoplay)
	set(s.FileAccess, capFileAccess)
	set(s.MixedContent, capMixedContent)
	set(s.Zoom, capZoom)
	set(s.ZoomControls, capZoomControls)
	set(s.WideViewport, capWideViewport)
	set(s.OverviewMode, capOverview)
	set(s.Cache == weboverlay.CacheNoCache, capNoCache)
	return caps
}

// View is an Ultralight view rendered into an Ebiten texture. It implements
// weboverlay.Browser.
type View struct {
	viewID  int32
	texture *ebiten.Image
	pixels  []byte

	width  int
	height int

	// Screen rectangle receiving mouse and scroll input. Empty disables input.
	bounds image.Rectangle
	// Cleared by the stage while another overlay covers the cursor.
	inputEnabled bool

	mouseX, mouseY int
	leftDown       bool
	rightDown      bool

	ready          bool
	loading        bool
	helperInjected bool

	cb  weboverlay.BrowserCallbacks
	log zerolog.Logger

	closed bool
}

var (
	_ weboverlay.Browser   = (*View)(nil)
	_ weboverlay.InputGate = (*View)(nil)
)

func newView(width, height int, settings weboverlay.Settings, cb weboverlay.BrowserCallbacks, log zerolog.Logger) (*View, error) {
	width, height = max(width, 1), max(height, 1)

	var viewID int32
	if ulCreateViewEx != nil {
		viewID = ulCreateViewEx(int32(width), int32(height), capabilities(settings), settings.UserAgent())
	} else {
		log.Warn().Msg("bridge has no ul_create_view_ex, view uses Ultralight default settings")
		viewID = ulCreateView(int32(width), int32(height))
	}
	if viewID < 0 {
		return nil, fmt.Errorf("%w: ul_create_view failed with code %d", ErrBridge, viewID)
	}
	registerView()

	v := &View{
		viewID:       viewID,
		inputEnabled: true,
		cb:           cb,
		log:          log.With().Int32("view", viewID).Logger(),
	}
	v.allocate(width, height)
	return v, nil
}

func (v *View) allocate(width, height int) {
	if v.texture != nil {
		v.texture.Deallocate()
	}
	v.width, v.height = width, height
	v.texture = ebiten.NewImage(width, height)
	v.pixels = make([]byte, width*height*4)
}

// LoadURL navigates the view.
func (v *View) LoadURL(url string) {
	if v.closed {
		return
	}
	ulViewLoadURL(v.viewID, url)
	v.loading = true
	v.helperInjected = false
}

// CanGoBack reports whether the view has backward history.
func (v *View) CanGoBack() bool {
	if v.closed {
		return false
	}
	return ulViewCanGoBack(v.viewID) != 0
}

// GoBack navigates one step back.
func (v *View) GoBack() {
	if v.closed {
		return
	}
	ulViewGoBack(v.viewID)
	v.loading = true
	v.helperInjected = false
}

// Stop cancels the current load.
func (v *View) Stop() {
	if v.closed {
		return
	}
	ulViewStop(v.viewID)
}

// ClearHistory is a no-op: Ultralight keeps history per view and drops it
// with the view.
func (v *View) ClearHistory() {}

// ClearCache is a no-op: the resource cache belongs to the view and is
// released by Destroy.
func (v *View) ClearCache() {}

// Eval runs JavaScript in the page. Fire-and-forget (no return value).
func (v *View) Eval(script string) {
	if v.closed {
		return
	}
	ulViewEvalJS(v.viewID, script)
}

// Resize changes the view and texture size.
func (v *View) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if v.closed || (width == v.width && height == v.height) {
		return
	}
	ulViewResize(v.viewID, int32(width), int32(height))
	v.allocate(width, height)
}

// SetBounds sets the screen rectangle for this view. Mouse and scroll are
// only forwarded when the cursor is inside it. Keyboard goes to the focused
// view; an empty rectangle also takes focus away.
func (v *View) SetBounds(r image.Rectangle) {
	v.bounds = r
	if !r.Empty() {
		return
	}
	v.releaseButtons()
	if getFocusedViewID() == v.viewID {
		setFocusedViewID(-1)
	}
}

// SetInputEnabled gates mouse and scroll forwarding. Keyboard input still
// follows focus.
func (v *View) SetInputEnabled(enabled bool) {
	v.inputEnabled = enabled
	if !enabled {
		v.releaseButtons()
	}
}

// releaseButtons forgets held buttons so the next press is sent as a
// fresh down event.
func (v *View) releaseButtons() {
	v.leftDown, v.rightDown = false, false
}

// SetFocus gives this view keyboard focus.
func (v *View) SetFocus() {
	setFocusedViewID(v.viewID)
}

// Texture returns the Ebiten image with the current page rendered.
func (v *View) Texture() *ebiten.Image {
	return v.texture
}

// Update ticks Ultralight, delivers page events, forwards input and copies
// pixels to the texture. Call once per frame.
func (v *View) Update() error {
	if v.closed {
		return nil
	}

	for {
		msg, ok := pollMessage(v.viewID)
		if !ok {
			break
		}
		v.dispatchMessage(msg)
	}
	for {
		msg, ok := pollConsoleMessage(v.viewID)
		if !ok {
			break
		}
		v.log.Debug().Str("console", msg).Msg("page console")
	}

	ulTick()

	loading := ulViewIsLoading(v.viewID) != 0
	if v.loading && !loading {
		v.ready = true
		v.injectHelper()
		if v.cb.OnPageFinished != nil {
			v.cb.OnPageFinished(viewURL(v.viewID))
		}
	}
	v.loading = loading

	if v.closed {
		return nil
	}
	if v.ready {
		v.forwardInput()
	}
	v.copyPixels()
	return nil
}

func (v *View) dispatchMessage(msg string) {
	if url, ok := strings.CutPrefix(msg, navPrefix); ok {
		if v.cb.OnNavigate == nil || !v.cb.OnNavigate(url) {
			v.LoadURL(url)
		}
		return
	}
	if v.cb.OnMessage != nil {
		v.cb.OnMessage(msg)
	}
}

func (v *View) injectHelper() {
	if v.helperInjected {
		return
	}
	ulViewEvalJS(v.viewID, pageHelper)
	v.helperInjected = true
}

func (v *View) copyPixels() {
	ptr := ulViewGetPixels(v.viewID)
	if ptr == 0 {
		return
	}

	w := ulViewGetWidth(v.viewID)
	h := ulViewGetHeight(v.viewID)
	rowBytes := ulViewGetRowBytes(v.viewID)

	if w == 0 || h == 0 || int(w) != v.width || int(h) != v.height {
		ulViewUnlockPixels(v.viewID)
		return
	}

	src := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), uintptr(rowBytes)*uintptr(h))
	bgraToRGBA(v.pixels, src, int(w), int(h), int(rowBytes))

	ulViewUnlockPixels(v.viewID)
	v.texture.WritePixels(v.pixels)
}

// bgraToRGBA converts Ultralight's BGRA rows (with stride) into tightly
// packed RGBA.
func bgraToRGBA(dst, src []byte, w, h, rowBytes int) {
	dstIdx := 0
	for y := 0; y < h; y++ {
		row := src[y*rowBytes : y*rowBytes+w*4]
		for x := 0; x < len(row); x += 4 {
			dst[dstIdx+0] = row[x+2]
			dst[dstIdx+1] = row[x+1]
			dst[dstIdx+2] = row[x+0]
			dst[dstIdx+3] = row[x+3]
			dstIdx += 4
		}
	}
}

// Destroy releases the view. After Destroy the view must not be used.
func (v *View) Destroy() {
	if v.closed {
		return
	}
	v.closed = true
	if getFocusedViewID() == v.viewID {
		setFocusedViewID(-1)
	}
	ulDestroyView(v.viewID)
	unregisterView()
	if v.texture != nil {
		v.texture.Deallocate()
	}
}
