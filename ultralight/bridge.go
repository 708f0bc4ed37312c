// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

func init() {
	// Ultralight requires all API calls to be made from the same OS thread.
	runtime.LockOSThread()
}

// ErrBridge wraps every failure to load or initialise the bridge library.
var ErrBridge = errors.New("ultralight bridge")

// Mouse event types (ULMouseEventType / ULMouseButton)
const (
	mouseEventTypeMoved = 0
	mouseEventTypeDown  = 1
	mouseEventTypeUp    = 2

	mouseButtonNone  = 0
	mouseButtonLeft  = 1
	mouseButtonRight = 3
)

const scrollEventTypeByPixel = 0

// Key event types for Ultralight
const (
	keyEventRawKeyDown = 0
	keyEventKeyDown    = 1
	keyEventKeyUp      = 2
	keyEventChar       = 3
)

// Key modifier bits
const (
	keyModAlt   = 1
	keyModCtrl  = 2
	keyModMeta  = 4
	keyModShift = 8
)

// View capability bits understood by ul_create_view_ex.
const (
	capJavaScript = 1 << iota
	capLocalStorage
	capDatabase
	capAutoplay
	capFileAccess
	capMixedContent
	capZoom
	capZoomControls
	capWideViewport
	capOverview
	capNoCache
)

var (
	ulInit                  func(baseDir string, debug int32) int32
	ulCreateView            func(width, height int32) int32
	ulCreateViewEx          func(width, height int32, caps uint32, userAgent string) int32
	ulDestroyView           func(viewID int32)
	ulViewLoadURL           func(viewID int32, url string)
	ulViewResize            func(viewID int32, width, height int32)
	ulViewStop              func(viewID int32)
	ulViewCanGoBack         func(viewID int32) int32
	ulViewGoBack            func(viewID int32)
	ulViewIsLoading         func(viewID int32) int32
	ulViewGetURL            func(viewID int32, buf uintptr, bufSize int32) int32
	ulTick                  func()
	ulViewGetPixels         func(viewID int32) uintptr
	ulViewUnlockPixels      func(viewID int32)
	ulViewGetWidth          func(viewID int32) uint32
	ulViewGetHeight         func(viewID int32) uint32
	ulViewGetRowBytes       func(viewID int32) uint32
	ulViewFireMouse         func(viewID int32, eventType, x, y, button int32)
	ulViewFireScroll        func(viewID int32, eventType, dx, dy int32)
	ulViewFireKey           func(viewID int32, keyType int32, vk int32, mods uint32, text string)
	ulViewEvalJS            func(viewID int32, js string)
	ulViewGetMessage        func(viewID int32, buf uintptr, bufSize int32) int32
	ulViewGetConsoleMessage func(viewID int32, buf uintptr, bufSize int32) int32
	ulVfsRegister           func(path string, data uintptr, size int64) int32
	ulVfsClear              func()
	ulVfsCount              func() int32
	ulDestroy               func()
)

var (
	bridgeOnce  sync.Once
	initErr     error
	ulInitOnce  sync.Once
	ulInitErr   error
	viewCount   int32
	viewCountMu sync.Mutex
	// ulInitialized is true between a successful ul_init and ul_destroy.
	// Guarded by viewCountMu.
	ulInitialized bool
)

func initBridge(baseDir string) error {
	bridgeOnce.Do(func() {
		initErr = doInitBridge(baseDir)
	})
	return initErr
}

// ensureULInit calls ul_init(baseDir, debug) once. Must be called after initBridge.
func ensureULInit(baseDir string, debug bool) error {
	ulInitOnce.Do(func() {
		d := int32(0)
		if debug {
			d = 1
		}
		if rc := ulInit(baseDir, d); rc != 0 {
			ulInitErr = fmt.Errorf("%w: ul_init failed with code %d", ErrBridge, rc)
			return
		}
		viewCountMu.Lock()
		ulInitialized = true
		viewCountMu.Unlock()
	})
	return ulInitErr
}

func registerView() {
	viewCountMu.Lock()
	viewCount++
	viewCountMu.Unlock()
}

func unregisterView() {
	viewCountMu.Lock()
	if viewCount > 0 {
		viewCount--
	}
	viewCountMu.Unlock()
}

// Shutdown releases Ultralight once every view has been destroyed. Overlays
// destroy and recreate views freely, so the engine stays up until the game
// calls Shutdown on exit. A later view initialises it again.
func Shutdown() error {
	viewCountMu.Lock()
	defer viewCountMu.Unlock()
	if viewCount > 0 {
		return fmt.Errorf("%w: %d views still alive", ErrBridge, viewCount)
	}
	if !ulInitialized {
		return nil
	}
	ulDestroy()
	ulInitialized = false
	ulInitOnce = sync.Once{}
	ulInitErr = nil
	return nil
}

func resolveAllSymbols(handle uintptr) error {
	for _, reg := range []struct {
		fptr any
		name string
	}{
		{&ulInit, "ul_init"},
		{&ulCreateView, "ul_create_view"},
		{&ulDestroyView, "ul_destroy_view"},
		{&ulViewLoadURL, "ul_view_load_url"},
		{&ulViewResize, "ul_view_resize"},
		{&ulViewStop, "ul_view_stop"},
		{&ulViewCanGoBack, "ul_view_can_go_back"},
		{&ulViewGoBack, "ul_view_go_back"},
		{&ulViewIsLoading, "ul_view_is_loading"},
		{&ulViewGetURL, "ul_view_get_url"},
		{&ulTick, "ul_tick"},
		{&ulViewGetPixels, "ul_view_get_pixels"},
		{&ulViewUnlockPixels, "ul_view_unlock_pixels"},
		{&ulViewGetWidth, "ul_view_get_width"},
		{&ulViewGetHeight, "ul_view_get_height"},
		{&ulViewGetRowBytes, "ul_view_get_row_bytes"},
		{&ulViewFireMouse, "ul_view_fire_mouse"},
		{&ulViewFireScroll, "ul_view_fire_scroll"},
		{&ulViewFireKey, "ul_view_fire_key"},
		{&ulViewEvalJS, "ul_view_eval_js"},
		{&ulViewGetMessage, "ul_view_get_message"},
		{&ulViewGetConsoleMessage, "ul_view_get_console_message"},
		{&ulVfsRegister, "ul_vfs_register"},
		{&ulVfsClear, "ul_vfs_clear"},
		{&ulVfsCount, "ul_vfs_count"},
		{&ulDestroy, "ul_destroy"},
	} {
		if err := registerSymbol(reg.fptr, handle, reg.name); err != nil {
			return fmt.Errorf("%w: %s: %v (recompile %s)", ErrBridge, reg.name, err, bridgeLibName())
		}
	}

	// Older bridges only know ul_create_view; settings are then left at
	// Ultralight's defaults.
	if err := registerSymbol(&ulCreateViewEx, handle, "ul_create_view_ex"); err != nil {
		ulCreateViewEx = nil
	}
	return nil
}

func registerSymbol(fptr any, handle uintptr, name string) error {
	sym, err := getSymbolAddr(handle, name)
	if err != nil {
		return err
	}
	if sym == 0 {
		return fmt.Errorf("symbol %q not found", name)
	}
	purego.RegisterFunc(fptr, sym)
	return nil
}

func readString(fn func(viewID int32, buf uintptr, bufSize int32) int32, viewID int32) (string, bool) {
	var buf [2048]byte
	n := fn(viewID, uintptr(unsafe.Pointer(&buf[0])), int32(len(buf)))
	if n <= 0 {
		return "", false
	}
	if int(n) > len(buf) {
		n = int32(len(buf))
	}
	return string(buf[:n]), true
}

func pollMessage(viewID int32) (string, bool) {
	return readString(ulViewGetMessage, viewID)
}

func pollConsoleMessage(viewID int32) (string, bool) {
	return readString(ulViewGetConsoleMessage, viewID)
}

func viewURL(viewID int32) string {
	url, _ := readString(ulViewGetURL, viewID)
	return url
}
