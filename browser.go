// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import "image"

// Browser is a web rendering instance owned by an overlay. All methods are
// called on the UI goroutine.
type Browser interface {
	// LoadURL navigates to url.
	LoadURL(url string)
	// CanGoBack reports whether there is backward history.
	CanGoBack() bool
	// GoBack navigates one step back.
	GoBack()
	// Stop cancels any in-flight load.
	Stop()
	ClearHistory()
	ClearCache()
	// Eval runs script in the current page. The result is discarded.
	Eval(script string)
	// Resize changes the rendering size in pixels.
	Resize(width, height int)
	// SetBounds sets the screen rectangle that receives mouse input.
	// An empty rectangle disables input.
	SetBounds(r image.Rectangle)
	// SetFocus routes keyboard input to this browser.
	SetFocus()
	// Update ticks the browser once per frame. Callbacks fire from here.
	Update() error
	// Destroy releases the instance. It must not be used afterwards.
	Destroy()
}

// BrowserCallbacks are installed on a browser when it is created. They are
// invoked on the UI goroutine.
type BrowserCallbacks struct {
	// OnNavigate is asked before the page leaves for url (popups, links with
	// a target). Returning true means the request was handled.
	OnNavigate func(url string) bool
	// OnPageFinished is called once a page has finished loading.
	OnPageFinished func(url string)
	// OnMessage is called when the page sends a message with go.send(msg).
	OnMessage func(msg string)
}

// BrowserFactory creates a browser of the given pixel size configured with
// settings.
type BrowserFactory func(width, height int, settings Settings, cb BrowserCallbacks) (Browser, error)
