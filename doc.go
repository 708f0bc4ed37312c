// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package weboverlay shows an embedded web browser above an Ebitengine game
// and lets the game drive it with simple navigation and JavaScript commands.
//
// An [Overlay] owns at most one container/browser pair. The pair is created
// lazily by the first Show, hidden by Hide or by the user pressing the
// dismiss control, and released only by Destroy:
//
//	st := stage.New()
//	ov := weboverlay.New(weboverlay.Options{
//	    Host:       st,
//	    UI:         st,
//	    NewBrowser: ultralight.NewFactory(ultralight.Options{}),
//	    Notifier:   bus,
//	})
//
//	ov.Show("https://example.com", 0, 0, 0, 0) // fullscreen
//	ov.Show("https://example.com", 10, 20, 300, 400) // 300x400 at (10,20)
//
//	// In Ebiten Update():
//	st.Update()
//
//	// In Ebiten Draw(), after drawing the game:
//	st.Draw(screen)
//
// Every operation may be called from any goroutine. Operations are posted to
// the UI goroutine (the one draining the [UIThread]) and never block the
// caller. Failures on the UI goroutine are logged, not returned.
//
// The overlay talks back to the host through a [Notifier] using a channel
// name and a method name:
//
//	("host-overlay-channel", "OnWebViewPageLoaded", url)
//	("host-overlay-channel", "OnWebViewClosed", "")
//	("host-overlay-channel", "OnWebViewMessageReceived", msg)
//
// The package itself does not import Ebitengine. The ultralight package
// provides the browser and the stage package provides the window layer.
package weboverlay
