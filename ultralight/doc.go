// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

// Package ultralight implements weboverlay.Browser with Ultralight 1.4,
// rendering each view into an Ebiten texture.
//
// The engine is reached through a small C bridge loaded at runtime with
// purego: ul_bridge.dll on Windows, libul_bridge.so on Linux and
// libul_bridge.dylib on macOS. The bridge and the Ultralight SDK libraries
// must be next to the executable or in [Options.BaseDir].
//
// Views are created through [NewFactory]. When the bridge exports
// ul_create_view_ex the overlay's capability settings and user agent are
// applied; older bridges fall back to Ultralight's defaults.
//
// Page-finished events are derived from the view's loading flag on each
// Update. After every load a helper script installs go.send (JS -> Go
// messages through the native __goSend binding) and routes window.open and
// targeted links back into the same view.
//
// Mouse and scroll input are forwarded when the cursor is inside the view's
// bounds. Keyboard input goes to whichever view has focus.
package ultralight
