// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import "errors"

var (
	// ErrNoWindow is logged when the host has no active window to attach to.
	ErrNoWindow = errors.New("weboverlay: no active window")
	// ErrNoListener is logged when a notification has nobody to deliver to.
	ErrNoListener = errors.New("weboverlay: no host listener")
	// ErrClosed is logged when an operation is requested after Close.
	ErrClosed = errors.New("weboverlay: overlay closed")
)
