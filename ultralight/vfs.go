// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unsafe"
)

// RegisterFile registers a file in Ultralight's VFS.
// filePath is the virtual path (e.g., "ui/style.css"). data is the content.
// Registered files take priority over disk files and must be registered
// before a page references them.
func RegisterFile(filePath string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	norm := normalizePath(filePath)
	if rc := ulVfsRegister(norm, uintptr(unsafe.Pointer(&data[0])), int64(len(data))); rc != 0 {
		return fmt.Errorf("%w: ul_vfs_register failed for %q: code %d", ErrBridge, norm, rc)
	}
	return nil
}

// RegisterFS registers every regular file of fsys in the VFS, keyed by its
// path relative to the FS root.
//
//	//go:embed ui
//	var uiFiles embed.FS
//	factory := ultralight.NewFactory(ultralight.Options{Assets: uiFiles})
//	overlay.ShowFullscreen(ultralight.AssetURL("ui/index.html"))
func RegisterFS(fsys fs.FS) error {
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, readErr := fs.ReadFile(fsys, p)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", p, readErr)
		}
		return RegisterFile(p, data)
	})
	if err != nil {
		return fmt.Errorf("walking FS: %w", err)
	}
	return nil
}

// ClearFiles frees all files registered in the VFS.
func ClearFiles() {
	ulVfsClear()
}

// VFSFileCount returns the number of files registered in the VFS.
func VFSFileCount() int {
	return int(ulVfsCount())
}

// AssetURL returns the file:/// URL Ultralight serves a registered file at.
func AssetURL(filePath string) string {
	return "file:///" + normalizePath(filePath)
}

func normalizePath(p string) string {
	norm := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimLeft(norm, "/")
}
