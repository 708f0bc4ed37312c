// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
)

func TestEmptyBoundsReleasesButtonsAndFocus(t *testing.T) {
	v := &View{viewID: 42, inputEnabled: true}
	v.SetBounds(image.Rect(0, 0, 100, 100))
	v.SetFocus()
	v.leftDown, v.rightDown = true, true
	t.Cleanup(func() { setFocusedViewID(-1) })

	v.SetBounds(image.Rectangle{})

	assert.False(t, v.leftDown, "next press must fire a fresh down event")
	assert.False(t, v.rightDown)
	assert.Equal(t, int32(-1), getFocusedViewID())
}

func TestNonEmptyBoundsKeepButtons(t *testing.T) {
	v := &View{viewID: 7, inputEnabled: true, leftDown: true}

	v.SetBounds(image.Rect(10, 10, 20, 20))

	assert.True(t, v.leftDown)
	assert.Equal(t, image.Rect(10, 10, 20, 20), v.bounds)
}

func TestDisablingInputReleasesButtons(t *testing.T) {
	v := &View{viewID: 3, inputEnabled: true, leftDown: true}

	v.SetInputEnabled(false)
	assert.False(t, v.inputEnabled)
	assert.False(t, v.leftDown)

	v.SetInputEnabled(true)
	assert.True(t, v.inputEnabled)
}

func TestCapabilities(t *testing.T) {
	caps := capabilities(weboverlay.DefaultSettings())
	assert.NotZero(t, caps&capJavaScript)
	assert.NotZero(t, caps&capWideViewport)
	assert.Zero(t, caps&capZoomControls)
	assert.Zero(t, caps&capNoCache)

	s := weboverlay.DefaultSettings()
	s.Cache = weboverlay.CacheNoCache
	assert.NotZero(t, capabilities(s)&capNoCache)
}

func TestBGRAToRGBAHonoursStride(t *testing.T) {
	// 1x2 image with 8 bytes per row; the trailing 4 bytes of each row are padding.
	src := []byte{
		1, 2, 3, 4, 9, 9, 9, 9,
		5, 6, 7, 8, 9, 9, 9, 9,
	}
	dst := make([]byte, 8)

	bgraToRGBA(dst, src, 1, 2, 8)

	assert.Equal(t, []byte{3, 2, 1, 4, 7, 6, 5, 8}, dst)
}

func TestAssetURL(t *testing.T) {
	assert.Equal(t, "file:///ui/index.html", AssetURL(`/ui\index.html`))
	assert.Equal(t, "file:///ui/style.css", AssetURL("ui/./css/../style.css"))
}
