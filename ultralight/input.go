// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Focus: only the focused view receives keyboard. Mouse/scroll still require cursor in bounds.
// Clicking inside a view gives it focus.
var (
	focusedViewID   int32 = -1
	focusedViewIDMu sync.Mutex
)

func getFocusedViewID() int32 {
	focusedViewIDMu.Lock()
	defer focusedViewIDMu.Unlock()
	return focusedViewID
}

func setFocusedViewID(viewID int32) {
	focusedViewIDMu.Lock()
	defer focusedViewIDMu.Unlock()
	focusedViewID = viewID
}

func (v *View) forwardInput() {
	mx, my := ebiten.CursorPosition()
	inBounds := v.inputEnabled && image.Pt(mx, my).In(v.bounds)

	if inBounds && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		setFocusedViewID(v.viewID)
	}

	if inBounds {
		lx, ly := mx-v.bounds.Min.X, my-v.bounds.Min.Y

		if lx != v.mouseX || ly != v.mouseY {
			ulViewFireMouse(v.viewID, mouseEventTypeMoved, int32(lx), int32(ly), mouseButtonNone)
			v.mouseX, v.mouseY = lx, ly
		}

		v.leftDown = v.forwardButton(ebiten.MouseButtonLeft, mouseButtonLeft, v.leftDown, lx, ly)
		v.rightDown = v.forwardButton(ebiten.MouseButtonRight, mouseButtonRight, v.rightDown, lx, ly)

		if _, scrollY := ebiten.Wheel(); scrollY != 0 {
			ulViewFireScroll(v.viewID, scrollEventTypeByPixel, 0, int32(scrollY*100))
		}
	}

	if getFocusedViewID() == v.viewID {
		v.forwardKeyboard()
	}
}

// forwardButton fires down/up transitions for one mouse button and returns
// the new pressed state.
func (v *View) forwardButton(button ebiten.MouseButton, ulButton int32, wasDown bool, x, y int) bool {
	pressed := ebiten.IsMouseButtonPressed(button)
	switch {
	case pressed && !wasDown:
		ulViewFireMouse(v.viewID, mouseEventTypeDown, int32(x), int32(y), ulButton)
	case !pressed && wasDown:
		ulViewFireMouse(v.viewID, mouseEventTypeUp, int32(x), int32(y), ulButton)
	}
	return pressed
}

func (v *View) forwardKeyboard() {
	// RawKeyDown triggers accelerators like Ctrl+C/V/X/A
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if vk, mods := keyToVK(key); vk != 0 {
			ulViewFireKey(v.viewID, keyEventRawKeyDown, vk, mods, "")
		}
	}
	// Character input from the OS text input system (shift, layout, IME)
	for _, r := range ebiten.AppendInputChars(nil) {
		ulViewFireKey(v.viewID, keyEventChar, 0, 0, string(r))
	}
	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		if vk, mods := keyToVK(key); vk != 0 {
			ulViewFireKey(v.viewID, keyEventKeyUp, vk, mods, "")
		}
	}
}

func keyToVK(key ebiten.Key) (int32, uint32) {
	mods := uint32(0)
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= keyModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= keyModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= keyModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= keyModMeta
	}
	return ebitenKeyToVK(key), mods
}

// Windows virtual-key codes for keys outside the contiguous ranges.
var virtualKeys = map[ebiten.Key]int32{
	ebiten.KeyBackspace: 0x08, ebiten.KeyTab: 0x09,
	ebiten.KeyEnter: 0x0D, ebiten.KeyNumpadEnter: 0x0D,
	ebiten.KeyEscape: 0x1B, ebiten.KeySpace: 0x20,
	ebiten.KeyDelete: 0x2E, ebiten.KeyInsert: 0x2D,

	ebiten.KeyHome: 0x24, ebiten.KeyEnd: 0x23,
	ebiten.KeyPageUp: 0x21, ebiten.KeyPageDown: 0x22,
	ebiten.KeyArrowLeft: 0x25, ebiten.KeyArrowUp: 0x26,
	ebiten.KeyArrowRight: 0x27, ebiten.KeyArrowDown: 0x28,

	ebiten.KeyShift: 0x10, ebiten.KeyShiftLeft: 0x10, ebiten.KeyShiftRight: 0x10,
	ebiten.KeyControl: 0x11, ebiten.KeyControlLeft: 0x11, ebiten.KeyControlRight: 0x11,
	ebiten.KeyAlt: 0x12, ebiten.KeyAltLeft: 0x12, ebiten.KeyAltRight: 0x12,
	ebiten.KeyMeta: 0x5B, ebiten.KeyMetaLeft: 0x5B, ebiten.KeyMetaRight: 0x5B,

	ebiten.KeyCapsLock: 0x14, ebiten.KeyNumLock: 0x90, ebiten.KeyScrollLock: 0x91,
	ebiten.KeyPause: 0x13, ebiten.KeyPrintScreen: 0x2C, ebiten.KeyContextMenu: 0x5D,

	ebiten.KeyF1: 0x70, ebiten.KeyF2: 0x71, ebiten.KeyF3: 0x72, ebiten.KeyF4: 0x73,
	ebiten.KeyF5: 0x74, ebiten.KeyF6: 0x75, ebiten.KeyF7: 0x76, ebiten.KeyF8: 0x77,
	ebiten.KeyF9: 0x78, ebiten.KeyF10: 0x79, ebiten.KeyF11: 0x7A, ebiten.KeyF12: 0x7B,

	ebiten.KeyNumpadMultiply: 0x6A, ebiten.KeyNumpadAdd: 0x6B,
	ebiten.KeyNumpadSubtract: 0x6D, ebiten.KeyNumpadDecimal: 0x6E,
	ebiten.KeyNumpadDivide: 0x6F, ebiten.KeyNumpadEqual: 0xBB,

	// VK_OEM codes
	ebiten.KeySemicolon: 0xBA, ebiten.KeyEqual: 0xBB, ebiten.KeyComma: 0xBC,
	ebiten.KeyMinus: 0xBD, ebiten.KeyPeriod: 0xBE, ebiten.KeySlash: 0xBF,
	ebiten.KeyBackquote: 0xC0, ebiten.KeyBracketLeft: 0xDB,
	ebiten.KeyBackslash: 0xDC, ebiten.KeyIntlBackslash: 0xDC,
	ebiten.KeyBracketRight: 0xDD, ebiten.KeyQuote: 0xDE,
}

func ebitenKeyToVK(key ebiten.Key) int32 {
	if vk, ok := virtualKeys[key]; ok {
		return vk
	}
	switch {
	case key >= ebiten.KeyDigit0 && key <= ebiten.KeyDigit9:
		return 0x30 + int32(key-ebiten.KeyDigit0)
	case key >= ebiten.KeyA && key <= ebiten.KeyZ:
		return 0x41 + int32(key-ebiten.KeyA)
	case key >= ebiten.KeyNumpad0 && key <= ebiten.KeyNumpad9:
		return 0x60 + int32(key-ebiten.KeyNumpad0)
	}
	return 0
}
