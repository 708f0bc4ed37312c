// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package stage

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	weboverlay "github.com/YindSoft/ultralight-weboverlay"
)

// textured is implemented by browsers that render into an Ebiten image.
type textured interface {
	Texture() *ebiten.Image
}

// glyphCache lazily parses the Go fonts used for the dismiss glyph.
type glyphCache struct {
	regular, bold *text.GoTextFaceSource
	failed        bool
}

func (g *glyphCache) source(bold bool) *text.GoTextFaceSource {
	if g.failed {
		return nil
	}
	if g.regular == nil {
		regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			g.failed = true
			return nil
		}
		boldSrc, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			g.failed = true
			return nil
		}
		g.regular, g.bold = regular, boldSrc
	}
	if bold {
		return g.bold
	}
	return g.regular
}

func (s *Stage) drawContainer(screen *ebiten.Image, c *weboverlay.Container, scale float64) {
	r := c.Bounds(s.stack.Size())
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c.Background(), false)

	if t, ok := c.Browser().(textured); ok {
		if tex := t.Texture(); tex != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
			screen.DrawImage(tex, op)
		}
	}

	s.drawDismiss(screen, c.DismissControl(), r, scale)
}

func (s *Stage) drawDismiss(screen *ebiten.Image, d weboverlay.DismissControl, bounds image.Rectangle, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	dr := d.Rect(bounds, scale)
	if dr.Empty() {
		return
	}
	radius := float32(dr.Dx()) / 2
	cx := float32(dr.Min.X) + radius
	cy := float32(dr.Min.Y) + radius
	vector.DrawFilledCircle(screen, cx, cy, radius, d.Fill, true)

	src := s.glyphs.source(d.GlyphBold)
	if src == nil || d.Glyph == "" {
		// No font: draw the cross with two strokes.
		arm := radius * 0.4
		width := float32(2 * scale)
		vector.StrokeLine(screen, cx-arm, cy-arm, cx+arm, cy+arm, width, color.White, true)
		vector.StrokeLine(screen, cx-arm, cy+arm, cx+arm, cy-arm, width, color.White, true)
		return
	}

	face := &text.GoTextFace{Source: src, Size: d.GlyphSize * scale}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, d.Glyph, face, op)
}
