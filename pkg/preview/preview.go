// Package preview draws the fragment quads of a frame, coloured by line.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"subhit/pkg/hittest"
)

var palette = []color.RGBA{
	{0xe6, 0x19, 0x4b, 0xa0},
	{0x3c, 0xb4, 0x4b, 0xa0},
	{0x43, 0x63, 0xd8, 0xa0},
	{0xf5, 0x82, 0x31, 0xa0},
	{0x91, 0x1e, 0xb4, 0xa0},
	{0x46, 0xf0, 0xf0, 0xa0},
}

var unresolved = color.RGBA{0x80, 0x80, 0x80, 0xa0}

// Color returns the fill used for boxes of line id.
func Color(id int) color.RGBA {
	if id < 0 {
		return unresolved
	}
	return palette[id%len(palette)]
}

// Draw renders boxes onto a black width x height canvas.
func Draw(boxes []hittest.Box, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for _, b := range boxes {
		z := vector.NewRasterizer(width, height)
		z.DrawOp = draw.Over
		c := b.Corners()
		z.MoveTo(px(c[0].X), px(c[0].Y))
		for _, p := range c[1:] {
			z.LineTo(px(p.X), px(p.Y))
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(Color(b.LineID)), image.Point{})
	}
	return img
}

// WritePNG encodes a preview of boxes as PNG.
func WritePNG(w io.Writer, boxes []hittest.Box, width, height int) error {
	return png.Encode(w, Draw(boxes, width, height))
}

func px(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
