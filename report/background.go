package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxBackgroundEdge bounds the long edge of an embedded background, which
// is A4 at 300 dpi.
const MaxBackgroundEdge = 2480

// Background is a template image ready to embed.
type Background struct {
	JPEG   []byte
	Width  int
	Height int
	Format string
}

// PrepareBackground decodes PNG, JPEG, GIF, WebP or BMP data, downscales
// large images and re-encodes them as JPEG.
func PrepareBackground(data []byte) (*Background, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("background image is empty")
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode background image: %w", err)
	}

	img := flatten(scaleDown(src, MaxBackgroundEdge))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode background image: %w", err)
	}
	b := img.Bounds()
	return &Background{JPEG: buf.Bytes(), Width: b.Dx(), Height: b.Dy(), Format: format}, nil
}

func scaleDown(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}
	if w >= h {
		h = max(1, h*maxEdge/w)
		w = maxEdge
	} else {
		w = max(1, w*maxEdge/h)
		h = maxEdge
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// flatten paints the image over white so transparent areas do not turn
// black in the JPEG.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
