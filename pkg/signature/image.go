package signature

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// whiteThreshold is the 8-bit channel value above which a pixel counts as
// paper rather than ink.
const whiteThreshold = 245

// Prepared is a decoded signature re-encoded as PNG.
type Prepared struct {
	PNG    []byte
	Width  int
	Height int
}

// Prepare decodes data, optionally trims blank margins and re-encodes the
// image as PNG.
func Prepare(data []byte, trim bool) (Prepared, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Prepared{}, fmt.Errorf("signature: decode: %w", err)
	}
	if trim {
		img = Trim(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Prepared{}, fmt.Errorf("signature: encode png: %w", err)
	}
	bounds := img.Bounds()
	return Prepared{PNG: buf.Bytes(), Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

// Trim crops transparent and near-white margins. The image is returned
// unchanged when it contains no ink at all.
func Trim(img image.Image) image.Image {
	bounds := img.Bounds()
	box := image.Rectangle{Min: bounds.Max, Max: bounds.Min}
	found := false
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !isInk(img.At(x, y).RGBA()) {
				continue
			}
			found = true
			if x < box.Min.X {
				box.Min.X = x
			}
			if y < box.Min.Y {
				box.Min.Y = y
			}
			if x+1 > box.Max.X {
				box.Max.X = x + 1
			}
			if y+1 > box.Max.Y {
				box.Max.Y = y + 1
			}
		}
	}
	if !found || box == bounds {
		return img
	}
	return imaging.Crop(img, box)
}

func isInk(r, g, b, a uint32) bool {
	if a == 0 {
		return false
	}
	// RGBA() is alpha-premultiplied; un-premultiply before comparing to white.
	limit := uint32(whiteThreshold) * 0x101
	un := func(c uint32) uint32 { return c * 0xffff / a }
	return un(r) < limit || un(g) < limit || un(b) < limit
}
