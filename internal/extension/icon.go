package extension

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

var (
	iconFill  = color.NRGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	iconSpark = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// renderIcon draws the toolbar icon: a filled circle with a four-point
// sparkle in the middle.
func renderIcon(size int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	r := float64(size) / 2
	arm := r * 0.6
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			if dx*dx+dy*dy > r*r {
				continue
			}
			img.SetNRGBA(x, y, iconFill)
			if abs(dx)+abs(dy)*4 <= arm || abs(dy)+abs(dx)*4 <= arm {
				img.SetNRGBA(x, y, iconSpark)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
