package formats

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/vovakirdan/shotfinder/internal/core"
	"github.com/vovakirdan/shotfinder/internal/level"
)

// Green channel thresholds of the hazard textures.
const (
	AcidGreen   = 80
	StickyGreen = 40
)

// decodeMask turns a base64 PNG texture into a hazard mask covering a
// w x h node centered at pos. The texture is scaled to the node size by
// nearest neighbour; a pixel is a hazard when its green channel reaches
// threshold. A texture without a hazard pixel yields no mask.
func decodeMask(b64 string, pos core.Vec, w, h int, threshold uint8) (*level.Mask, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, badMask("base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, badMask("png: %v", err)
	}
	if w <= 0 || h <= 0 {
		return nil, badMask("needs a node size, got %dx%d", w, h)
	}
	hits := rasterize(img, w, h, threshold)
	left := math.Trunc(pos.X - float64(w)/2)
	top := math.Ceil(pos.Y + float64(h)/2)
	m := level.NewMask(left, top, w, h, hits)
	if m.Count() == 0 {
		return nil, nil
	}
	return m, nil
}

func badMask(format string, args ...any) error {
	return level.ValidationError{Code: "BAD_MASK", Message: "mask " + fmt.Sprintf(format, args...)}
}

func rasterize(img image.Image, w, h int, threshold uint8) []bool {
	b := img.Bounds()
	hits := make([]bool, w*h)
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			hits[y*w+x] = c.G >= threshold
		}
	}
	return hits
}
