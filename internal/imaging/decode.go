package imaging

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for the container formats the scanner accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nao1215/stegoscan/internal/model"
)

// Decode decodes an image buffer into a PixelSample and reports the decoded
// container format. Grayscale images yield a single "Gray" plane; everything
// else yields "R", "G", "B" planes. Intensities are 8-bit regardless of the
// source bit depth.
func Decode(data []byte) (*model.PixelSample, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, "", fmt.Errorf("decode image: empty %dx%d image", width, height)
	}

	if gray, ok := img.(*image.Gray); ok {
		return graySample(gray, width, height), format, nil
	}
	return colorSample(img, width, height), format, nil
}

// graySample extracts the single luminance plane.
func graySample(img *image.Gray, width, height int) *model.PixelSample {
	plane := make([]uint8, width*height)
	bounds := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			plane[y*width+x] = img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
		}
	}
	return &model.PixelSample{
		Width:        width,
		Height:       height,
		ChannelNames: []string{"Gray"},
		Planes:       [][]uint8{plane},
	}
}

// colorSample extracts R, G, B planes from any color model, dropping alpha.
func colorSample(img image.Image, width, height int) *model.PixelSample {
	r := make([]uint8, width*height)
	g := make([]uint8, width*height)
	b := make([]uint8, width*height)

	bounds := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := y*width + x
			r[i] = uint8(cr >> 8)
			g[i] = uint8(cg >> 8)
			b[i] = uint8(cb >> 8)
		}
	}
	return &model.PixelSample{
		Width:        width,
		Height:       height,
		ChannelNames: []string{"R", "G", "B"},
		Planes:       [][]uint8{r, g, b},
	}
}
