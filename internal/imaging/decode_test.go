package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG encodes an image to PNG bytes for test input.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestDecode tests pixel plane extraction from encoded images.
func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("rgba png yields three planes", func(t *testing.T) {
		t.Parallel()

		img := image.NewRGBA(image.Rect(0, 0, 4, 3))
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				img.SetRGBA(x, y, color.RGBA{R: uint8(10 * x), G: uint8(20 * y), B: 200, A: 255})
			}
		}

		sample, format, err := Decode(encodePNG(t, img))
		if err != nil {
			t.Fatal(err)
		}
		if format != "png" {
			t.Errorf("format = %q, want png", format)
		}
		if sample.Width != 4 || sample.Height != 3 {
			t.Errorf("dimensions %dx%d, want 4x3", sample.Width, sample.Height)
		}
		if sample.ChannelCount() != 3 {
			t.Fatalf("got %d planes, want 3", sample.ChannelCount())
		}
		if got := sample.Channel(0)[2]; got != 20 {
			t.Errorf("R(2,0) = %d, want 20", got)
		}
		if got := sample.Channel(1)[2*4]; got != 40 {
			t.Errorf("G(0,2) = %d, want 40", got)
		}
		if got := sample.Channel(2)[0]; got != 200 {
			t.Errorf("B(0,0) = %d, want 200", got)
		}
	})

	t.Run("grayscale png yields one plane", func(t *testing.T) {
		t.Parallel()

		img := image.NewGray(image.Rect(0, 0, 2, 2))
		img.SetGray(0, 0, color.Gray{Y: 7})
		img.SetGray(1, 1, color.Gray{Y: 255})

		sample, _, err := Decode(encodePNG(t, img))
		if err != nil {
			t.Fatal(err)
		}
		if sample.ChannelCount() != 1 {
			t.Fatalf("got %d planes, want 1", sample.ChannelCount())
		}
		if sample.ChannelNames[0] != "Gray" {
			t.Errorf("channel named %q, want Gray", sample.ChannelNames[0])
		}
		if sample.Channel(0)[0] != 7 || sample.Channel(0)[3] != 255 {
			t.Errorf("plane = %v, want [7 0 0 255]", sample.Channel(0))
		}
	})

	t.Run("non-image input returns an error", func(t *testing.T) {
		t.Parallel()
		if _, _, err := Decode([]byte("definitely not an image")); err == nil {
			t.Error("expected decode error for non-image input")
		}
	})

	t.Run("empty input returns an error", func(t *testing.T) {
		t.Parallel()
		if _, _, err := Decode(nil); err == nil {
			t.Error("expected decode error for empty input")
		}
	})
}
