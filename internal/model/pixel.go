package model

// PixelSample is a decoded grid of per-channel pixel intensities produced by
// the image-decoding collaborator and consumed read-only by the LSB
// steganalysis suite. Absence of a PixelSample is a valid state: non-image
// inputs simply skip the LSB pass.
type PixelSample struct {
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// ChannelNames labels each plane, in plane order (e.g. "R", "G", "B").
	ChannelNames []string

	// Planes holds one intensity array per channel, row-major, one byte
	// per pixel in [0,255]. Each plane has Width*Height entries.
	Planes [][]uint8
}

// ChannelCount returns the number of decoded channels.
func (p *PixelSample) ChannelCount() int {
	return len(p.Planes)
}

// Channel returns the named plane, or nil if the index is out of range.
func (p *PixelSample) Channel(i int) []uint8 {
	if i < 0 || i >= len(p.Planes) {
		return nil
	}
	return p.Planes[i]
}
