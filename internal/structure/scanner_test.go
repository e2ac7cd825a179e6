package structure

import (
	"bytes"
	"testing"
)

// minimalPNG returns a syntactically plausible PNG prefix: magic, a dummy
// chunk, and the IEND chunk with a CRC placeholder.
func minimalPNG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	buf.Write([]byte{0x00, 0x00, 0x00, 0x0d})
	buf.WriteString("IHDR")
	buf.Write(bytes.Repeat([]byte{0x01}, 13))
	buf.Write([]byte{0xaa, 0xbb, 0xcc, 0xdd})
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00})
	buf.WriteString("IEND")
	buf.Write([]byte{0xae, 0x42, 0x60, 0x82})
	return buf.Bytes()
}

// minimalJPEG returns SOI, an APP0-like filler segment, and EOI.
func minimalJPEG() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe0, 0x00, 0x10})
	buf.Write(bytes.Repeat([]byte{0x20}, 14))
	buf.Write([]byte{0xff, 0xd9})
	return buf.Bytes()
}

// TestDetectEmbeddedFiles tests the signature catalog scan.
func TestDetectEmbeddedFiles(t *testing.T) {
	t.Parallel()

	t.Run("zip after png matches once at the right offset", func(t *testing.T) {
		t.Parallel()

		png := minimalPNG()
		buf := append([]byte{}, png...)
		zipOffset := int64(len(buf))
		buf = append(buf, 'P', 'K', 0x03, 0x04)
		buf = append(buf, bytes.Repeat([]byte{0x00}, 64)...)

		matches := DetectEmbeddedFiles(buf)
		if len(matches) != 1 {
			t.Fatalf("got %d matches (%+v), want exactly 1", len(matches), matches)
		}
		if matches[0].Name != "ZIP" {
			t.Errorf("Name = %q, want ZIP", matches[0].Name)
		}
		if matches[0].Offset != zipOffset {
			t.Errorf("Offset = %d, want %d", matches[0].Offset, zipOffset)
		}
	})

	t.Run("own leading header is never reported", func(t *testing.T) {
		t.Parallel()
		matches := DetectEmbeddedFiles(minimalPNG())
		if len(matches) != 0 {
			t.Errorf("got matches %+v for a plain container, want none", matches)
		}
	})

	t.Run("multiple embedded signatures come back sorted by offset", func(t *testing.T) {
		t.Parallel()

		buf := bytes.Repeat([]byte{0x00}, 256)
		copy(buf[200:], []byte("%PDF-1.7"))
		copy(buf[40:], []byte{'P', 'K', 0x03, 0x04})
		copy(buf[100:], []byte{0x7f, 'E', 'L', 'F'})

		matches := DetectEmbeddedFiles(buf)
		if len(matches) != 3 {
			t.Fatalf("got %d matches (%+v), want 3", len(matches), matches)
		}
		wantNames := []string{"ZIP", "ELF", "PDF"}
		wantOffsets := []int64{40, 100, 200}
		for i := range matches {
			if matches[i].Name != wantNames[i] || matches[i].Offset != wantOffsets[i] {
				t.Errorf("match %d = %+v, want %s at %d", i, matches[i], wantNames[i], wantOffsets[i])
			}
		}
	})

	t.Run("buffer shorter than any signature yields no matches", func(t *testing.T) {
		t.Parallel()
		if matches := DetectEmbeddedFiles([]byte{0x01}); len(matches) != 0 {
			t.Errorf("got %+v, want none", matches)
		}
	})

	t.Run("repeated signature reports every occurrence", func(t *testing.T) {
		t.Parallel()

		buf := bytes.Repeat([]byte{0x00}, 128)
		copy(buf[16:], []byte{0x1f, 0x8b, 0x08})
		copy(buf[64:], []byte{0x1f, 0x8b, 0x08})

		matches := DetectEmbeddedFiles(buf)
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(matches))
		}
	})
}

// TestDetectAppendedData tests trailing-data detection past container
// terminators.
func TestDetectAppendedData(t *testing.T) {
	t.Parallel()

	t.Run("jpeg with trailing bytes", func(t *testing.T) {
		t.Parallel()

		jpeg := minimalJPEG()
		trailing := bytes.Repeat([]byte{'X'}, 37)
		buf := append(append([]byte{}, jpeg...), trailing...)

		result := DetectAppendedData(buf)
		if !result.HasAppended {
			t.Fatal("expected appended data")
		}
		if result.Format != "JPEG" {
			t.Errorf("Format = %q, want JPEG", result.Format)
		}
		if result.Offset != int64(len(jpeg)) {
			t.Errorf("Offset = %d, want %d (immediately after EOI)", result.Offset, len(jpeg))
		}
		if result.Size != int64(len(trailing)) {
			t.Errorf("Size = %d, want %d", result.Size, len(trailing))
		}
	})

	t.Run("jpeg ending exactly at EOI is clean", func(t *testing.T) {
		t.Parallel()
		result := DetectAppendedData(minimalJPEG())
		if result.HasAppended {
			t.Errorf("got %+v, want no appended data", result)
		}
	})

	t.Run("png with trailing bytes", func(t *testing.T) {
		t.Parallel()

		png := minimalPNG()
		buf := append(append([]byte{}, png...), []byte("hidden archive here")...)

		result := DetectAppendedData(buf)
		if !result.HasAppended {
			t.Fatal("expected appended data")
		}
		if result.Format != "PNG" {
			t.Errorf("Format = %q, want PNG", result.Format)
		}
		if result.Offset != int64(len(png)) {
			t.Errorf("Offset = %d, want %d (after IEND and CRC)", result.Offset, len(png))
		}
		if result.Size != 19 {
			t.Errorf("Size = %d, want 19", result.Size)
		}
	})

	t.Run("png ending at IEND CRC is clean", func(t *testing.T) {
		t.Parallel()
		if result := DetectAppendedData(minimalPNG()); result.HasAppended {
			t.Errorf("got %+v, want no appended data", result)
		}
	})

	t.Run("non-container buffers yield the zero result", func(t *testing.T) {
		t.Parallel()
		inputs := [][]byte{nil, {0x01}, []byte("plain text file contents")}
		for _, data := range inputs {
			if result := DetectAppendedData(data); result.HasAppended {
				t.Errorf("got %+v for non-container input, want zero result", result)
			}
		}
	})
}
