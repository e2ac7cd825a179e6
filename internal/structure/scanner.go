package structure

import (
	"bytes"
	"sort"

	"github.com/nao1215/stegoscan/internal/model"
)

// signature is one magic-byte pattern in the catalog.
type signature struct {
	// name is the format label reported in matches.
	name string

	// magic is the byte pattern that opens the format.
	magic []byte
}

// signatureCatalog lists the formats searched for inside scanned buffers:
// images, archives, executables, audio, databases, and cryptographic
// containers. The catalog is fixed; matching is byte-exact.
var signatureCatalog = []signature{
	{name: "PNG", magic: []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}},
	{name: "JPEG", magic: []byte{0xff, 0xd8, 0xff}},
	{name: "GIF", magic: []byte("GIF87a")},
	{name: "GIF", magic: []byte("GIF89a")},
	{name: "TIFF", magic: []byte{0x49, 0x49, 0x2a, 0x00}},
	{name: "TIFF", magic: []byte{0x4d, 0x4d, 0x00, 0x2a}},
	{name: "ZIP", magic: []byte{'P', 'K', 0x03, 0x04}},
	{name: "RAR", magic: []byte("Rar!\x1a\x07")},
	{name: "7-Zip", magic: []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c}},
	{name: "GZIP", magic: []byte{0x1f, 0x8b, 0x08}},
	{name: "PDF", magic: []byte("%PDF-")},
	{name: "ELF", magic: []byte{0x7f, 'E', 'L', 'F'}},
	{name: "MZ executable", magic: []byte{'M', 'Z', 0x90, 0x00}},
	{name: "MP3 (ID3)", magic: []byte("ID3")},
	{name: "OGG", magic: []byte("OggS")},
	{name: "FLAC", magic: []byte("fLaC")},
	{name: "RIFF", magic: []byte("RIFF")},
	{name: "SQLite", magic: []byte("SQLite format 3\x00")},
	{name: "LUKS", magic: []byte("LUKS\xba\xbe")},
	{name: "PGP", magic: []byte("-----BEGIN PGP")},
}

// Container terminators used by appended-data detection.
var (
	pngMagic   = signatureCatalog[0].magic
	jpegSOI    = []byte{0xff, 0xd8}
	jpegEOI    = []byte{0xff, 0xd9}
	pngIENDTag = []byte("IEND")
)

// pngIENDTrailer is the IEND tag plus its 4-byte CRC.
const pngIENDTrailer = 8

// DetectEmbeddedFiles scans the whole buffer against the signature catalog
// and reports every match beginning at a non-zero offset. A match at offset
// 0 is the buffer's own leading header and is never reported. Matches come
// back sorted by offset.
func DetectEmbeddedFiles(data []byte) []model.EmbeddedFileMatch {
	var matches []model.EmbeddedFileMatch
	for _, sig := range signatureCatalog {
		if len(sig.magic) > len(data) {
			continue
		}
		for offset := 0; ; {
			idx := bytes.Index(data[offset:], sig.magic)
			if idx < 0 {
				break
			}
			at := offset + idx
			if at > 0 {
				matches = append(matches, model.EmbeddedFileMatch{
					Name:   sig.name,
					Offset: int64(at),
				})
			}
			offset = at + 1
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Offset != matches[j].Offset {
			return matches[i].Offset < matches[j].Offset
		}
		return matches[i].Name < matches[j].Name
	})
	return matches
}

// DetectAppendedData looks for bytes trailing a known container terminator:
// the JPEG End-Of-Image marker or the PNG IEND chunk with its CRC. The
// terminator is located by scanning from the end of the buffer so that
// embedded thumbnails with their own terminators do not confuse the result.
// Buffers that are not JPEG or PNG containers yield the zero result.
func DetectAppendedData(data []byte) model.AppendedDataResult {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return appendedAfterPNG(data)
	case bytes.HasPrefix(data, jpegSOI):
		return appendedAfterJPEG(data)
	default:
		return model.AppendedDataResult{}
	}
}

// appendedAfterJPEG reports bytes past the last EOI marker.
func appendedAfterJPEG(data []byte) model.AppendedDataResult {
	idx := bytes.LastIndex(data, jpegEOI)
	if idx < 0 {
		return model.AppendedDataResult{}
	}
	end := int64(idx + len(jpegEOI))
	if end >= int64(len(data)) {
		return model.AppendedDataResult{Format: "JPEG"}
	}
	return model.AppendedDataResult{
		HasAppended: true,
		Format:      "JPEG",
		Offset:      end,
		Size:        int64(len(data)) - end,
	}
}

// appendedAfterPNG reports bytes past the last IEND chunk and its CRC.
func appendedAfterPNG(data []byte) model.AppendedDataResult {
	idx := bytes.LastIndex(data, pngIENDTag)
	if idx < 0 {
		return model.AppendedDataResult{}
	}
	end := int64(idx + pngIENDTrailer)
	if end >= int64(len(data)) {
		return model.AppendedDataResult{Format: "PNG"}
	}
	return model.AppendedDataResult{
		HasAppended: true,
		Format:      "PNG",
		Offset:      end,
		Size:        int64(len(data)) - end,
	}
}
