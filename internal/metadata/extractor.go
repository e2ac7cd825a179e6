package metadata

import (
	"bytes"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/stegoscan/internal/model"
)

// OversizedCommentLength is the comment length (in characters) above which
// a comment tag is flagged. Legitimate comments are short; multi-hundred
// byte comments are a classic stash for encoded payloads.
const OversizedCommentLength = 256

// commentTags are the free-text tags checked against OversizedCommentLength.
var commentTags = map[string]bool{
	"UserComment":      true,
	"ImageDescription": true,
	"XPComment":        true,
}

// xmpMarker opens an embedded XMP packet.
var xmpMarker = []byte("<x:xmpmeta")

// Extract parses EXIF tags out of an image buffer and runs the suspicion
// heuristics. Buffers without EXIF data yield an unavailable report.
func Extract(data []byte) *model.MetadataReport {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return &model.MetadataReport{
			Available: false,
			Reason:    "no EXIF metadata present",
		}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return &model.MetadataReport{
			Available: false,
			Reason:    fmt.Sprintf("EXIF parse failed: %v", err),
		}
	}

	report := &model.MetadataReport{
		Available: true,
		Tags:      make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		report.Tags[entry.TagName] = entry.Formatted
	}
	report.Suspicious = inspectTags(report.Tags, data)
	return report
}

// inspectTags applies the suspicion heuristics over the flattened tag map.
func inspectTags(tags map[string]string, data []byte) []string {
	var notes []string

	for name := range commentTags {
		value, ok := tags[name]
		if !ok {
			continue
		}
		if len(value) > OversizedCommentLength {
			notes = append(notes, fmt.Sprintf("%s is %d characters long; oversized comments frequently carry encoded payloads", name, len(value)))
		}
	}

	if _, ok := tags["MakerNote"]; ok {
		notes = append(notes, "MakerNote present: an opaque vendor blob that can hold arbitrary data")
	}

	if bytes.Contains(data, xmpMarker) {
		notes = append(notes, "embedded XMP packet present: review it for non-standard fields")
	}

	return notes
}
