package metadata

import (
	"strings"
	"testing"
)

// TestExtract tests the unavailable paths; real EXIF payloads are covered
// by the heuristics tests below, which operate on the tag map directly.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("non-image input is unavailable", func(t *testing.T) {
		t.Parallel()
		report := Extract([]byte("plain text, no EXIF anywhere"))
		if report.Available {
			t.Error("expected unavailable report")
		}
		if report.Reason == "" {
			t.Error("unavailable report needs a reason")
		}
	})

	t.Run("empty input is unavailable", func(t *testing.T) {
		t.Parallel()
		if report := Extract(nil); report.Available {
			t.Error("expected unavailable report")
		}
	})
}

// TestInspectTags tests the suspicion heuristics.
func TestInspectTags(t *testing.T) {
	t.Parallel()

	t.Run("oversized comment is flagged", func(t *testing.T) {
		t.Parallel()
		tags := map[string]string{
			"UserComment": strings.Repeat("QUJDRA==", 64),
			"Make":        "ExampleCam",
		}
		notes := inspectTags(tags, nil)
		if len(notes) != 1 {
			t.Fatalf("got %d notes (%v), want 1", len(notes), notes)
		}
		if !strings.Contains(notes[0], "UserComment") {
			t.Errorf("note %q does not name the tag", notes[0])
		}
	})

	t.Run("short comment is not flagged", func(t *testing.T) {
		t.Parallel()
		tags := map[string]string{"UserComment": "holiday photo"}
		if notes := inspectTags(tags, nil); len(notes) != 0 {
			t.Errorf("got notes %v, want none", notes)
		}
	})

	t.Run("maker note is flagged", func(t *testing.T) {
		t.Parallel()
		tags := map[string]string{"MakerNote": "opaque"}
		notes := inspectTags(tags, nil)
		if len(notes) != 1 || !strings.Contains(notes[0], "MakerNote") {
			t.Errorf("got notes %v, want one MakerNote note", notes)
		}
	})

	t.Run("xmp packet in buffer is flagged", func(t *testing.T) {
		t.Parallel()
		data := []byte("prefix <x:xmpmeta xmlns:x=\"adobe:ns:meta/\"> suffix")
		notes := inspectTags(map[string]string{}, data)
		if len(notes) != 1 || !strings.Contains(notes[0], "XMP") {
			t.Errorf("got notes %v, want one XMP note", notes)
		}
	})
}
