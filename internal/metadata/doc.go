// Package metadata extracts EXIF-style tags from image buffers and applies
// simple forensic heuristics: oversized comment fields, opaque maker notes,
// and embedded XMP blocks are all places where payloads hide in plain sight.
//
// Extraction failure is a normal outcome for non-image input; the report is
// marked unavailable instead of erroring.
package metadata
