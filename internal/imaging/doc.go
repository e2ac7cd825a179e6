// Package imaging decodes image files into per-channel pixel intensity
// planes for the steganalysis suite. Decoding failure is a normal outcome:
// callers treat a nil sample as "not an image" and skip pixel-domain
// analysis instead of aborting the scan.
package imaging
