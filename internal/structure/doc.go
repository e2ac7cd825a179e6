// Package structure implements the file-structure scanner: magic-byte
// signature matching for embedded foreign files and appended-data detection
// past the JPEG and PNG container terminators.
//
// Both scans are deterministic and pure. Buffers shorter than the smallest
// signature produce empty results, never errors.
package structure
