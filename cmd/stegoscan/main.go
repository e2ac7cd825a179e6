// Package main provides the entry point for the stegoscan CLI.
//
// Stegoscan is a forensic scanner that detects hidden or encrypted content
// in files: LSB steganography in images, foreign files embedded or appended
// to containers, and statistically anomalous (encrypted-looking) data.
//
// Usage:
//
//	stegoscan scan <file>
//	stegoscan scan photo1.png photo2.jpg archive.bin
//
// See --help for all available options.
package main

// main is the entry point for stegoscan.
func main() {
	Execute()
}
