// Package entropy computes Shannon entropy over whole buffers and
// fixed-size blocks and classifies regions as encrypted-like,
// compressed-like, or ordinary.
//
// All functions are pure and side-effect-free; a buffer may be analyzed
// concurrently by multiple goroutines.
package entropy
