// Package randomness implements the statistical randomness tests used to
// tell encrypted or random content apart from structured data: the monobit
// frequency test, lag-1 serial correlation, and the runs test.
//
// Every function operates on whatever byte range the caller supplies.
// Windowing or sampling very large inputs is the caller's responsibility;
// the tests themselves read the buffer exactly once and never fail.
package randomness
