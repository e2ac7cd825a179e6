// Package numeric provides the special-function approximations the
// statistical passes depend on: log-gamma, the regularized lower incomplete
// gamma function (chi-square p-values), and the complementary error function
// (monobit p-values).
//
// All functions are pure, never panic, and never return NaN or Inf for the
// argument ranges the scanner uses. Accuracy bounds are documented per
// function and verified against reference values in the tests.
package numeric
