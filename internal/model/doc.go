// Package model defines the data types shared across the scanner:
// findings, risk levels, the forensic report, and the static
// detection-effectiveness catalog.
//
// Types in this package are created once per scan and never mutated after
// construction. The statistical analysis packages do not depend on model;
// the pipeline assembles their raw results into a ForensicReport.
package model
