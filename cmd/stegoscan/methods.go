package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/stegoscan/internal/model"
)

// NewMethodsCmd creates the methods command.
// It renders the detection-method catalog so analysts can judge what a
// positive or negative result from each pass actually means.
func NewMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "Describe the detection methods and their effectiveness",
		Long: `Methods lists every detection method the scanner runs, together with its
empirically observed hit-rate range, the conditions where it is strongest,
the conditions where it degrades, and its typical false-positive rate.

A finding from a method with a 2% false-positive rate (signature-scan)
deserves more weight than one from a method with 15% (entropy). The risk
aggregation already accounts for this by requiring independent methods to
agree, but the raw numbers help when reviewing individual findings.`,
		Run: func(cmd *cobra.Command, _ []string) {
			ranges := model.DetectionRanges()

			methods := make([]string, 0, len(ranges))
			for method := range ranges {
				methods = append(methods, method)
			}
			sort.Strings(methods)

			out := cmd.OutOrStdout()
			for _, method := range methods {
				dr := ranges[method]
				fmt.Fprintf(out, "%s\n", dr.Method)
				fmt.Fprintf(out, "%s\n", strings.Repeat("-", len(dr.Method)))
				fmt.Fprintf(out, "  Hit rate:        %d-%d%%\n", dr.HitRateLow, dr.HitRateHigh)
				fmt.Fprintf(out, "  False positives: ~%d%%\n", dr.FalsePositiveRate)
				fmt.Fprintf(out, "  Strong:          %s\n", dr.BestConditions)
				fmt.Fprintf(out, "  Weak:            %s\n\n", dr.WeakConditions)
			}
		},
	}
}
