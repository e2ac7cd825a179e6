package model

import "testing"

// TestRiskLevelString tests the string representation of risk levels.
func TestRiskLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		risk RiskLevel
		want string
	}{
		{name: "low", risk: RiskLow, want: "LOW"},
		{name: "medium", risk: RiskMedium, want: "MEDIUM"},
		{name: "high", risk: RiskHigh, want: "HIGH"},
		{name: "critical", risk: RiskCritical, want: "CRITICAL"},
		{name: "unknown value", risk: RiskLevel(99), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.risk.String(); got != tt.want {
				t.Errorf("RiskLevel.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRiskFromCategoryCount tests the category-count to risk mapping.
func TestRiskFromCategoryCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		want  RiskLevel
	}{
		{name: "no categories", count: 0, want: RiskLow},
		{name: "negative count", count: -1, want: RiskLow},
		{name: "one category", count: 1, want: RiskMedium},
		{name: "two categories", count: 2, want: RiskHigh},
		{name: "three categories", count: 3, want: RiskCritical},
		{name: "all five categories", count: 5, want: RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RiskFromCategoryCount(tt.count); got != tt.want {
				t.Errorf("RiskFromCategoryCount(%d) = %v, want %v", tt.count, got, tt.want)
			}
		})
	}
}

// TestConfidenceFromCategoryCount tests the category-count to confidence mapping.
func TestConfidenceFromCategoryCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "no categories", count: 0, want: ConfidenceLow},
		{name: "one category", count: 1, want: ConfidenceMedium},
		{name: "two categories", count: 2, want: ConfidenceHigh},
		{name: "three categories", count: 3, want: ConfidenceCritical},
		{name: "five categories", count: 5, want: ConfidenceCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ConfidenceFromCategoryCount(tt.count); got != tt.want {
				t.Errorf("ConfidenceFromCategoryCount(%d) = %d, want %d", tt.count, got, tt.want)
			}
		})
	}

	t.Run("confidence is monotonic in category count", func(t *testing.T) {
		t.Parallel()
		prev := -1
		for n := 0; n <= 5; n++ {
			c := ConfidenceFromCategoryCount(n)
			if c < prev {
				t.Errorf("confidence decreased at count %d: %d < %d", n, c, prev)
			}
			prev = c
		}
	})
}
