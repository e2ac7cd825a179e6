package entropy

import (
	"bytes"
	"crypto/rand"
	"math"
	"testing"
)

// TestCalculate tests the whole-buffer entropy computation.
func TestCalculate(t *testing.T) {
	t.Parallel()

	t.Run("empty input returns 0", func(t *testing.T) {
		t.Parallel()
		if got := Calculate(nil); got != 0 {
			t.Errorf("Calculate(nil) = %v, want 0", got)
		}
	})

	t.Run("single repeated byte returns exactly 0", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte{'A'}, 10000)
		if got := Calculate(data); got != 0 {
			t.Errorf("Calculate(repeated) = %v, want 0", got)
		}
	})

	t.Run("two equiprobable symbols return 1 bit", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte{0x00, 0xff}, 500)
		if got := Calculate(data); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("Calculate(alternating) = %v, want 1.0", got)
		}
	})

	t.Run("all 256 symbols equiprobable return 8 bits", func(t *testing.T) {
		t.Parallel()
		data := make([]byte, 256*4)
		for i := range data {
			data[i] = byte(i % 256)
		}
		if got := Calculate(data); math.Abs(got-8.0) > 1e-12 {
			t.Errorf("Calculate(uniform) = %v, want 8.0", got)
		}
	})

	t.Run("always within [0,8]", func(t *testing.T) {
		t.Parallel()
		inputs := [][]byte{
			[]byte("hello, world"),
			bytes.Repeat([]byte{1, 2, 3}, 100),
			make([]byte, 1024),
		}
		random := make([]byte, 4096)
		if _, err := rand.Read(random); err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, random)

		for _, data := range inputs {
			got := Calculate(data)
			if got < 0 || got > 8 {
				t.Errorf("Calculate returned %v, outside [0,8]", got)
			}
		}
	})
}

// TestAnalyzeBlocks tests the block-level profile and classification.
func TestAnalyzeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("random data classified as encrypted", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 16384)
		if _, err := rand.Read(data); err != nil {
			t.Fatal(err)
		}

		report := AnalyzeBlocks(data, 0)
		if report.OverallEntropy <= EncryptedEntropyThreshold {
			t.Fatalf("random data entropy %v, want > %v", report.OverallEntropy, EncryptedEntropyThreshold)
		}
		if !report.LikelyEncrypted {
			t.Errorf("expected LikelyEncrypted for random data (variance %v)", report.BlockVariance)
		}
		if report.LikelyCompressed {
			t.Error("LikelyEncrypted and LikelyCompressed must be exclusive")
		}
		if len(report.Anomalies) == 0 {
			t.Error("expected anomaly messages for encryption-like data")
		}
	})

	t.Run("constant data has zero entropy and no anomalies", func(t *testing.T) {
		t.Parallel()

		data := bytes.Repeat([]byte{'A'}, 10000)
		report := AnalyzeBlocks(data, 256)

		if report.OverallEntropy != 0 {
			t.Errorf("OverallEntropy = %v, want 0", report.OverallEntropy)
		}
		if report.LikelyEncrypted || report.LikelyCompressed {
			t.Error("constant data should not be classified as encrypted or compressed")
		}
		if len(report.HighEntropyRegions) != 0 {
			t.Errorf("got %d high-entropy regions, want 0", len(report.HighEntropyRegions))
		}
		if len(report.Anomalies) != 0 {
			t.Errorf("got anomalies %v, want none", report.Anomalies)
		}
	})

	t.Run("localized random region flagged as anomaly", func(t *testing.T) {
		t.Parallel()

		// Mostly-constant carrier with two random blocks in the middle.
		// Blocks need to be reasonably large for the histogram to reach
		// the high-entropy threshold: a 1024-sample histogram over 256
		// symbols lands near 7.8 bits/byte for random data.
		data := bytes.Repeat([]byte{'A'}, 16384)
		payload := make([]byte, 2048)
		if _, err := rand.Read(payload); err != nil {
			t.Fatal(err)
		}
		copy(data[8192:], payload)

		report := AnalyzeBlocks(data, 1024)
		if len(report.HighEntropyRegions) == 0 {
			t.Fatal("expected at least one high-entropy region")
		}
		if report.LikelyEncrypted {
			t.Error("localized payload should not classify the whole buffer as encrypted")
		}
		if len(report.Anomalies) == 0 {
			t.Error("expected a localized high-entropy anomaly message")
		}
		if report.HighEntropyRegions[0].Offset != 8192 {
			t.Errorf("high-entropy region at offset %d, want 8192", report.HighEntropyRegions[0].Offset)
		}
	})

	t.Run("short trailing block excluded from block stats", func(t *testing.T) {
		t.Parallel()

		// 256 + 16 bytes: the 16-byte tail is below MinBlockSamples.
		data := bytes.Repeat([]byte{'x'}, 272)
		report := AnalyzeBlocks(data, 256)

		if len(report.Blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(report.Blocks))
		}
		if report.Blocks[0].Length != 256 {
			t.Errorf("block length %d, want 256", report.Blocks[0].Length)
		}
	})

	t.Run("block entropies stay in [0,8]", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 4096)
		if _, err := rand.Read(data); err != nil {
			t.Fatal(err)
		}
		report := AnalyzeBlocks(data, 128)
		for _, b := range report.Blocks {
			if b.Entropy < 0 || b.Entropy > 8 {
				t.Fatalf("block at %d has entropy %v, outside [0,8]", b.Offset, b.Entropy)
			}
		}
	})
}
