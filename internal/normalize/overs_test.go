package normalize

import (
	"fmt"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatOversLabel(t *testing.T) {
	cases := []struct {
		name     string
		overs    *float64
		fallback string
		want     string
	}{
		{"numeric", floatPtr(17.3), "", "17.3"},
		{"whole", floatPtr(20), "", "20.0"},
		{"fraction clamped", floatPtr(17.8), "", "17.5"},
		{"ball count", floatPtr(291), "", "48.3"},
		{"numeric wins over fallback", floatPtr(3.1), "10/0 (9.4 ov)", "3.1"},
		{"fallback parenthetical", nil, "243/8 (48.3 ov)", "48.3"},
		{"fallback truncated ball count", nil, "243/8(291", "48.3"},
		{"no overs anywhere", nil, "243/8", ""},
		{"negative", floatPtr(-2), "", "0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatOversLabel(tc.overs, tc.fallback); got != tc.want {
				t.Fatalf("FormatOversLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBallCountsAlwaysProduceValidFraction(t *testing.T) {
	for b := 0; b <= 600; b++ {
		labels := []string{FormatBowlerOvers(b)}
		if b > ballCountThreshold {
			labels = append(labels, FormatOversLabel(floatPtr(float64(b)), ""))
		}
		for _, label := range labels {
			_, frac, ok := strings.Cut(label, ".")
			if !ok || len(frac) != 1 || frac[0] < '0' || frac[0] > '5' {
				t.Fatalf("ball count %d produced invalid overs label %q", b, label)
			}
		}
	}
}

func TestOversLabelRoundTrip(t *testing.T) {
	for whole := 0; whole <= 50; whole++ {
		for balls := 0; balls <= 5; balls++ {
			v := float64(whole) + float64(balls)/10
			label := FormatOversLabel(&v, "")
			gotWhole, gotBalls := ParseOversLabel(label)
			if gotWhole != whole || gotBalls != balls {
				t.Fatalf("round trip %v -> %q -> %d.%d", v, label, gotWhole, gotBalls)
			}
		}
	}
}

func TestFormatBowlerOvers(t *testing.T) {
	cases := map[int]string{0: "0.0", 5: "0.5", 6: "1.0", 23: "3.5", 24: "4.0", -1: "0.0"}
	for balls, want := range cases {
		if got := FormatBowlerOvers(balls); got != want {
			t.Fatalf("FormatBowlerOvers(%d) = %q, want %q", balls, got, want)
		}
	}
}

func TestOversConversions(t *testing.T) {
	if got := OversToFloat(17.3); got != 17.5 {
		t.Fatalf("expected 17.5, got %v", got)
	}
	if got := OversToBalls(17.3); got != 105 {
		t.Fatalf("expected 105 balls, got %d", got)
	}
	if got := OversToBalls(291); got != 291 {
		t.Fatalf("expected ball count passthrough, got %d", got)
	}
	if got := fmt.Sprintf("%.1f", BallsToOvers(105)); got != "17.3" {
		t.Fatalf("expected 17.3, got %s", got)
	}
	if got := BallsToOvers(-4); got != 0 {
		t.Fatalf("expected 0 for negative balls, got %v", got)
	}
}

func TestParseOversLabelClampsAndDefaults(t *testing.T) {
	if w, b := ParseOversLabel(""); w != 0 || b != 0 {
		t.Fatalf("expected zero for empty label")
	}
	if w, b := ParseOversLabel("12.9"); w != 12 || b != 5 {
		t.Fatalf("expected clamp to 12.5, got %d.%d", w, b)
	}
	if w, b := ParseOversLabel("7"); w != 7 || b != 0 {
		t.Fatalf("expected 7.0, got %d.%d", w, b)
	}
}
