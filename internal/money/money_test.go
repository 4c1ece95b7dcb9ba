package money

import "testing"

func TestRupeesToPaise(t *testing.T) {
	cases := []struct {
		rupees float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{500, 50_000},
		{99.99, 9_999},
		{0.005, 1},
		{123.456, 12_346},
	}
	for _, c := range cases {
		if got := RupeesToPaise(c.rupees); got != c.want {
			t.Fatalf("RupeesToPaise(%v) = %d, want %d", c.rupees, got, c.want)
		}
	}
}

func TestPaiseToRupees(t *testing.T) {
	if got := PaiseToRupees(12_000); got != 120 {
		t.Fatalf("PaiseToRupees(12000) = %v, want 120", got)
	}
	if got := PaiseToRupees(1); got != 0.01 {
		t.Fatalf("PaiseToRupees(1) = %v, want 0.01", got)
	}
}

func TestPercentToBasisPoints(t *testing.T) {
	if got := PercentToBasisPoints(20); got != 2_000 {
		t.Fatalf("PercentToBasisPoints(20) = %d, want 2000", got)
	}
	if got := PercentToBasisPoints(12.5); got != 1_250 {
		t.Fatalf("PercentToBasisPoints(12.5) = %d, want 1250", got)
	}
}

func TestApplyBasisPoints(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		bp     int64
		want   int64
	}{
		{"twenty percent of 10000", 10_000, 2_000, 12_000},
		{"thirty percent of 20000", 20_000, 3_000, 26_000},
		{"zero percent", 5_000, 0, 5_000},
		{"half paisa rounds up", 5, 1_000, 6},       // 5 * 10% = 0.5 -> 1
		{"just below half truncates", 3, 50, 3},     // 3 * 0.5% = 0.015 -> 0
		{"fifty percent of one paisa", 1, 5_000, 2}, // 0.5 -> 1
		{"one percent of 249", 249, 100, 251},       // 2.49 -> 2
	}
	for _, c := range cases {
		if got := ApplyBasisPoints(c.amount, c.bp); got != c.want {
			t.Fatalf("%s: ApplyBasisPoints(%d, %d) = %d, want %d", c.name, c.amount, c.bp, got, c.want)
		}
	}
}
