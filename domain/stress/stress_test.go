package stress

import (
	"math"
	"testing"
)

// TestMaintenanceCostCap tests the hard cap at extreme uptake
func TestMaintenanceCostCap(t *testing.T) {
	if got := MaintenanceCost(10000); got != 200.0 {
		t.Errorf("Expected cost capped at exactly 200.0 for g=10000, got %v", got)
	}
	if got := MaintenanceCost(-10000); got != 200.0 {
		t.Errorf("Expected signed input to be treated by magnitude, got %v", got)
	}
}

// TestMaintenanceCostCurve tests known points of the cost curve
func TestMaintenanceCostCurve(t *testing.T) {
	tests := []struct {
		uptake   float64
		expected float64
	}{
		{0, 0},
		{10, math.Pow(0.2, 1.8)},
		{250, math.Pow(5.0, 1.8)},
	}

	for _, test := range tests {
		got := MaintenanceCost(test.uptake)
		if math.Abs(got-test.expected) > 1e-12 {
			t.Errorf("MaintenanceCost(%v): expected %v, got %v", test.uptake, test.expected, got)
		}
	}
}

// TestMaintenanceCostMonotonic tests that cost never decreases with uptake
func TestMaintenanceCostMonotonic(t *testing.T) {
	prev := MaintenanceCost(0)
	for g := 0.5; g <= 1000; g += 0.5 {
		cur := MaintenanceCost(g)
		if cur < prev {
			t.Fatalf("Cost decreased at g=%v: %v < %v", g, cur, prev)
		}
		prev = cur
	}
}

// TestCapacityPenaltyRange tests the [0, 0.95] range for all magnitudes
func TestCapacityPenaltyRange(t *testing.T) {
	for g := 0.0; g <= 2000; g += 0.25 {
		p := CapacityPenalty(g)
		if p < 0 || p > 0.95 {
			t.Fatalf("Penalty out of [0, 0.95] at g=%v: %v", g, p)
		}
	}
}

// TestCapacityPenaltyRegimes tests the exact per-regime formulas
func TestCapacityPenaltyRegimes(t *testing.T) {
	tests := []struct {
		name     string
		uptake   float64
		expected float64
	}{
		{"zero uptake", 0, math.Exp(0) / 20},
		{"low regime", 10, math.Exp(10.0/35) / 20},
		{"low regime boundary inclusive", 30, math.Exp(30.0/35) / 20},
		{"mid regime just past boundary", 30.0001, math.Exp(30.0001/25) / 15},
		{"mid regime", 60, math.Exp(60.0/25) / 15},
		{"mid regime boundary inclusive", 80, math.Exp(80.0/25) / 15},
		{"top regime", 150, math.Exp(150.0/40) / 10},
	}

	for _, test := range tests {
		got := CapacityPenalty(test.uptake)
		want := math.Min(test.expected, 0.95)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s: CapacityPenalty(%v) expected %v, got %v", test.name, test.uptake, want, got)
		}
	}
}

// TestCapacityPenaltyBoundaryJump documents the expected discontinuity at the
// low/mid boundary: exp(30/35)/20 vs exp(30.0001/25)/15. The jump is intended
// behavior since the divisors differ per regime.
func TestCapacityPenaltyBoundaryJump(t *testing.T) {
	low := CapacityPenalty(30)
	mid := CapacityPenalty(30.0001)

	if math.IsNaN(low) || math.IsInf(low, 0) || math.IsNaN(mid) || math.IsInf(mid, 0) {
		t.Fatalf("Boundary values must be finite: low=%v mid=%v", low, mid)
	}
	if math.Abs(low-0.1184) > 0.001 {
		t.Errorf("Expected low-regime boundary value near 0.1184, got %v", low)
	}
	if math.Abs(mid-0.1596) > 0.001 {
		t.Errorf("Expected mid-regime boundary value near 0.1596, got %v", mid)
	}
	if mid <= low {
		t.Errorf("Expected upward jump across the low/mid boundary, got %v -> %v", low, mid)
	}
}

// TestCapacityPenaltyMonotonicWithinRegimes tests monotonicity inside each regime
func TestCapacityPenaltyMonotonicWithinRegimes(t *testing.T) {
	regimes := []struct {
		name     string
		from, to float64
	}{
		{"low", 0, 30},
		{"mid", 30.001, 80},
		{"top", 80.001, 300},
	}

	for _, regime := range regimes {
		prev := CapacityPenalty(regime.from)
		for g := regime.from; g <= regime.to; g += 0.1 {
			cur := CapacityPenalty(g)
			if cur < prev {
				t.Fatalf("%s regime: penalty decreased at g=%v: %v < %v", regime.name, g, cur, prev)
			}
			prev = cur
		}
	}
}

// TestComputeDeterminism tests that Compute is pure
func TestComputeDeterminism(t *testing.T) {
	a := Compute(80)
	b := Compute(80)
	if a != b {
		t.Errorf("Compute is not deterministic: %+v vs %+v", a, b)
	}
}
