package dsp

import (
	"errors"
	"math"
	"testing"
)

func TestButterworthCoefficients(t *testing.T) {
	// Reference values for a 2nd-order lowpass at 0.01 of Nyquist.
	b, a, err := Butterworth(2, 0.01)
	if err != nil {
		t.Fatalf("Butterworth failed: %v", err)
	}

	wantB := []float64{0.00024135904904198078, 0.00048271809808396156, 0.00024135904904198078}
	wantA := []float64{1.0, -1.9555782403150355, 0.9565436765112033}

	if len(b) != len(wantB) || len(a) != len(wantA) {
		t.Fatalf("coefficient lengths = %d, %d; want %d, %d", len(b), len(a), len(wantB), len(wantA))
	}
	for i := range wantB {
		if math.Abs(b[i]-wantB[i]) > 1e-6 {
			t.Errorf("b[%d] = %v, want %v", i, b[i], wantB[i])
		}
	}
	for i := range wantA {
		if math.Abs(a[i]-wantA[i]) > 1e-6 {
			t.Errorf("a[%d] = %v, want %v", i, a[i], wantA[i])
		}
	}
}

func TestButterworthUnityDCGain(t *testing.T) {
	// A lowpass filter passes DC unchanged: sum(b) must equal sum(a).
	for _, cutoff := range []float64{0.01, 0.1, 0.5, 0.9} {
		b, a, err := Butterworth(2, cutoff)
		if err != nil {
			t.Fatalf("Butterworth(2, %v) failed: %v", cutoff, err)
		}

		var sumB, sumA float64
		for _, v := range b {
			sumB += v
		}
		for _, v := range a {
			sumA += v
		}
		if math.Abs(sumB-sumA) > 1e-9 {
			t.Errorf("cutoff %v: sum(b) = %v, sum(a) = %v; DC gain not unity", cutoff, sumB, sumA)
		}
	}
}

func TestButterworthInvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		order  int
		cutoff float64
	}{
		{"zero order", 0, 0.1},
		{"negative order", -1, 0.1},
		{"zero cutoff", 2, 0},
		{"cutoff at nyquist", 2, 1},
		{"cutoff above nyquist", 2, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Butterworth(tt.order, tt.cutoff); err == nil {
				t.Errorf("Butterworth(%d, %v) succeeded, want error", tt.order, tt.cutoff)
			}
		})
	}
}

func TestFiltFiltPreservesConstant(t *testing.T) {
	b, a, err := Butterworth(2, 0.01)
	if err != nil {
		t.Fatalf("Butterworth failed: %v", err)
	}

	x := make([]float64, 200)
	for i := range x {
		x[i] = 0.75
	}

	y, err := FiltFilt(b, a, x)
	if err != nil {
		t.Fatalf("FiltFilt failed: %v", err)
	}
	if len(y) != len(x) {
		t.Fatalf("output length = %d, want %d", len(y), len(x))
	}
	for i, v := range y {
		if math.Abs(v-0.75) > 1e-6 {
			t.Errorf("y[%d] = %v, want 0.75", i, v)
		}
	}
}

func TestFiltFiltZeroInput(t *testing.T) {
	b, a, err := Butterworth(2, 0.01)
	if err != nil {
		t.Fatalf("Butterworth failed: %v", err)
	}

	y, err := FiltFilt(b, a, make([]float64, 100))
	if err != nil {
		t.Fatalf("FiltFilt failed: %v", err)
	}
	for i, v := range y {
		if v != 0 {
			t.Errorf("y[%d] = %v, want 0", i, v)
		}
	}
}

func TestFiltFiltSmoothsSpike(t *testing.T) {
	b, a, err := Butterworth(2, 0.05)
	if err != nil {
		t.Fatalf("Butterworth failed: %v", err)
	}

	x := make([]float64, 300)
	x[150] = 1.0

	y, err := FiltFilt(b, a, x)
	if err != nil {
		t.Fatalf("FiltFilt failed: %v", err)
	}
	if y[150] >= 1.0 {
		t.Errorf("spike not attenuated: y[150] = %v", y[150])
	}
	if y[140] <= 0 || y[160] <= 0 {
		t.Errorf("spike energy not spread symmetrically: y[140] = %v, y[160] = %v", y[140], y[160])
	}
	// zero-phase: the response around the spike should be symmetric
	if math.Abs(y[145]-y[155]) > 1e-6 {
		t.Errorf("asymmetric response: y[145] = %v, y[155] = %v", y[145], y[155])
	}
}

func TestFiltFiltSequenceTooShort(t *testing.T) {
	b, a, err := Butterworth(2, 0.01)
	if err != nil {
		t.Fatalf("Butterworth failed: %v", err)
	}

	// pad length for order 2 is 9, inputs of 9 or fewer samples must fail
	for _, n := range []int{0, 1, 5, 9} {
		if _, err := FiltFilt(b, a, make([]float64, n)); !errors.Is(err, ErrSequenceTooShort) {
			t.Errorf("FiltFilt with %d samples: err = %v, want ErrSequenceTooShort", n, err)
		}
	}

	if _, err := FiltFilt(b, a, make([]float64, 10)); err != nil {
		t.Errorf("FiltFilt with 10 samples failed: %v", err)
	}
}
