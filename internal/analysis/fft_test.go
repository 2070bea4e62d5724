package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumSinusoid(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	peak := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("expected spectral peak at bin 8, got %d", peak)
	}
}

func TestPadPow2(t *testing.T) {
	padded := PadPow2(make([]float64, 100))
	if len(padded) != 128 {
		t.Errorf("expected 128, got %d", len(padded))
	}

	exact := PadPow2(make([]float64, 64))
	if len(exact) != 64 {
		t.Errorf("expected 64, got %d", len(exact))
	}
}
