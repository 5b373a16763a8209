package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-kk/internal/testutil"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris,
		TypeNuttall,
		TypeFlatTop,
		TypeKaiser,
		TypeTukey,
		TypeTriangle,
		TypeBartlett,
		TypeCosine,
		TypeGauss,
	}

	for _, typ := range types {
		w := Generate(typ, 64)
		if len(w) != 64 {
			t.Fatalf("type=%v len=%d, want 64", typ, len(w))
		}

		for i, v := range w {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("type=%v coefficient[%d] invalid: %v", typ, i, v)
			}
		}
	}
}

func TestGenerateZeroLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if !almostEqual(a[15], 0, 1e-12) {
		t.Fatalf("symmetric hann should end at 0, got %v", a[15])
	}
	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
	if !almostEqual(b[8], 1, 1e-12) {
		t.Fatalf("periodic hann peak at n/2 = %v, want 1", b[8])
	}
}

func TestHammingEndpoints(t *testing.T) {
	w := Generate(TypeHamming, 33)
	if !almostEqual(w[0], 0.08, 1e-12) || !almostEqual(w[32], 0.08, 1e-12) {
		t.Fatalf("hamming endpoints = %v, %v, want 0.08", w[0], w[32])
	}
	if !almostEqual(w[16], 1, 1e-12) {
		t.Fatalf("hamming center = %v, want 1", w[16])
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)

	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)
	if buf[0] != 0 {
		t.Fatalf("hann first sample should be 0, got %v", buf[0])
	}
}

func TestApplyCoefficients(t *testing.T) {
	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 6}
	for i := range want {
		if !almostEqual(out[i], want[i], 1e-15) {
			t.Fatalf("out[%d]=%v, want %v", i, out[i], want[i])
		}
	}

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		typ   Type
		param float64
	}{
		{"hann", "hann", TypeHann, 0},
		{" Hamming ", "hamming", TypeHamming, 0},
		{"kaiser", "kaiser", TypeKaiser, 8.6},
		{"kaiser:14", "kaiser", TypeKaiser, 14},
		{"tukey,0.25", "tukey", TypeTukey, 0.25},
		{"gaussian:3", "gaussian", TypeGauss, 3},
		{"boxcar", "boxcar", TypeRectangular, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			spec, err := ParseSpec(tt.in)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error: %v", tt.in, err)
			}
			if spec.Name != tt.name || spec.Type != tt.typ || spec.Param != tt.param {
				t.Fatalf("ParseSpec(%q) = %+v", tt.in, spec)
			}
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"invalid_window", ErrUnknownWindow},
		{"", ErrUnknownWindow},
		{"hann:2", ErrInvalidParameter},
		{"kaiser:-1", ErrInvalidParameter},
		{"tukey:1.5", ErrInvalidParameter},
		{"gaussian:0", ErrInvalidParameter},
		{"kaiser:abc", ErrInvalidParameter},
		{"kaiser:NaN", ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseSpec(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseSpec(%q) err = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestSpecCoefficients(t *testing.T) {
	spec := MustParseSpec("hann")

	w, err := spec.Coefficients(8)
	if err != nil {
		t.Fatal(err)
	}
	want := Generate(TypeHann, 8, WithPeriodic())
	for i := range want {
		if w[i] != want[i] {
			t.Fatalf("w[%d]=%v, want %v", i, w[i], want[i])
		}
	}

	if _, err := spec.Coefficients(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestSpecString(t *testing.T) {
	if s := MustParseSpec("tukey:0.3").String(); s != "tukey:0.3" {
		t.Fatalf("String = %q", s)
	}
	if s := MustParseSpec("hann").String(); s != "hann" {
		t.Fatalf("String = %q", s)
	}
}

func TestKaiserPeakIsUnity(t *testing.T) {
	w := Generate(TypeKaiser, 65, WithAlpha(8))
	if !almostEqual(w[32], 1, 1e-12) {
		t.Fatalf("kaiser center = %v, want 1", w[32])
	}
	if w[0] >= w[16] {
		t.Fatalf("kaiser not tapered: w[0]=%v w[16]=%v", w[0], w[16])
	}
}

func TestTriangleHasNonZeroEnds(t *testing.T) {
	w := Generate(TypeTriangle, 5)
	want := []float64{1.0 / 3, 2.0 / 3, 1, 2.0 / 3, 1.0 / 3}
	for i := range want {
		if !almostEqual(w[i], want[i], 1e-12) {
			t.Fatalf("triangle[%d] = %v, want %v", i, w[i], want[i])
		}
	}

	b := Generate(TypeBartlett, 5)
	if b[0] != 0 || b[4] != 0 {
		t.Fatalf("bartlett ends = %v, %v, want 0", b[0], b[4])
	}
}

func TestTukeyLimits(t *testing.T) {
	flat := Generate(TypeTukey, 32, WithAlpha(0))
	for i, v := range flat {
		if v != 1 {
			t.Fatalf("tukey alpha=0 [%d] = %v, want 1", i, v)
		}
	}

	full := Generate(TypeTukey, 32, WithAlpha(1))
	hann := Generate(TypeHann, 32)
	for i := range hann {
		if !almostEqual(full[i], hann[i], 1e-12) {
			t.Fatalf("tukey alpha=1 [%d] = %v, hann %v", i, full[i], hann[i])
		}
	}
}

func TestBesselI0(t *testing.T) {
	// Reference values of I0.
	for x, want := range map[float64]float64{
		0:  1,
		1:  1.2660658777520082,
		5:  27.239871823604442,
		10: 2815.716628466254,
	} {
		testutil.RequireRelClose(t, besselI0(x), want, 1e-12)
	}
}
