package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestLinspace(t *testing.T) {
	tcs := []struct {
		name       string
		start, end float64
		n          int
		want       []float64
	}{
		{name: "single", start: -1.5, end: 1.5, n: 1, want: []float64{-1.5}},
		{name: "endpoints", start: -1.5, end: 1.5, n: 2, want: []float64{-1.5, 1.5}},
		{name: "quarters", start: 0, end: 1, n: 5, want: []float64{0, 0.25, 0.5, 0.75, 1}},
		{name: "descending", start: 1, end: -1, n: 3, want: []float64{1, 0, -1}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Linspace(tc.start, tc.end, tc.n)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Linspace() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinspace_LastSampleExact(t *testing.T) {
	got, err := Linspace(-1.5, 1.5, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if got[len(got)-1] != 1.5 {
		t.Errorf("last sample = %v, want 1.5", got[len(got)-1])
	}
}

func TestLinspace_Invalid(t *testing.T) {
	if _, err := Linspace(0, 1, 0); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Linspace(0, 1, 0) error = %v, want ErrInvalidShape", err)
	}
}

func TestFromRegion(t *testing.T) {
	g, err := FromRegion(Region{XMin: -1, XMax: 1, YMin: -2, YMax: 2}, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	if g.Rows != 2 || g.Cols != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", g.Rows, g.Cols)
	}

	want := []complex128{
		complex(-1, 2), complex(0, 2), complex(1, 2),
		complex(-1, -2), complex(0, -2), complex(1, -2),
	}
	if diff := cmp.Diff(want, g.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	if got := g.At(1, 2); got != complex(1, -2) {
		t.Errorf("At(1, 2) = %v, want (1-2i)", got)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
}

func TestFromRegion_Invalid(t *testing.T) {
	valid := Region{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

	tcs := []struct {
		name          string
		region        Region
		width, height int
	}{
		{name: "zero width", region: valid, width: 0, height: 1},
		{name: "zero height", region: valid, width: 1, height: 0},
		{name: "inverted x", region: Region{XMin: 1, XMax: -1, YMin: -1, YMax: 1}, width: 1, height: 1},
		{name: "empty y", region: Region{XMin: -1, XMax: 1, YMin: 1, YMax: 1}, width: 1, height: 1},
		{name: "nan", region: Region{XMin: math.NaN(), XMax: 1, YMin: -1, YMax: 1}, width: 1, height: 1},
		{name: "inf", region: Region{XMin: -1, XMax: math.Inf(1), YMin: -1, YMax: 1}, width: 1, height: 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromRegion(tc.region, tc.width, tc.height)
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("FromRegion() error = %v, want ErrInvalidShape", err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(2, 2, make([]complex128, 3)); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("New(2, 2, 3 points) error = %v, want ErrInvalidShape", err)
	}
	if _, err := New(0, 2, nil); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("New(0, 2) error = %v, want ErrInvalidShape", err)
	}

	g, err := New(1, 1, []complex128{2})
	if err != nil {
		t.Fatal(err)
	}
	if g.At(0, 0) != 2 {
		t.Errorf("At(0, 0) = %v, want 2", g.At(0, 0))
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		p, err := LookupPreset(name)
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Region.Validate(); err != nil {
			t.Errorf("preset %q: %v", name, err)
		}
	}

	if p, _ := LookupPreset("dendrite"); p.C != 1i {
		t.Errorf("dendrite C = %v, want i", p.C)
	}
	if _, err := LookupPreset("nope"); err == nil {
		t.Error("LookupPreset(nope) succeeded")
	}
}

func TestLinspace_EvenSpacing(t *testing.T) {
	got, err := Linspace(-1.5, 1.5, 301)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(got); i++ {
		if d := got[i] - got[i-1]; !scalar.EqualWithinAbs(d, 0.01, 1e-12) {
			t.Errorf("spacing at %d = %v, want 0.01", i, d)
		}
	}
	if got[0] != -1.5 {
		t.Errorf("first sample = %v, want -1.5", got[0])
	}
}
