package common

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestPointToNDC_Corners(t *testing.T) {
	sizes := []WindowSize{
		{Width: 800, Height: 600},
		{Width: 1, Height: 1},
		{Width: 1920, Height: 1080},
		{Width: 333.5, Height: 17},
	}
	for _, size := range sizes {
		topLeft, err := Point{X: 0, Y: 0}.ToNDC(size)
		if err != nil {
			t.Fatalf("ToNDC(%v) error: %v", size, err)
		}
		if !approx(topLeft.X, -1) || !approx(topLeft.Y, 1) {
			t.Errorf("top-left at %v = %v, want (-1, 1)", size, topLeft)
		}

		bottomRight, err := Point{X: size.Width, Y: size.Height}.ToNDC(size)
		if err != nil {
			t.Fatalf("ToNDC(%v) error: %v", size, err)
		}
		if !approx(bottomRight.X, 1) || !approx(bottomRight.Y, -1) {
			t.Errorf("bottom-right at %v = %v, want (1, -1)", size, bottomRight)
		}
	}
}

func TestPointToNDC_Center(t *testing.T) {
	got, err := Point{X: 400, Y: 300}.ToNDC(WindowSize{Width: 800, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.X, 0) || !approx(got.Y, 0) {
		t.Errorf("center = %v, want (0, 0)", got)
	}
}

func TestPixelToNDC_HorizontalMonotonic(t *testing.T) {
	size := WindowSize{Width: 640, Height: 480}
	prev := float32(math.Inf(-1))
	for v := float32(0); v <= size.Width; v += 8 {
		got, err := Pixel{Value: v, Orientation: Horizontal}.ToNDC(size)
		if err != nil {
			t.Fatal(err)
		}
		if got <= prev {
			t.Fatalf("ToNDC(%v) = %v, not greater than previous %v", v, got, prev)
		}
		prev = got
	}

	lo, _ := Pixel{Value: 0, Orientation: Horizontal}.ToNDC(size)
	hi, _ := Pixel{Value: size.Width, Orientation: Horizontal}.ToNDC(size)
	if !approx(lo, -1) || !approx(hi, 1) {
		t.Errorf("horizontal endpoints = (%v, %v), want (-1, 1)", lo, hi)
	}
}

func TestPixelToNDC_VerticalMatchesPoint(t *testing.T) {
	size := WindowSize{Width: 1024, Height: 768}
	for _, v := range []float32{0, 100, 384, 768} {
		single, err := Pixel{Value: v, Orientation: Vertical}.ToNDC(size)
		if err != nil {
			t.Fatal(err)
		}
		both, _ := Point{X: 0, Y: v}.ToNDC(size)
		if !approx(single, both.Y) {
			t.Errorf("vertical ToNDC(%v) = %v, point form gives %v", v, single, both.Y)
		}
	}
}

func TestPixelLegacyVerticalNDC(t *testing.T) {
	size := WindowSize{Width: 10, Height: 200}
	got, err := Pixel{Value: 200, Orientation: Vertical}.LegacyVerticalNDC(size)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got, 2) {
		t.Errorf("LegacyVerticalNDC(height) = %v, want 2", got)
	}
}

func TestToNDC_InvalidWindow(t *testing.T) {
	tests := []struct {
		name string
		size WindowSize
	}{
		{"zero width", WindowSize{Width: 0, Height: 10}},
		{"zero height", WindowSize{Width: 10, Height: 0}},
		{"negative width", WindowSize{Width: -5, Height: 10}},
		{"both zero", WindowSize{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (Point{X: 1, Y: 1}).ToNDC(tt.size); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Point.ToNDC error = %v, want ErrInvalidArgument", err)
			}
			if _, err := (Pixel{Value: 1}).ToNDC(tt.size); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Pixel.ToNDC error = %v, want ErrInvalidArgument", err)
			}
			if _, err := (Pixel{Value: 1, Orientation: Vertical}).LegacyVerticalNDC(tt.size); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("LegacyVerticalNDC error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewWindowSize(t *testing.T) {
	s := NewWindowSize(800, 600)
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("NewWindowSize = %v, want 800x600", s)
	}
}

func TestOrientationString(t *testing.T) {
	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Errorf("unexpected orientation names %q %q", Horizontal, Vertical)
	}
	if Orientation(9).String() != "unknown" {
		t.Errorf("Orientation(9).String() = %q", Orientation(9).String())
	}
}
