// Package common contains the plain value types shared across the engine: window sizes,
// pixel coordinates and their normalized device coordinate conversions, and the packed shape descriptor.
package common

import (
	"github.com/cockroachdb/errors"
)

// ErrInvalidArgument is returned when a conversion is attempted against a window with a non-positive dimension.
var ErrInvalidArgument = errors.New("invalid argument")

// Orientation selects which window axis a single-axis Pixel is measured along.
type Orientation int

const (
	// Horizontal measures the pixel along the window width, left to right.
	Horizontal Orientation = iota

	// Vertical measures the pixel along the window height, top to bottom.
	Vertical
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// WindowSize is the pixel size of the drawable area a coordinate is converted against.
type WindowSize struct {
	Width  float32
	Height float32
}

// NewWindowSize builds a WindowSize from integer pixel dimensions as reported by the window.
//
// Parameters:
//   - width: the drawable width in pixels
//   - height: the drawable height in pixels
//
// Returns:
//   - WindowSize: the size as floating point dimensions
func NewWindowSize(width, height int) WindowSize {
	return WindowSize{Width: float32(width), Height: float32(height)}
}

// Validate returns ErrInvalidArgument if either dimension is zero or negative.
//
// Returns:
//   - error: nil when both dimensions are positive
func (s WindowSize) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "window size %vx%v must be positive", s.Width, s.Height)
	}
	return nil
}

// Pixel is a single-axis pixel position measured from the top-left corner of the window.
type Pixel struct {
	Value       float32
	Orientation Orientation
}

// ToNDC converts the pixel to a normalized device coordinate in [-1, 1].
// Horizontal pixels map 0 to -1 and width to 1. Vertical pixels use the same top-left origin
// as Point.ToNDC, so 0 maps to 1 and height maps to -1.
//
// Parameters:
//   - size: the window size the pixel is measured in
//
// Returns:
//   - float32: the NDC value along the pixel's axis
//   - error: ErrInvalidArgument if either window dimension is non-positive
func (p Pixel) ToNDC(size WindowSize) (float32, error) {
	if err := size.Validate(); err != nil {
		return 0, err
	}
	switch p.Orientation {
	case Vertical:
		return 1 - (p.Value * 2 / size.Height), nil
	default:
		return (p.Value * 2 / size.Width) - 1, nil
	}
}

// LegacyVerticalNDC returns v*2/height, the unshifted and unflipped vertical mapping with range [0, 2].
// It only exists for callers that were written against that mapping; new code should use ToNDC.
//
// Parameters:
//   - size: the window size the pixel is measured in
//
// Returns:
//   - float32: the legacy vertical value
//   - error: ErrInvalidArgument if either window dimension is non-positive
func (p Pixel) LegacyVerticalNDC(size WindowSize) (float32, error) {
	if err := size.Validate(); err != nil {
		return 0, err
	}
	return p.Value * 2 / size.Height, nil
}

// Point is a two-axis pixel position with the origin at the top-left corner of the window.
// After ToNDC it holds normalized device coordinates with the origin at the center and y pointing up.
type Point struct {
	X float32
	Y float32
}

// ToNDC converts the point from top-left pixel space to bottom-up normalized device coordinates.
//
// Parameters:
//   - size: the window size the point is measured in
//
// Returns:
//   - Point: the converted point, (-1, 1) for the top-left corner and (1, -1) for the bottom-right
//   - error: ErrInvalidArgument if either window dimension is non-positive
func (p Point) ToNDC(size WindowSize) (Point, error) {
	if err := size.Validate(); err != nil {
		return Point{}, err
	}
	return Point{
		X: (p.X * 2 / size.Width) - 1,
		Y: 1 - (p.Y * 2 / size.Height),
	}, nil
}
