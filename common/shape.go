package common

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind identifies the geometry a ShapeDescriptor describes.
// The numeric value is the tag written into the packed descriptor.
type ShapeKind uint32

const (
	// ShapeRectangle is an axis-aligned rectangle described by Position and Size.
	ShapeRectangle ShapeKind = iota

	// ShapeCircle is a circle centered at Position with the given Radius.
	ShapeCircle
)

// String returns the lowercase name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Valid reports whether the kind is one of the known shape kinds.
func (k ShapeKind) Valid() bool {
	return k == ShapeRectangle || k == ShapeCircle
}

// ShapeDescriptorSize is the packed size of a ShapeDescriptor in bytes.
const ShapeDescriptorSize = 40

// ShapeDescriptor is the GPU-aligned representation of a single 2D shape.
// Fields are laid out in declaration order with no padding, all little-endian.
// Size: 40 bytes.
type ShapeDescriptor struct {
	Tag      uint32     // offset  0: ShapeKind tag (4 bytes)
	Position mgl32.Vec2 // offset  4: position in NDC (8 bytes)
	Size     mgl32.Vec2 // offset 12: width and height in NDC (8 bytes)
	Radius   float32    // offset 20: circle radius (4 bytes)
	Color    mgl32.Vec4 // offset 24: RGBA color (16 bytes)
}

// NewShapeDescriptor builds a descriptor for the given kind. Values are not validated;
// negative sizes and radii are stored as given.
//
// Parameters:
//   - size: the shape width and height
//   - position: the shape position
//   - color: the RGBA color
//   - radius: the circle radius (ignored by rectangles but still stored)
//   - kind: the shape kind, encoded into Tag
//
// Returns:
//   - ShapeDescriptor: the descriptor ready for Marshal
func NewShapeDescriptor(size, position mgl32.Vec2, color mgl32.Vec4, radius float32, kind ShapeKind) ShapeDescriptor {
	return ShapeDescriptor{
		Tag:      uint32(kind),
		Position: position,
		Size:     size,
		Radius:   radius,
		Color:    color,
	}
}

// Kind decodes the packed tag back into a ShapeKind.
func (s ShapeDescriptor) Kind() ShapeKind {
	return ShapeKind(s.Tag)
}

// Marshal serializes the ShapeDescriptor into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 40-byte buffer ready for GPU upload.
func (s ShapeDescriptor) Marshal() []byte {
	buf := make([]byte, ShapeDescriptorSize)
	binary.LittleEndian.PutUint32(buf[0:4], s.Tag)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(s.Position[0]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(s.Position[1]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(s.Size[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(s.Size[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(s.Radius))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(s.Color[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(s.Color[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(s.Color[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(s.Color[3]))
	return buf
}

// UnmarshalShape decodes a packed ShapeDescriptor.
//
// Parameters:
//   - buf: at least ShapeDescriptorSize bytes produced by Marshal
//
// Returns:
//   - ShapeDescriptor: the decoded descriptor
//   - error: ErrInvalidArgument if the buffer is short or the tag is unknown
func UnmarshalShape(buf []byte) (ShapeDescriptor, error) {
	if len(buf) < ShapeDescriptorSize {
		return ShapeDescriptor{}, errors.Wrapf(ErrInvalidArgument, "shape buffer is %d bytes, need %d", len(buf), ShapeDescriptorSize)
	}
	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	s := ShapeDescriptor{
		Tag:      binary.LittleEndian.Uint32(buf[0:4]),
		Position: mgl32.Vec2{f(4), f(8)},
		Size:     mgl32.Vec2{f(12), f(16)},
		Radius:   f(20),
		Color:    mgl32.Vec4{f(24), f(28), f(32), f(36)},
	}
	if !s.Kind().Valid() {
		return ShapeDescriptor{}, errors.Wrapf(ErrInvalidArgument, "unknown shape tag %d", s.Tag)
	}
	return s, nil
}
