package surface

import "fmt"

// ByteOrder selects how multi-byte pixels are laid out in memory
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// Format describes a packed RGB pixel layout
// Each channel occupies a contiguous bit field given by its mask; the shift is the field offset
type Format struct {
	Name          string
	BytesPerPixel int
	Order         ByteOrder

	RMask, GMask, BMask    uint32
	RShift, GShift, BShift uint8
}

// Predefined formats, one per supported pixel width
var (
	RGB332 = Format{
		Name: "RGB332", BytesPerPixel: 1,
		RMask: 0xE0, GMask: 0x1C, BMask: 0x03,
		RShift: 5, GShift: 2, BShift: 0,
	}
	RGB565 = Format{
		Name: "RGB565", BytesPerPixel: 2,
		RMask: 0xF800, GMask: 0x07E0, BMask: 0x001F,
		RShift: 11, GShift: 5, BShift: 0,
	}
	RGB888 = Format{
		Name: "RGB888", BytesPerPixel: 3,
		RMask: 0xFF0000, GMask: 0x00FF00, BMask: 0x0000FF,
		RShift: 16, GShift: 8, BShift: 0,
	}
	XRGB8888 = Format{
		Name: "XRGB8888", BytesPerPixel: 4,
		RMask: 0xFF0000, GMask: 0x00FF00, BMask: 0x0000FF,
		RShift: 16, GShift: 8, BShift: 0,
	}
)

// WithOrder returns a copy of f using the given byte order
func (f Format) WithOrder(o ByteOrder) Format {
	f.Order = o
	return f
}

// Validate checks that the pixel width is supported and the masks fit in it
func (f Format) Validate() error {
	if f.BytesPerPixel < 1 || f.BytesPerPixel > 4 {
		return fmt.Errorf("surface: unsupported pixel width %d", f.BytesPerPixel)
	}
	limit := uint32(1)<<(8*uint(f.BytesPerPixel)) - 1
	if f.BytesPerPixel == 4 {
		limit = 0xFFFFFFFF
	}
	for _, m := range []uint32{f.RMask, f.GMask, f.BMask} {
		if m == 0 || m&^limit != 0 {
			return fmt.Errorf("surface: format %q has channel mask %#x outside %d bytes", f.Name, m, f.BytesPerPixel)
		}
	}
	return nil
}

// MapRGB packs an 8-bit-per-channel color into a pixel value, dropping low bits as the mask requires
func (f Format) MapRGB(r, g, b uint8) uint32 {
	return pack(r, f.RMask, f.RShift) | pack(g, f.GMask, f.GShift) | pack(b, f.BMask, f.BShift)
}

// GetRGB unpacks a pixel value into 8-bit channels, scaling narrow fields to the full range
func (f Format) GetRGB(p uint32) (r, g, b uint8) {
	return unpack(p, f.RMask, f.RShift), unpack(p, f.GMask, f.GShift), unpack(p, f.BMask, f.BShift)
}

func pack(c uint8, mask uint32, shift uint8) uint32 {
	field := mask >> shift
	return (uint32(c) * field / 255 << shift) & mask
}

func unpack(p, mask uint32, shift uint8) uint8 {
	field := mask >> shift
	if field == 0 {
		return 0
	}
	v := (p & mask) >> shift
	return uint8(v * 255 / field)
}
