package lang

import "math"

// LinearRGBA is a color in linear space with alpha, each component in
// [0, 1]. Color literals are converted from their sRGB byte encoding into
// this representation once, at parse time; the interpreter never
// re-converts.
type LinearRGBA struct {
	R float32
	G float32
	B float32
	A float32
}

// SrgbRGBA is a gamma-compressed sRGB color with linear alpha.
type SrgbRGBA struct {
	R float32
	G float32
	B float32
	A float32
}

// srgbToLinear applies the standard sRGB transfer function. The clamped
// endpoints guarantee that 0.0 and 1.0 map to exactly 0.0 and 1.0.
func srgbToLinear(value float32) float32 {
	switch {
	case value <= 0.0:
		return 0.0
	case value <= 0.04045:
		return value / 12.92
	case value <= 1.0:
		// One precision throughout the quotient, so 1.055/1.055 cancels
		// exactly and a full 0xFF byte maps to exactly 1.0.
		return float32(math.Pow((float64(value)+0.055)/1.055, 2.4))
	default:
		return 1.0
	}
}

// linearToSrgb is the inverse transfer function, used when re-rendering
// color literals back to source text.
func linearToSrgb(value float32) float32 {
	switch {
	case value <= 0.0:
		return 0.0
	case value < 0.0031308:
		return value * 12.92
	case value <= 1.0:
		return float32(math.Pow(float64(value), 1.0/2.4)*1.055 - 0.055)
	default:
		return 1.0
	}
}

// SrgbFromPacked unpacks a 0xRRGGBBAA value into sRGB components.
func SrgbFromPacked(rgba uint32) SrgbRGBA {
	return SrgbRGBA{
		R: float32((rgba>>24)&0xff) / 255.0,
		G: float32((rgba>>16)&0xff) / 255.0,
		B: float32((rgba>>8)&0xff) / 255.0,
		A: float32(rgba&0xff) / 255.0,
	}
}

// Linear converts the color into linear space. Alpha is already linear and
// passes through unchanged.
func (c SrgbRGBA) Linear() LinearRGBA {
	return LinearRGBA{
		R: srgbToLinear(c.R),
		G: srgbToLinear(c.G),
		B: srgbToLinear(c.B),
		A: c.A,
	}
}

// Srgb converts the color back into gamma-compressed sRGB.
func (c LinearRGBA) Srgb() SrgbRGBA {
	return SrgbRGBA{
		R: linearToSrgb(c.R),
		G: linearToSrgb(c.G),
		B: linearToSrgb(c.B),
		A: c.A,
	}
}

// Packed re-encodes the color as a 0xRRGGBBAA value.
func (c SrgbRGBA) Packed() uint32 {
	pack := func(v float32) uint32 {
		return uint32(math.Round(float64(v) * 255.0))
	}

	return pack(c.R)<<24 | pack(c.G)<<16 | pack(c.B)<<8 | pack(c.A)
}
