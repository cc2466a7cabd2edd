package regl

import "fmt"

// Usage is the buffer usage hint.
type Usage uint8

const (
	UsageStatic Usage = iota
	UsageDynamic
	UsageStream
)

// Wrap is a texture coordinate wrap mode.
type Wrap uint8

const (
	WrapClamp Wrap = iota
	WrapRepeat
	WrapMirror
)

// Filter is a texture sampling filter. Only Nearest and Linear are valid
// magnification filters.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterLinearMipmapLinear
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
)

// PixelFormat is a texture storage format.
type PixelFormat uint8

const (
	FormatRGBA8 PixelFormat = iota
)

// Primitive is a draw topology. The zero value is unset and resolves to
// Triangles at dispatch.
type Primitive uint8

const (
	PrimitiveUnset Primitive = iota
	PrimitiveTriangles
	PrimitivePoints
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangleStrip
)

var (
	usageNames = []string{
		UsageStatic:  "static",
		UsageDynamic: "dynamic",
		UsageStream:  "stream",
	}
	wrapNames = []string{
		WrapClamp:  "clamp",
		WrapRepeat: "repeat",
		WrapMirror: "mirror",
	}
	filterNames = []string{
		FilterNearest:             "nearest",
		FilterLinear:              "linear",
		FilterLinearMipmapLinear:  "linear mipmap linear",
		FilterNearestMipmapLinear: "nearest mipmap linear",
		FilterLinearMipmapNearest: "linear mipmap nearest",
	}
	formatNames = []string{
		FormatRGBA8: "rgba8",
	}
	primitiveNames = []string{
		PrimitiveUnset:         "",
		PrimitiveTriangles:     "triangles",
		PrimitivePoints:        "points",
		PrimitiveLines:         "lines",
		PrimitiveLineStrip:     "line strip",
		PrimitiveTriangleStrip: "triangle strip",
	}
)

func enumName[E ~uint8](names []string, e E) string {
	if int(e) < len(names) {
		return names[e]
	}
	return fmt.Sprintf("%d", uint8(e))
}

func enumValid[E ~uint8](names []string, e E) bool {
	return int(e) < len(names)
}

func parseEnum[E ~uint8](names []string, field, s string) (E, error) {
	for i, name := range names {
		if name != "" && name == s {
			return E(i), nil
		}
	}
	return 0, &ConfigError{Resource: "option", Field: field, Value: fmt.Sprintf("%q", s), Reason: "unsupported value"}
}

func (u Usage) String() string       { return enumName(usageNames, u) }
func (w Wrap) String() string        { return enumName(wrapNames, w) }
func (f Filter) String() string      { return enumName(filterNames, f) }
func (p PixelFormat) String() string { return enumName(formatNames, p) }
func (p Primitive) String() string   { return enumName(primitiveNames, p) }

// Valid reports whether u is a known usage.
func (u Usage) Valid() bool { return enumValid(usageNames, u) }

// Valid reports whether w is a known wrap mode.
func (w Wrap) Valid() bool { return enumValid(wrapNames, w) }

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool { return enumValid(filterNames, f) }

// Valid reports whether p is a known pixel format.
func (p PixelFormat) Valid() bool { return enumValid(formatNames, p) }

// Valid reports whether p is a known primitive, including unset.
func (p Primitive) Valid() bool { return enumValid(primitiveNames, p) }

// Mipmapped reports whether the filter samples from mipmap levels.
func (f Filter) Mipmapped() bool {
	switch f {
	case FilterLinearMipmapLinear, FilterNearestMipmapLinear, FilterLinearMipmapNearest:
		return true
	}
	return false
}

// ParseUsage parses "static", "dynamic" or "stream".
func ParseUsage(s string) (Usage, error) { return parseEnum[Usage](usageNames, "usage", s) }

// ParseWrap parses "clamp", "repeat" or "mirror".
func ParseWrap(s string) (Wrap, error) { return parseEnum[Wrap](wrapNames, "wrap", s) }

// ParseFilter parses a filter such as "linear" or "linear mipmap linear".
func ParseFilter(s string) (Filter, error) { return parseEnum[Filter](filterNames, "filter", s) }

// ParsePixelFormat parses "rgba8".
func ParsePixelFormat(s string) (PixelFormat, error) {
	return parseEnum[PixelFormat](formatNames, "pixel format", s)
}

// ParsePrimitive parses a primitive such as "triangles" or "points".
func ParsePrimitive(s string) (Primitive, error) {
	return parseEnum[Primitive](primitiveNames, "primitive", s)
}

func (u Usage) MarshalText() ([]byte, error)       { return []byte(u.String()), nil }
func (w Wrap) MarshalText() ([]byte, error)        { return []byte(w.String()), nil }
func (f Filter) MarshalText() ([]byte, error)      { return []byte(f.String()), nil }
func (p PixelFormat) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p Primitive) MarshalText() ([]byte, error)   { return []byte(p.String()), nil }

func (u *Usage) UnmarshalText(b []byte) (err error) {
	*u, err = ParseUsage(string(b))
	return err
}

func (w *Wrap) UnmarshalText(b []byte) (err error) {
	*w, err = ParseWrap(string(b))
	return err
}

func (f *Filter) UnmarshalText(b []byte) (err error) {
	*f, err = ParseFilter(string(b))
	return err
}

func (p *PixelFormat) UnmarshalText(b []byte) (err error) {
	*p, err = ParsePixelFormat(string(b))
	return err
}

func (p *Primitive) UnmarshalText(b []byte) (err error) {
	*p, err = ParsePrimitive(string(b))
	return err
}
