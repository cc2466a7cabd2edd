package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/regl/pkg/regl"
)

func bufferUsage(u regl.Usage) (uint32, error) {
	switch u {
	case regl.UsageStatic:
		return gl.STATIC_DRAW, nil
	case regl.UsageDynamic:
		return gl.DYNAMIC_DRAW, nil
	case regl.UsageStream:
		return gl.STREAM_DRAW, nil
	}
	return 0, fmt.Errorf("'%s' is not a valid buffer usage", u)
}

func textureFilter(f regl.Filter) (int32, error) {
	switch f {
	case regl.FilterNearest:
		return gl.NEAREST, nil
	case regl.FilterLinear:
		return gl.LINEAR, nil
	case regl.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR, nil
	case regl.FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR, nil
	case regl.FilterLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST, nil
	}
	return 0, fmt.Errorf("'%s' is not a valid texture filter", f)
}

func textureWrap(w regl.Wrap) (int32, error) {
	switch w {
	case regl.WrapClamp:
		return gl.CLAMP_TO_EDGE, nil
	case regl.WrapRepeat:
		return gl.REPEAT, nil
	case regl.WrapMirror:
		return gl.MIRRORED_REPEAT, nil
	}
	return 0, fmt.Errorf("'%s' is not a valid texture wrap mode", w)
}

func depthFunc(f regl.DepthFunc) uint32 {
	switch f {
	case regl.DepthLessEqual:
		return gl.LEQUAL
	case regl.DepthAlways:
		return gl.ALWAYS
	}
	return gl.LESS
}

// drawMode maps a resolved primitive. Dispatch has already rejected unknown
// values.
func drawMode(p regl.Primitive) uint32 {
	switch p {
	case regl.PrimitivePoints:
		return gl.POINTS
	case regl.PrimitiveLines:
		return gl.LINES
	case regl.PrimitiveLineStrip:
		return gl.LINE_STRIP
	case regl.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}
