// Package regl is a small declarative command layer over OpenGL.
//
// Draws are described as Command values, sparse patches that are folded onto
// a stack of resolved State snapshots. A Context owns that stack, a cache of
// linked shader programs keyed by source text, and the Device that executes
// the resolved state.
//
//	ctx := regl.New(dev)
//	err := ctx.Frame(func() error {
//		if err := ctx.Submit(clear); err != nil {
//			return err
//		}
//		return ctx.SubmitScope(pipeline, func() error {
//			return ctx.Submit(draw)
//		})
//	})
//
// A Context is not safe for concurrent use; like the GL context it drives, it
// belongs to one thread.
package regl
