package rendering

import (
	"image/color"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const blitProgram = "shaders/blit"

// quadVertices is a single triangle-strip quad covering clip space,
// position (x,y) interleaved with texture coordinates (u,v). The GIF
// raster's row 0 is its top row, so v is flipped relative to GL's
// bottom-left texture origin.
var quadVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	-1, 1, 0, 0,
	1, 1, 1, 0,
}

// Quad is the GL object set backing one textured full-window blit: a
// single VAO/VBO pair plus the texture holding the composited raster,
// reused frame over frame the way the decoder reuses its own raster
// buffer (spec §5 "Shared resources") instead of reallocating GL
// objects on every frame.
type Quad struct {
	vao, vbo, tex uint32
	w, h          int
}

// NewQuad allocates the GL objects for one playback window. Must be
// called with a current GL context (after glfw window creation and
// gl.Init).
func NewQuad() *Quad {
	q := &Quad{}

	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.GenTextures(1, &q.tex)
	gl.BindTexture(gl.TEXTURE_2D, q.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return q
}

// Upload replaces the quad's texture contents with an RGBA buffer of
// size w*h*4, allocating a new GPU-side image only when dimensions
// change.
func (q *Quad) Upload(rgba []byte, w, h int) {
	gl.BindTexture(gl.TEXTURE_2D, q.tex)
	if w != q.w || h != q.h {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
		q.w, q.h = w, h
		return
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

// Draw activates the blit program bound to texture unit 0 and issues
// the quad's draw call.
func (q *Quad) Draw() {
	UseProgram(blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, q.tex)
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// ExpandPalette flattens a frame's palette-index raster into tightly
// packed RGBA bytes, using transparentIndex (when transparent is true)
// to zero alpha for the Graphic Control Extension's transparent color
// (spec §3 FrameMeta, §4.2 "Graphic Control").
func ExpandPalette(pix []byte, palette color.Palette, transparent bool, transparentIndex byte) []byte {
	out := make([]byte, len(pix)*4)
	for i, idx := range pix {
		r, g, b, _ := palette[idx].RGBA()
		alpha := byte(0xFF)
		if transparent && idx == transparentIndex {
			alpha = 0
		}
		out[i*4+0] = byte(r >> 8)
		out[i*4+1] = byte(g >> 8)
		out[i*4+2] = byte(b >> 8)
		out[i*4+3] = alpha
	}
	return out
}
