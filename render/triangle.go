// This file is part of Shaderpipe.
//
// Shaderpipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Shaderpipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Shaderpipe.  If not, see <https://www.gnu.org/licenses/>.

package render

import (
	"github.com/go-gl/gl/v3.2-core/gl"
)

// TriangleVertices are the corners of the triangle drawn by the Triangle type.
// Each vertex is a two component position.
var TriangleVertices = [...]float32{
	-0.5, -0.5,
	0.0, 0.5,
	0.5, -0.5,
}

// Triangle implements the Scene interface and draws a single triangle from the
// vertex buffer created by NewTriangle(). The vertex position is attribute
// location zero.
type Triangle struct {
	vao uint32
	vbo uint32
}

// NewTriangle creates the vertex array and vertex buffer for the triangle. The
// vertex array is left bound.
//
// A vertex array must be bound before a program is validated in a core
// profile context, so NewTriangle() should be called before gpu.Build().
func NewTriangle() *Triangle {
	tri := &Triangle{}

	gl.GenVertexArrays(1, &tri.vao)
	gl.BindVertexArray(tri.vao)

	gl.GenBuffers(1, &tri.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tri.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(TriangleVertices)*4, gl.Ptr(&TriangleVertices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)

	return tri
}

// Draw implements the Scene interface.
func (tri *Triangle) Draw() {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// Destroy the vertex array and vertex buffer.
func (tri *Triangle) Destroy() {
	if tri.vbo != 0 {
		gl.DeleteBuffers(1, &tri.vbo)
		tri.vbo = 0
	}
	if tri.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &tri.vao)
		tri.vao = 0
	}
}
