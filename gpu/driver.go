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

package gpu

import "github.com/jetsetilly/shaderpipe/shader"

// Driver is the set of graphics driver calls required to build a GPU program.
// The names mirror the OpenGL functions they wrap.
//
// Handles returned by the driver are only meaningful to the driver. A zero
// handle is never returned with a nil error.
type Driver interface {
	// Version returns a description of the driver
	Version() string

	CreateShader(kind shader.Kind) (uint32, error)
	ShaderSource(shader uint32, text string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() (uint32, error)
	AttachShader(program uint32, shader uint32)
	DetachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ValidateProgram(program uint32)
	ProgramValidated(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
}
