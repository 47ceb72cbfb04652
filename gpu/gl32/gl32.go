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

// Package gl32 implements the gpu.Driver interface for OpenGL 3.2 core (and
// later) contexts.
//
// The OpenGL context must have been created, and made current, on the calling
// goroutine before New() is called. See the window package.
package gl32

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/shader"
)

// Driver implements the gpu.Driver interface.
type Driver struct {
	version string
}

// New is the preferred method of initialisation for the Driver type.
func New() (*Driver, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	drv := &Driver{
		version: gl.GoStr(gl.GetString(gl.VERSION)),
	}

	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", drv.version)
	logger.Logf(logger.Allow, "gl32", "glsl: %s", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	return drv, nil
}

func (drv *Driver) Version() string {
	return drv.version
}

func (drv *Driver) CreateShader(kind shader.Kind) (uint32, error) {
	var h uint32
	switch kind {
	case shader.Vertex:
		h = gl.CreateShader(gl.VERTEX_SHADER)
	case shader.Fragment:
		h = gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return 0, fmt.Errorf("gl32: %w: %s", shader.ErrUnknownStage, kind)
	}
	if h == 0 {
		return 0, fmt.Errorf("gl32: cannot create %s shader: %s", kind, glError())
	}
	return h, nil
}

func (drv *Driver) ShaderSource(h uint32, text string) {
	csource, free := gl.Strs(text + "\x00")
	defer free()
	gl.ShaderSource(h, 1, csource, nil)
}

func (drv *Driver) CompileShader(h uint32) {
	gl.CompileShader(h)
}

func (drv *Driver) ShaderCompiled(h uint32) bool {
	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (drv *Driver) ShaderInfoLog(h uint32) string {
	var logLength int32
	gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	// the length includes the NULL character
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(h, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (drv *Driver) DeleteShader(h uint32) {
	gl.DeleteShader(h)
}

func (drv *Driver) CreateProgram() (uint32, error) {
	h := gl.CreateProgram()
	if h == 0 {
		return 0, fmt.Errorf("gl32: cannot create program: %s", glError())
	}
	return h, nil
}

func (drv *Driver) AttachShader(p uint32, s uint32) {
	gl.AttachShader(p, s)
}

func (drv *Driver) DetachShader(p uint32, s uint32) {
	gl.DetachShader(p, s)
}

func (drv *Driver) LinkProgram(p uint32) {
	gl.LinkProgram(p)
}

func (drv *Driver) ProgramLinked(p uint32) bool {
	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (drv *Driver) ValidateProgram(p uint32) {
	gl.ValidateProgram(p)
}

func (drv *Driver) ProgramValidated(p uint32) bool {
	var status int32
	gl.GetProgramiv(p, gl.VALIDATE_STATUS, &status)
	return status != gl.FALSE
}

func (drv *Driver) ProgramInfoLog(p uint32) string {
	var logLength int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(p, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (drv *Driver) UseProgram(p uint32) {
	gl.UseProgram(p)
}

func (drv *Driver) DeleteProgram(p uint32) {
	gl.DeleteProgram(p)
}

// glError returns the most recent OpenGL error as a string.
func glError() string {
	switch err := gl.GetError(); err {
	case gl.NO_ERROR:
		return "no error reported"
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	default:
		return fmt.Sprintf("error %#x", err)
	}
}

