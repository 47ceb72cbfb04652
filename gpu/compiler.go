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

import (
	"strings"

	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/shader"
)

// CompiledStage is a stage of a program that has been successfully compiled
// by the driver. It is owned by the caller of Compile() until it is passed to
// Link() or released with Release().
type CompiledStage struct {
	ctx      *Context
	kind     shader.Kind
	handle   uint32
	released bool
}

// Kind returns the stage kind.
func (st *CompiledStage) Kind() shader.Kind {
	return st.kind
}

// Handle returns the driver handle for the compiled stage.
func (st *CompiledStage) Handle() uint32 {
	return st.handle
}

// Valid returns true if the stage can be passed to Link(). A nil stage is not
// valid.
func (st *CompiledStage) Valid() bool {
	return st != nil && !st.released
}

// Release the driver resource. A stage that has been passed to Link() has
// already been released.
func (st *CompiledStage) Release() error {
	if err := st.ctx.check(); err != nil {
		return err
	}
	if st.released {
		return &ContextError{Err: ErrReleased}
	}
	st.release()
	return nil
}

func (st *CompiledStage) release() {
	st.ctx.drv.DeleteShader(st.handle)
	st.released = true
	st.ctx.liveStages--
}

// Compile the source text for a single stage. On failure the stage is nil,
// the error is a *CompileError and the driver log is added to the context's
// logger.
func (ctx *Context) Compile(kind shader.Kind, text string) (*CompiledStage, error) {
	if err := ctx.check(); err != nil {
		return nil, err
	}

	if !kind.Valid() {
		return nil, ctx.compileFailure(kind, "unsupported stage")
	}

	if strings.TrimSpace(text) == "" {
		return nil, ctx.compileFailure(kind, "empty source")
	}

	h, err := ctx.drv.CreateShader(kind)
	if err != nil {
		return nil, ctx.compileFailure(kind, err.Error())
	}

	ctx.drv.ShaderSource(h, text)
	ctx.drv.CompileShader(h)

	if !ctx.drv.ShaderCompiled(h) {
		log := ctx.drv.ShaderInfoLog(h)
		ctx.drv.DeleteShader(h)
		if strings.TrimSpace(log) == "" {
			log = "no diagnostic log from driver"
		}
		return nil, ctx.compileFailure(kind, log)
	}

	ctx.liveStages++

	return &CompiledStage{
		ctx:    ctx,
		kind:   kind,
		handle: h,
	}, nil
}

func (ctx *Context) compileFailure(kind shader.Kind, log string) error {
	ctx.log.Logf(logger.Allow, "compile", "%s: %s", kind, log)
	return &CompileError{Kind: kind, Log: log}
}
