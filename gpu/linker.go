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
	"fmt"
	"strings"

	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/shader"
)

// Link the compiled stages into a Program.
//
// Every stage is released before Link() returns, whether or not linking was
// successful. The exception is when Link() is called from the wrong goroutine,
// in which case nothing is touched and a ContextError is returned.
//
// The driver is not called at all if any of the stages is nil, already
// released or from a different context, or if the stages do not include
// exactly one of each kind in shader.RequiredKinds. In this case the error is
// a *LinkError wrapping one of ErrInvalidStage, ErrMissingStage or
// ErrDuplicateStage.
func (ctx *Context) Link(stages ...*CompiledStage) (*Program, error) {
	if err := ctx.check(); err != nil {
		return nil, err
	}

	if err := ctx.checkStages(stages); err != nil {
		ctx.releaseStages(0, stages)
		ctx.log.Logf(logger.Allow, "link", "%v", err)
		return nil, &LinkError{Err: err}
	}

	h, err := ctx.drv.CreateProgram()
	if err != nil {
		ctx.releaseStages(0, stages)
		ctx.log.Logf(logger.Allow, "link", "%v", err)
		return nil, &LinkError{Err: err}
	}

	for _, st := range stages {
		ctx.drv.AttachShader(h, st.handle)
	}

	ctx.drv.LinkProgram(h)
	linked := ctx.drv.ProgramLinked(h)

	var validated bool
	if linked {
		ctx.drv.ValidateProgram(h)
		validated = ctx.drv.ProgramValidated(h)
	}

	log := ctx.drv.ProgramInfoLog(h)

	// the compiled stages are not needed once the program has been linked
	// (or has failed to link)
	ctx.releaseStages(h, stages)

	if !linked {
		ctx.drv.DeleteProgram(h)
		if strings.TrimSpace(log) == "" {
			log = "no diagnostic log from driver"
		}
		ctx.log.Logf(logger.Allow, "link", "failed: %s", log)
		return nil, &LinkError{Log: log, Linked: false, Validated: false}
	}

	if !validated {
		ctx.log.Logf(logger.Allow, "link", "validation failed: %s", log)
		if ctx.strictValidation {
			ctx.drv.DeleteProgram(h)
			return nil, &LinkError{Log: log, Linked: true, Validated: false}
		}
	}

	ctx.livePrograms++

	return &Program{
		ctx:       ctx,
		handle:    h,
		validated: validated,
		log:       log,
	}, nil
}

func (ctx *Context) checkStages(stages []*CompiledStage) error {
	seen := make(map[shader.Kind]bool)

	for i, st := range stages {
		if st == nil {
			return fmt.Errorf("%w: stage %d is nil", ErrInvalidStage, i)
		}
		if st.released {
			return fmt.Errorf("%w: %s stage has been released", ErrInvalidStage, st.kind)
		}
		if st.ctx != ctx {
			return fmt.Errorf("%w: %s stage belongs to another context", ErrInvalidStage, st.kind)
		}
		if seen[st.kind] {
			return fmt.Errorf("%w: %s", ErrDuplicateStage, st.kind)
		}
		seen[st.kind] = true
	}

	for _, k := range shader.RequiredKinds {
		if !seen[k] {
			return fmt.Errorf("%w: %s", ErrMissingStage, k)
		}
	}

	return nil
}

// releaseStages releases every stage that is valid and belongs to the
// context. If program is not zero then the stages are detached from it first.
func (ctx *Context) releaseStages(program uint32, stages []*CompiledStage) {
	for _, st := range stages {
		if !st.Valid() || st.ctx != ctx {
			continue
		}
		if program != 0 {
			ctx.drv.DetachShader(program, st.handle)
		}
		st.release()
	}
}
