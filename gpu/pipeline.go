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
	"errors"
	"fmt"

	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/shader"
)

// Build a Program from the source provided by the Origin. Every required stage
// is compiled, even if an earlier stage fails, so that all diagnostics are
// logged. The first failure is returned.
//
// The error will be one of *shader.ResourceError, *shader.FormatError,
// *CompileError, *LinkError or *ContextError, wrapped with the name of the
// origin.
func Build(ctx *Context, origin shader.Origin) (*Program, error) {
	if err := ctx.check(); err != nil {
		return nil, err
	}

	src, err := origin.Source()
	if err != nil {
		ctx.log.Log(logger.Allow, "source", err)
		return nil, fmt.Errorf("build: %s: %w", origin, err)
	}

	stages := make([]*CompiledStage, 0, len(shader.RequiredKinds))

	var compileErr error
	for _, k := range shader.RequiredKinds {
		st, err := ctx.Compile(k, src[k])
		if err != nil {
			if compileErr == nil {
				compileErr = err
			}

			// no point continuing if the context is unusable
			var ce *ContextError
			if errors.As(err, &ce) {
				break
			}
			continue
		}
		stages = append(stages, st)
	}

	if compileErr != nil {
		for _, st := range stages {
			_ = st.Release()
		}
		return nil, fmt.Errorf("build: %s: %w", origin, compileErr)
	}

	prog, err := ctx.Link(stages...)
	if err != nil {
		return nil, fmt.Errorf("build: %s: %w", origin, err)
	}

	ctx.log.Logf(logger.Allow, "build", "%s: program linked", origin)

	return prog, nil
}

// Rebuild a Program from the Origin. If the new build succeeds then the old
// program is released and the new program returned. If the build fails then
// the old program is returned, untouched, along with the error.
//
// The old program can be nil.
func Rebuild(ctx *Context, old *Program, origin shader.Origin) (*Program, error) {
	prog, err := Build(ctx, origin)
	if err != nil {
		return old, err
	}
	if old != nil && old.Linked() {
		if err := old.Release(); err != nil {
			return prog, err
		}
	}
	return prog, nil
}
