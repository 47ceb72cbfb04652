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

// Program is a linked GPU program. It is owned by the caller of Link() (or
// Build()) and must be released exactly once.
type Program struct {
	ctx       *Context
	handle    uint32
	validated bool
	log       string
	released  bool
}

// Handle returns the driver handle for the program.
func (prog *Program) Handle() uint32 {
	return prog.handle
}

// Linked returns true if the program can be bound for drawing. Only a
// successfully linked program is ever returned to the caller so this is
// false only after Release().
func (prog *Program) Linked() bool {
	return prog != nil && !prog.released
}

// Validated returns the result of validating the program after linking. This
// can only be false if the context was created without strict validation.
func (prog *Program) Validated() bool {
	return prog.validated
}

// Log returns the driver log produced during linking and validation. It may
// contain warnings even if the program linked successfully.
func (prog *Program) Log() string {
	return prog.log
}

// Bind the program for drawing.
func (prog *Program) Bind() error {
	if err := prog.ctx.check(); err != nil {
		return err
	}
	if prog.released {
		return &ContextError{Err: ErrReleased}
	}
	prog.ctx.drv.UseProgram(prog.handle)
	return nil
}

// Release the program. Releasing a program that is bound does not unbind it.
func (prog *Program) Release() error {
	if err := prog.ctx.check(); err != nil {
		return err
	}
	if prog.released {
		return &ContextError{Err: ErrReleased}
	}
	prog.ctx.drv.DeleteProgram(prog.handle)
	prog.released = true
	prog.ctx.livePrograms--
	return nil
}
