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
	"strings"

	"github.com/jetsetilly/shaderpipe/shader"
)

// Sentinel errors. Use errors.Is() to test for them.
var (
	// LinkError wraps these when the stages given to Link() are unsuitable
	ErrInvalidStage   = errors.New("invalid compiled stage")
	ErrMissingStage   = errors.New("missing compiled stage")
	ErrDuplicateStage = errors.New("duplicate compiled stage")

	// ContextError wraps these
	ErrWrongGoroutine = errors.New("context used from a goroutine other than the one that created it")
	ErrDestroyed      = errors.New("context has been destroyed")
	ErrLiveResources  = errors.New("context has live resources")
	ErrReleased       = errors.New("resource has already been released")
	ErrNoDriver       = errors.New("no driver")
)

// CompileError is returned when the source text for a stage does not compile.
// Log is the diagnostic log produced by the driver.
type CompileError struct {
	Kind shader.Kind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: compile: %s: %s", e.Kind, strings.TrimSpace(e.Log))
}

// LinkError is returned when a program cannot be linked. If Err is not nil
// then the driver was never asked to link because the stages were unsuitable.
// Otherwise, Log is the diagnostic log produced by the driver and the Linked
// and Validated fields report the outcome of each step. A program that fails
// to link is never validated.
type LinkError struct {
	Log       string
	Linked    bool
	Validated bool
	Err       error
}

func (e *LinkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("gpu: link: %v", e.Err)
	case !e.Linked:
		return fmt.Sprintf("gpu: link: failed: %s", strings.TrimSpace(e.Log))
	}
	return fmt.Sprintf("gpu: link: validation failed: %s", strings.TrimSpace(e.Log))
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// ContextError is returned when a Context, or a resource belonging to a
// Context, is used incorrectly.
type ContextError struct {
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("gpu: context: %v", e.Err)
}

func (e *ContextError) Unwrap() error {
	return e.Err
}
