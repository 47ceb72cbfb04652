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

package shader

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by FormatError. Use errors.Is() to test for them.
var (
	ErrUnknownStage    = errors.New("unrecognised stage")
	ErrMissingKeyword  = errors.New("marker has no stage keyword")
	ErrDuplicateMarker = errors.New("duplicate marker")
	ErrTooManyMarkers  = errors.New("too many markers")
	ErrMissingStage    = errors.New("missing stage")
	ErrEmptyStage      = errors.New("empty stage")
	ErrTranslation     = errors.New("translation failed")
)

// ResourceError is returned when a resource is missing or cannot be read.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("shader: resource: %v", e.Err)
	}
	return fmt.Sprintf("shader: resource: %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// FormatError is returned when the text of a resource is not a valid combined
// shader resource. Line is the one-based line number of the problem or zero if
// the problem is not specific to a line.
type FormatError struct {
	Name string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	switch {
	case e.Name != "" && e.Line > 0:
		return fmt.Sprintf("shader: format: %s:%d: %v", e.Name, e.Line, e.Err)
	case e.Name != "":
		return fmt.Sprintf("shader: format: %s: %v", e.Name, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("shader: format: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("shader: format: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
