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
	"fmt"
	"strings"
)

// Kind identifies a stage of a GPU program.
type Kind int

// List of valid Kind values.
const (
	Vertex Kind = iota
	Fragment
	numKinds
)

// RequiredKinds is the list of stages that must be present for a program to
// be built. The order of the list is the order in which stages are compiled.
var RequiredKinds = []Kind{Vertex, Fragment}

// String returns the keyword used for the Kind in a marker line.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("unknown stage (%d)", int(k))
}

// Valid returns true if the Kind is a supported stage.
func (k Kind) Valid() bool {
	return k >= Vertex && k < numKinds
}

// ParseKind returns the Kind named by the keyword. Comparison is case
// insensitive.
func ParseKind(keyword string) (Kind, error) {
	switch strings.ToLower(keyword) {
	case "vertex":
		return Vertex, nil
	case "fragment":
		return Fragment, nil
	}
	return numKinds, fmt.Errorf("%w: %q", ErrUnknownStage, keyword)
}
