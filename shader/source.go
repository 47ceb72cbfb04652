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

// Source maps each stage to its shading language text.
type Source map[Kind]string

// Validate checks that every kind in RequiredKinds is present and that the
// text for each is not empty. Text consisting only of white space is
// considered empty.
func (src Source) Validate() error {
	return src.validate("")
}

func (src Source) validate(name string) error {
	for _, k := range RequiredKinds {
		text, ok := src[k]
		if !ok {
			return &FormatError{Name: name, Err: fmt.Errorf("%w: %s", ErrMissingStage, k)}
		}
		if strings.TrimSpace(text) == "" {
			return &FormatError{Name: name, Err: fmt.Errorf("%w: %s", ErrEmptyStage, k)}
		}
	}
	return nil
}

// Kinds returns the kinds in the Source in compile order.
func (src Source) Kinds() []Kind {
	var ks []Kind
	for k := Vertex; k < numKinds; k++ {
		if _, ok := src[k]; ok {
			ks = append(ks, k)
		}
	}
	return ks
}
