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
	"bytes"
	"fmt"
	"io/fs"
)

// Origin is a place from which Source can be obtained.
type Origin interface {
	// Source returns a validated Source or an error. No partial Source is
	// returned on error.
	Source() (Source, error)

	fmt.Stringer
}

// Inline is an Origin for literal source text.
type Inline struct {
	Vertex   string
	Fragment string
}

func (o Inline) String() string {
	return "inline"
}

// Source implements the Origin interface.
func (o Inline) Source() (Source, error) {
	src := Source{
		Vertex:   o.Vertex,
		Fragment: o.Fragment,
	}
	if err := src.validate(o.String()); err != nil {
		return nil, err
	}
	return src, nil
}

// File is an Origin for a combined resource on disk.
type File struct {
	Filename string
}

func (o File) String() string {
	return o.Filename
}

// Source implements the Origin interface.
func (o File) Source() (Source, error) {
	return ParseFile(o.Filename)
}

// Embedded is an Origin for a combined resource in an fs.FS. Most often the
// file system will be an embed.FS.
type Embedded struct {
	FS   fs.FS
	Name string
}

func (o Embedded) String() string {
	return o.Name
}

// Source implements the Origin interface.
func (o Embedded) Source() (Source, error) {
	if o.FS == nil {
		return nil, &ResourceError{Name: o.Name, Err: fs.ErrInvalid}
	}
	b, err := fs.ReadFile(o.FS, o.Name)
	if err != nil {
		return nil, &ResourceError{Name: o.Name, Err: err}
	}
	return parse(o.Name, bytes.NewReader(b))
}
