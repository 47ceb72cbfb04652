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

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// DefaultGLSLVersion is the GLSL version used by the WGSL origin when no
// version is specified.
const DefaultGLSLVersion = "330"

var glslVersions = map[string]glsl.Version{
	"330":    glsl.Version330,
	"400":    glsl.Version400,
	"410":    glsl.Version410,
	"420":    glsl.Version420,
	"430":    glsl.Version430,
	"450":    glsl.Version450,
	"460":    glsl.Version460,
	"300 es": glsl.VersionES300,
	"310 es": glsl.VersionES310,
	"320 es": glsl.VersionES320,
}

// GLSLVersions returns the list of version strings accepted by the WGSL
// origin.
func GLSLVersions() []string {
	return []string{"330", "400", "410", "420", "430", "450", "460", "300 es", "310 es", "320 es"}
}

// WGSL is an Origin for WGSL text. The text is translated to GLSL with one
// Source entry for the first vertex entry point and one for the first fragment
// entry point. Other entry points (compute for example) are ignored.
type WGSL struct {
	// Name is used in error messages only
	Name string
	Text string

	// Version is the target GLSL version. One of the values returned by
	// GLSLVersions(). Empty string means DefaultGLSLVersion
	Version string
}

func (o WGSL) String() string {
	if o.Name == "" {
		return "wgsl"
	}
	return o.Name
}

// Source implements the Origin interface.
func (o WGSL) Source() (Source, error) {
	name := o.String()

	ver := o.Version
	if ver == "" {
		ver = DefaultGLSLVersion
	}
	lang, ok := glslVersions[strings.ToLower(ver)]
	if !ok {
		return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: unsupported GLSL version %q", ErrTranslation, ver)}
	}

	ast, err := naga.Parse(o.Text)
	if err != nil {
		return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: %w", ErrTranslation, err)}
	}

	module, err := naga.LowerWithSource(ast, o.Text)
	if err != nil {
		return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: %w", ErrTranslation, err)}
	}

	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: %w", ErrTranslation, err)}
	}
	if len(verrs) > 0 {
		return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: %w", ErrTranslation, &verrs[0])}
	}

	src := make(Source)
	for _, ep := range module.EntryPoints {
		var k Kind
		switch ep.Stage {
		case ir.StageVertex:
			k = Vertex
		case ir.StageFragment:
			k = Fragment
		default:
			continue
		}

		// first entry point for the stage only
		if _, ok := src[k]; ok {
			continue
		}

		text, _, err := glsl.Compile(module, glsl.Options{
			LangVersion:        lang,
			EntryPoint:         ep.Name,
			ForceHighPrecision: lang.ES,
		})
		if err != nil {
			return nil, &FormatError{Name: name, Err: fmt.Errorf("%w: %s: %w", ErrTranslation, ep.Name, err)}
		}
		src[k] = text
	}

	if err := src.validate(name); err != nil {
		return nil, err
	}

	return src, nil
}
