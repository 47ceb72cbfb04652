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

package highlight_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/shaderpipe/highlight"
	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/jetsetilly/shaderpipe/shaders"
	"github.com/jetsetilly/shaderpipe/test"
)

func TestFormatterFor(t *testing.T) {
	// a strings.Builder is not a terminal
	var b strings.Builder
	test.ExpectEquality(t, highlight.FormatterFor(&b), highlight.Plain)
}

func TestPlain(t *testing.T) {
	src, err := shader.Embedded{FS: shaders.Resources, Name: shaders.Basic}.Source()
	test.DemandSuccess(t, err)

	hl := highlight.NewHighlighter(highlight.Plain, "")

	var b strings.Builder
	test.ExpectSuccess(t, hl.Source(&b, src))

	// plain output is the combined resource without any decoration
	var expected strings.Builder
	test.DemandSuccess(t, shader.Format(&expected, src))
	test.ExpectEquality(t, b.String(), expected.String())

	// and can be parsed again
	again, err := shader.ParseString(b.String())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, again[shader.Vertex], src[shader.Vertex])
	test.ExpectEquality(t, again[shader.Fragment], src[shader.Fragment])
}

func TestColour(t *testing.T) {
	hl := highlight.NewHighlighter("terminal256", "monokai")

	var b strings.Builder
	test.ExpectSuccess(t, hl.Write(&b, shaders.InlineFragment))
	test.ExpectSuccess(t, strings.Contains(b.String(), "\x1b["))
	test.ExpectSuccess(t, strings.Contains(b.String(), "main"))
}

func TestUnknownNames(t *testing.T) {
	// unknown formatter and style names fall back to the chroma defaults
	hl := highlight.NewHighlighter("not-a-formatter", "not-a-style")

	var b strings.Builder
	test.ExpectSuccess(t, hl.Write(&b, shaders.InlineVertex))
	test.ExpectSuccess(t, strings.Contains(b.String(), "gl_Position"))
}
