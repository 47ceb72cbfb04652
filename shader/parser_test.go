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

package shader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/jetsetilly/shaderpipe/test"
)

func TestParse(t *testing.T) {
	src, err := shader.ParseString("#shader vertex\nABC\n#shader fragment\nXYZ\n")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(src), 2)
	test.ExpectEquality(t, src[shader.Vertex], "ABC\n")
	test.ExpectEquality(t, src[shader.Fragment], "XYZ\n")
}

func TestParseOrderUnconstrained(t *testing.T) {
	src, err := shader.ParseString("#shader fragment\nXYZ\n#shader vertex\nABC\n")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src[shader.Vertex], "ABC\n")
	test.ExpectEquality(t, src[shader.Fragment], "XYZ\n")
}

func TestParseVerbatim(t *testing.T) {
	resource := strings.Join([]string{
		"// preamble is ignored",
		"#shader vertex",
		"#version 330 core",
		"",
		"  layout(location = 0) in vec4 position;",
		"void main(void) {\tgl_Position = position; }",
		"#shader   fragment",
		"#version 330 core",
		"void main(void) {}",
	}, "\n")

	// no newline at the end of the resource. the parser adds one to the
	// final line
	src, err := shader.ParseString(resource)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src[shader.Vertex], "#version 330 core\n\n  layout(location = 0) in vec4 position;\nvoid main(void) {\tgl_Position = position; }\n")
	test.ExpectEquality(t, src[shader.Fragment], "#version 330 core\nvoid main(void) {}\n")
}

func TestParseCRLF(t *testing.T) {
	src, err := shader.ParseString("#shader vertex\r\nABC\r\n#shader fragment\r\nXYZ\r\n")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src[shader.Vertex], "ABC\n")
	test.ExpectEquality(t, src[shader.Fragment], "XYZ\n")
}

func TestParseMissingStage(t *testing.T) {
	src, err := shader.ParseString("#shader vertex\nABC\n")
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, src == nil, true)

	var fe *shader.FormatError
	test.ExpectSuccess(t, errors.As(err, &fe))
	test.ExpectSuccess(t, errors.Is(err, shader.ErrMissingStage))

	_, err = shader.ParseString("#shader fragment\nXYZ\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrMissingStage))

	_, err = shader.ParseString("")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrMissingStage))

	_, err = shader.ParseString("void main(void) {}\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrMissingStage))
}

func TestParseEmptyStage(t *testing.T) {
	_, err := shader.ParseString("#shader vertex\n#shader fragment\nXYZ\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrEmptyStage))

	_, err = shader.ParseString("#shader vertex\nABC\n#shader fragment\n\n   \n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrEmptyStage))
}

func TestParseUnknownKeyword(t *testing.T) {
	_, err := shader.ParseString("#shader vertex\nABC\n#shader geometry\nGEO\n#shader fragment\nXYZ\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrUnknownStage))

	var fe *shader.FormatError
	test.DemandSuccess(t, errors.As(err, &fe))
	test.ExpectEquality(t, fe.Line, 3)

	_, err = shader.ParseString("#shader\nABC\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrMissingKeyword))
}

func TestParseDuplicateMarkers(t *testing.T) {
	_, err := shader.ParseString("#shader vertex\nABC\n#shader vertex\nDEF\n#shader fragment\nXYZ\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrDuplicateMarker))

	_, err = shader.ParseString("#shader vertex\nA\n#shader fragment\nB\n#shader vertex\nC\n")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrTooManyMarkers))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "test.shader")
	err := os.WriteFile(fn, []byte("#shader vertex\nABC\n#shader fragment\nXYZ\n"), 0o644)
	test.DemandSuccess(t, err)

	src, err := shader.ParseFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src[shader.Vertex], "ABC\n")

	_, err = shader.ParseFile(filepath.Join(dir, "missing.shader"))
	var re *shader.ResourceError
	test.ExpectSuccess(t, errors.As(err, &re))
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("device unplugged")
}

func TestParseUnreadable(t *testing.T) {
	_, err := shader.Parse(failingReader{})
	var re *shader.ResourceError
	test.ExpectSuccess(t, errors.As(err, &re))
}

func TestFormat(t *testing.T) {
	src := shader.Source{
		shader.Fragment: "XYZ\n",
		shader.Vertex:   "ABC",
	}

	w := &test.CompareWriter{}
	test.DemandSuccess(t, shader.Format(w, src))
	test.ExpectEquality(t, w.String(), "#shader vertex\nABC\n#shader fragment\nXYZ\n")

	// round trip
	rt, err := shader.ParseString(w.String())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rt[shader.Vertex], "ABC\n")
	test.ExpectEquality(t, rt[shader.Fragment], "XYZ\n")
}

func TestKind(t *testing.T) {
	k, err := shader.ParseKind("VERTEX")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, k, shader.Vertex)
	test.ExpectEquality(t, shader.Fragment.String(), "fragment")
	test.ExpectSuccess(t, shader.Fragment.Valid())
	test.ExpectFailure(t, shader.Kind(99).Valid())

	_, err = shader.ParseKind("compute")
	test.ExpectSuccess(t, errors.Is(err, shader.ErrUnknownStage))
}
