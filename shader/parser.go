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
	"io"
	"os"
	"strings"
)

// MarkerToken is the first field of a marker line. The second field is the
// stage keyword.
const MarkerToken = "#shader"

// Parse a combined resource from an io.Reader.
func Parse(r io.Reader) (Source, error) {
	return parse("", r)
}

// ParseString parses a combined resource held in a string.
func ParseString(s string) (Source, error) {
	return parse("", strings.NewReader(s))
}

// ParseFile opens and parses the named combined resource.
func ParseFile(filename string) (Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &ResourceError{Name: filename, Err: err}
	}
	defer f.Close()
	return parse(filename, f)
}

func parse(name string, r io.Reader) (Source, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &ResourceError{Name: name, Err: err}
	}

	// convert resource to an array of lines. a final newline does not
	// introduce an extra (empty) line
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")

	bodies := make(map[Kind]*strings.Builder)
	current := numKinds
	markers := 0

	for i, ln := range lines {
		ln = strings.TrimSuffix(ln, "\r")

		keyword, ok := isMarker(ln)
		if !ok {
			// lines before the first marker have no stage
			if current != numKinds {
				bodies[current].WriteString(ln)
				bodies[current].WriteString("\n")
			}
			continue
		}

		markers++
		if markers > int(numKinds) {
			return nil, &FormatError{Name: name, Line: i + 1, Err: ErrTooManyMarkers}
		}

		if keyword == "" {
			return nil, &FormatError{Name: name, Line: i + 1, Err: ErrMissingKeyword}
		}

		k, err := ParseKind(keyword)
		if err != nil {
			return nil, &FormatError{Name: name, Line: i + 1, Err: err}
		}

		if _, ok := bodies[k]; ok {
			return nil, &FormatError{Name: name, Line: i + 1, Err: fmt.Errorf("%w: %s", ErrDuplicateMarker, k)}
		}

		bodies[k] = &strings.Builder{}
		current = k
	}

	src := make(Source, len(bodies))
	for k, b := range bodies {
		src[k] = b.String()
	}

	if err := src.validate(name); err != nil {
		return nil, err
	}

	return src, nil
}

// isMarker returns the stage keyword if the line is a marker line. The
// keyword will be empty if the marker line has no keyword.
func isMarker(ln string) (string, bool) {
	f := strings.Fields(ln)
	if len(f) == 0 || f[0] != MarkerToken {
		return "", false
	}
	if len(f) == 1 {
		return "", true
	}
	return f[1], true
}

// Format writes the Source as a combined resource. Stages are written in the
// order of RequiredKinds and the text of each stage is terminated with a
// newline if it is not already.
//
// Parsing the output of Format() produces an identical Source provided the
// text of every stage ends with a newline.
func Format(w io.Writer, src Source) error {
	for _, k := range src.Kinds() {
		text := src[k]
		if !strings.HasSuffix(text, "\n") {
			text = text + "\n"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n%s", MarkerToken, k, text); err != nil {
			return fmt.Errorf("shader: %w", err)
		}
	}
	return nil
}
