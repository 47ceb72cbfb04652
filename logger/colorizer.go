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

package logger

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Colorizer applies basic coloring rules to logging output. The first line of
// an entry is written normally and any further lines, such as the lines of a
// multi-line driver log, are dimmed and colored red.
//
// If the underlying writer is not a terminal then no coloring is applied.
type Colorizer struct {
	out *termenv.Output
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: termenv.NewOutput(out)}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	l := strings.Split(strings.TrimRight(string(p), "\n"), "\n")

	var s strings.Builder
	s.WriteString(l[0])
	s.WriteString("\n")

	for _, ln := range l[1:] {
		s.WriteString(c.out.String(ln).Foreground(c.out.Color("1")).Faint().String())
		s.WriteString("\n")
	}

	_, err = io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
