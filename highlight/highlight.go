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

// Package highlight writes shader source with syntax highlighting for display
// in a terminal.
package highlight

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/muesli/termenv"
)

// Plain is the name of the formatter that writes text without any
// highlighting.
const Plain = "noop"

// DefaultStyle is the chroma style used if no style is specified.
const DefaultStyle = "monokai"

// Highlighter writes GLSL source with highlighting.
type Highlighter struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter is the preferred method of initialisation for the
// Highlighter type. The formatter and style names are chroma names. Unknown
// names fall back to chroma's defaults.
func NewHighlighter(formatter string, style string) *Highlighter {
	lex := lexers.Get("glsl")
	if lex == nil {
		lex = lexers.Fallback
	}

	if style == "" {
		style = DefaultStyle
	}

	return &Highlighter{
		lexer:     chroma.Coalesce(lex),
		formatter: formatters.Get(formatter),
		style:     styles.Get(style),
	}
}

// FormatterFor returns the name of the most suitable formatter for the
// output, based on the colour profile of the terminal. If the output is not a
// terminal then the Plain formatter is returned.
func FormatterFor(w io.Writer) string {
	switch termenv.NewOutput(w).Profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	}
	return Plain
}

// Write highlighted text to the io.Writer.
func (hl *Highlighter) Write(w io.Writer, text string) error {
	it, err := hl.lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	err = hl.formatter.Format(w, hl.style, it)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return nil
}

// Source writes the Source as a combined resource, with highlighting.
func (hl *Highlighter) Source(w io.Writer, src shader.Source) error {
	var b bytes.Buffer
	err := shader.Format(&b, src)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return hl.Write(w, b.String())
}
