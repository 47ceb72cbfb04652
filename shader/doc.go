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

// Package shader handles the source text of a GPU program before it is given
// to the driver. The central type is Source, a mapping of stage Kind to
// shading language text.
//
// Source is most often produced by parsing a combined resource. A combined
// resource is plain text in which marker lines introduce the source for each
// stage:
//
//	#shader vertex
//	#version 330 core
//	layout(location = 0) in vec4 position;
//	void main(void) { gl_Position = position; }
//
//	#shader fragment
//	#version 330 core
//	layout(location = 0) out vec4 color;
//	void main(void) { color = vec4(1.0, 0.0, 0.0, 1.0); }
//
// Every line following a marker, up to the next marker or the end of the
// resource, belongs to the named stage. Lines are preserved verbatim and each
// is terminated with a newline. Lines before the first marker are ignored.
//
// The Origin interface abstracts over where source text comes from: literal
// text (Inline), a combined resource on disk (File) or in an fs.FS
// (Embedded), or WGSL translated to GLSL (WGSL). Whatever the origin, the
// result is a Source that has passed Validate().
//
// Failures are reported as either ResourceError, when the resource cannot be
// read, or FormatError, when the text is not a valid combined resource. No
// partial Source is ever returned alongside an error.
package shader
