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

// Package shaders holds the built-in shader resources. They are embedded in the
// binary so that the program can run without any external files.
package shaders

import "embed"

// Resources is the file system containing the built-in resources.
//
//go:embed "basic.shader" "basic.wgsl" "gradient.shader"
var Resources embed.FS

// Names of the built-in resources.
const (
	Basic     = "basic.shader"
	Gradient  = "gradient.shader"
	BasicWGSL = "basic.wgsl"
)

// InlineVertex and InlineFragment are the stages of the basic shader as
// literal text. They are used when the -inline flag is given.
const InlineVertex = `#version 330 core

layout(location = 0) in vec4 position;

void main(void)
{
	gl_Position = position;
}
`

const InlineFragment = `#version 330 core

layout(location = 0) out vec4 color;

void main(void)
{
	color = vec4(1.0, 0.0, 0.0, 1.0);
}
`
