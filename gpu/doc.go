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

// Package gpu builds GPU programs from shader source. It compiles the text for
// each stage, links the compiled stages into a program and reports the
// diagnostic logs produced by the driver when either step fails.
//
// All work happens through a Context. A Context is created for a Driver once
// the driver's GPU context has been made current (see the window package) and
// it is tied to the goroutine that created it. Calls from any other goroutine
// fail with a ContextError. Nothing in this package starts a goroutine and
// every call blocks until the driver has finished.
//
// Compile() turns the text for one stage into a CompiledStage:
//
//	vert, err := ctx.Compile(shader.Vertex, text)
//
// On failure the returned stage is nil and the error is a *CompileError
// holding the driver's log. The log is also added to the context's logger
// under the "compile" tag.
//
// Link() consumes the compiled stages. Whatever the outcome, every stage
// passed to Link() has been released by the time it returns:
//
//	prog, err := ctx.Link(vert, frag)
//
// Link() refuses to call the driver at all if any stage is nil, has already
// been released, or if a required stage is missing. On failure the error is a
// *LinkError.
//
// Build() is the usual way of producing a Program. It takes a shader.Origin
// and runs the whole pipeline:
//
//	prog, err := gpu.Build(ctx, shader.File{Filename: "basic.shader"})
//
// A Program must be released exactly once with Release(), before the
// Context is destroyed.
package gpu
