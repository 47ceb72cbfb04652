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

package gpu_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/shaderpipe/gpu"
	"github.com/jetsetilly/shaderpipe/gpu/fakedriver"
	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/jetsetilly/shaderpipe/shaders"
)

const goodVertex = `#version 330 core
layout(location = 0) in vec4 position;
out vec2 uv;
void main(void)
{
	uv = position.xy;
	gl_Position = position;
}
`

const goodFragment = `#version 330 core
in vec2 uv;
layout(location = 0) out vec4 color;
void main(void)
{
	color = vec4(uv, 0.0, 1.0);
}
`

const badSyntax = `#version 330 core
void main(void)
{
	gl_Position = vec4(1.0;
}
`

func newContext(t *testing.T, opts ...gpu.Option) (*gpu.Context, *fakedriver.Driver, *logger.Logger) {
	t.Helper()
	drv := fakedriver.New()
	log := logger.NewLogger(100)
	ctx, err := gpu.NewContext(drv, append([]gpu.Option{gpu.WithLogger(log)}, opts...)...)
	require.NoError(t, err)
	drv.ResetCalls()
	log.Clear()
	return ctx, drv, log
}

func TestNoDriver(t *testing.T) {
	_, err := gpu.NewContext(nil)
	assert.ErrorIs(t, err, gpu.ErrNoDriver)
}

func TestCompile(t *testing.T) {
	ctx, drv, log := newContext(t)

	st, err := ctx.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.Valid())
	assert.Equal(t, shader.Vertex, st.Kind())
	assert.NotZero(t, st.Handle())
	assert.Equal(t, 1, drv.LiveShaders())
	assert.Equal(t, 0, log.Len())

	stages, programs := ctx.Live()
	assert.Equal(t, 1, stages)
	assert.Equal(t, 0, programs)

	require.NoError(t, st.Release())
	assert.False(t, st.Valid())
	assert.Equal(t, 0, drv.LiveShaders())

	var ce *gpu.ContextError
	assert.ErrorAs(t, st.Release(), &ce)
	assert.ErrorIs(t, st.Release(), gpu.ErrReleased)
}

func TestCompileFailure(t *testing.T) {
	ctx, drv, log := newContext(t)

	st, err := ctx.Compile(shader.Fragment, badSyntax)
	assert.Nil(t, st)
	assert.False(t, st.Valid())

	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, shader.Fragment, ce.Kind)
	assert.NotEmpty(t, ce.Log)
	assert.Contains(t, err.Error(), "fragment")

	// the driver resource is not leaked
	assert.Equal(t, 0, drv.LiveShaders())

	// diagnostic is tagged with the stage kind
	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "compile", entries[0].Tag)
	assert.True(t, strings.HasPrefix(entries[0].Detail, "fragment: "))
	assert.Contains(t, entries[0].Detail, "unbalanced")
}

func TestCompilePreconditions(t *testing.T) {
	ctx, drv, _ := newContext(t)

	var ce *gpu.CompileError

	_, err := ctx.Compile(shader.Vertex, "  \n")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "empty source", ce.Log)

	_, err = ctx.Compile(shader.Kind(99), goodVertex)
	require.ErrorAs(t, err, &ce)

	assert.Empty(t, drv.Calls())
}

func TestCompileCreateFailure(t *testing.T) {
	ctx, drv, _ := newContext(t)
	drv.FailCreate = true

	_, err := ctx.Compile(shader.Vertex, goodVertex)
	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Log, "cannot create shader")
	assert.False(t, drv.Called("CompileShader"))
}

func compileBoth(t *testing.T, ctx *gpu.Context, vert string, frag string) (*gpu.CompiledStage, *gpu.CompiledStage) {
	t.Helper()
	v, err := ctx.Compile(shader.Vertex, vert)
	require.NoError(t, err)
	f, err := ctx.Compile(shader.Fragment, frag)
	require.NoError(t, err)
	return v, f
}

func TestLink(t *testing.T) {
	ctx, drv, _ := newContext(t)
	v, f := compileBoth(t, ctx, goodVertex, goodFragment)
	drv.ResetCalls()

	prog, err := ctx.Link(v, f)
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.True(t, prog.Linked())
	assert.True(t, prog.Validated())

	// the compiled stages have been consumed
	assert.False(t, v.Valid())
	assert.False(t, f.Valid())
	assert.Equal(t, 0, drv.LiveShaders())
	assert.Equal(t, 1, drv.LivePrograms())

	stages, programs := ctx.Live()
	assert.Equal(t, 0, stages)
	assert.Equal(t, 1, programs)

	// the stages are released after attaching, linking and validating
	p := prog.Handle()
	assert.Equal(t, []string{
		"CreateProgram",
		callf("AttachShader", p, v.Handle()),
		callf("AttachShader", p, f.Handle()),
		callf("LinkProgram", p),
		callf("ProgramLinked", p),
		callf("ValidateProgram", p),
		callf("ProgramValidated", p),
		callf("ProgramInfoLog", p),
		callf("DetachShader", p, v.Handle()),
		callf("DeleteShader", v.Handle()),
		callf("DetachShader", p, f.Handle()),
		callf("DeleteShader", f.Handle()),
	}, drv.Calls())

	require.NoError(t, prog.Bind())
	assert.Equal(t, p, drv.Bound())

	require.NoError(t, prog.Release())
	assert.False(t, prog.Linked())
	assert.Equal(t, 0, drv.LivePrograms())
	assert.ErrorIs(t, prog.Release(), gpu.ErrReleased)
	assert.ErrorIs(t, prog.Bind(), gpu.ErrReleased)

	require.NoError(t, ctx.Destroy())
}

func TestLinkInvalidStage(t *testing.T) {
	ctx, drv, log := newContext(t)

	v, err := ctx.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)

	// a failed compilation produces a nil stage
	f, err := ctx.Compile(shader.Fragment, badSyntax)
	require.Error(t, err)
	drv.ResetCalls()

	prog, err := ctx.Link(v, f)
	assert.Nil(t, prog)

	var le *gpu.LinkError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, gpu.ErrInvalidStage)
	assert.False(t, le.Linked)

	// the driver was never asked to link
	assert.False(t, drv.Called("CreateProgram"))
	assert.False(t, drv.Called("LinkProgram"))

	// but the valid stage has still been released
	assert.False(t, v.Valid())
	assert.Equal(t, 0, drv.LiveShaders())
	assert.Contains(t, log.Entries()[len(log.Entries())-1].Tag, "link")
}

func TestLinkStageChecks(t *testing.T) {
	ctx, drv, _ := newContext(t)

	// missing stage
	v, err := ctx.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)
	_, err = ctx.Link(v)
	assert.ErrorIs(t, err, gpu.ErrMissingStage)
	assert.False(t, v.Valid())

	// released stage
	v, f := compileBoth(t, ctx, goodVertex, goodFragment)
	require.NoError(t, f.Release())
	_, err = ctx.Link(v, f)
	assert.ErrorIs(t, err, gpu.ErrInvalidStage)
	assert.False(t, v.Valid())

	// duplicate stage
	v, f = compileBoth(t, ctx, goodVertex, goodFragment)
	v2, err := ctx.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)
	_, err = ctx.Link(v, v2, f)
	assert.ErrorIs(t, err, gpu.ErrDuplicateStage)

	// same stage twice
	v, f = compileBoth(t, ctx, goodVertex, goodFragment)
	_, err = ctx.Link(v, v, f)
	assert.ErrorIs(t, err, gpu.ErrDuplicateStage)

	// stage from another context
	other, otherDrv, _ := newContext(t)
	ov, err := other.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)
	f, err = ctx.Compile(shader.Fragment, goodFragment)
	require.NoError(t, err)
	_, err = ctx.Link(ov, f)
	assert.ErrorIs(t, err, gpu.ErrInvalidStage)
	assert.True(t, ov.Valid())
	require.NoError(t, ov.Release())
	assert.Equal(t, 0, otherDrv.LiveShaders())

	assert.False(t, drv.Called("LinkProgram"))
	assert.Equal(t, 0, drv.LiveShaders())
	assert.Equal(t, 0, drv.LivePrograms())
	require.NoError(t, ctx.Destroy())
}

func TestLinkFailure(t *testing.T) {
	ctx, drv, log := newContext(t)

	// fragment input has no matching vertex output
	v, f := compileBoth(t, ctx, shaders.InlineVertex, goodFragment)

	prog, err := ctx.Link(v, f)
	assert.Nil(t, prog)

	var le *gpu.LinkError
	require.ErrorAs(t, err, &le)
	assert.False(t, le.Linked)
	assert.False(t, le.Validated)
	assert.Nil(t, le.Err)
	assert.Contains(t, le.Log, "uv")
	assert.False(t, drv.Called("ValidateProgram"))

	// nothing leaked
	assert.False(t, v.Valid())
	assert.False(t, f.Valid())
	assert.Equal(t, 0, drv.LiveShaders())
	assert.Equal(t, 0, drv.LivePrograms())

	last := log.Entries()[log.Len()-1]
	assert.Equal(t, "link", last.Tag)
	assert.Contains(t, last.Detail, "no matching vertex shader output")

	require.NoError(t, ctx.Destroy())
}

func TestLinkCreateFailure(t *testing.T) {
	ctx, drv, _ := newContext(t)
	v, f := compileBoth(t, ctx, goodVertex, goodFragment)
	drv.FailCreate = true

	_, err := ctx.Link(v, f)
	var le *gpu.LinkError
	require.ErrorAs(t, err, &le)
	assert.NotNil(t, le.Err)
	assert.False(t, drv.Called("LinkProgram"))
	assert.Equal(t, 0, drv.LiveShaders())
}

func TestValidation(t *testing.T) {
	ctx, drv, _ := newContext(t)
	drv.FailValidate = true

	v, f := compileBoth(t, ctx, goodVertex, goodFragment)
	_, err := ctx.Link(v, f)
	var le *gpu.LinkError
	require.ErrorAs(t, err, &le)
	assert.True(t, le.Linked)
	assert.False(t, le.Validated)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, 0, drv.LivePrograms())

	// without strict validation the program is still usable
	lax, laxDrv, log := newContext(t, gpu.WithStrictValidation(false))
	laxDrv.FailValidate = true

	v, f = compileBoth(t, lax, goodVertex, goodFragment)
	prog, err := lax.Link(v, f)
	require.NoError(t, err)
	assert.True(t, prog.Linked())
	assert.False(t, prog.Validated())
	assert.Contains(t, prog.Log(), "validation failed")
	assert.Equal(t, "link", log.Entries()[log.Len()-1].Tag)
	require.NoError(t, prog.Release())
}

func TestWrongGoroutine(t *testing.T) {
	ctx, drv, _ := newContext(t)
	v, err := ctx.Compile(shader.Vertex, goodVertex)
	require.NoError(t, err)
	drv.ResetCalls()

	done := make(chan error)
	go func() {
		_, err := ctx.Compile(shader.Fragment, goodFragment)
		done <- err
	}()
	assert.ErrorIs(t, <-done, gpu.ErrWrongGoroutine)

	go func() {
		_, err := ctx.Link(v)
		done <- err
	}()
	err = <-done
	var ce *gpu.ContextError
	assert.ErrorAs(t, err, &ce)

	go func() {
		done <- v.Release()
	}()
	assert.ErrorIs(t, <-done, gpu.ErrWrongGoroutine)

	go func() {
		done <- ctx.Destroy()
	}()
	assert.ErrorIs(t, <-done, gpu.ErrWrongGoroutine)

	// nothing was touched from the other goroutine
	assert.Empty(t, drv.Calls())
	assert.True(t, v.Valid())
	require.NoError(t, v.Release())
}

func TestDestroy(t *testing.T) {
	ctx, _, _ := newContext(t)

	prog, err := gpu.Build(ctx, shader.Inline{Vertex: goodVertex, Fragment: goodFragment})
	require.NoError(t, err)

	// cannot destroy context while program is live
	assert.ErrorIs(t, ctx.Destroy(), gpu.ErrLiveResources)

	require.NoError(t, prog.Release())
	require.NoError(t, ctx.Destroy())

	// context cannot be used after it has been destroyed
	_, err = ctx.Compile(shader.Vertex, goodVertex)
	assert.ErrorIs(t, err, gpu.ErrDestroyed)
	assert.ErrorIs(t, ctx.Destroy(), gpu.ErrDestroyed)
}

func TestBuild(t *testing.T) {
	ctx, drv, log := newContext(t)

	origins := []shader.Origin{
		shader.Inline{Vertex: shaders.InlineVertex, Fragment: shaders.InlineFragment},
		shader.Embedded{FS: shaders.Resources, Name: shaders.Basic},
		shader.Embedded{FS: shaders.Resources, Name: shaders.Gradient},
	}

	for _, o := range origins {
		prog, err := gpu.Build(ctx, o)
		require.NoError(t, err, o.String())
		assert.True(t, prog.Linked(), o.String())
		assert.Equal(t, 0, drv.LiveShaders(), o.String())
		require.NoError(t, prog.Release())
	}

	assert.Equal(t, "build", log.Entries()[log.Len()-1].Tag)
	require.NoError(t, ctx.Destroy())
}

func TestBuildFromFile(t *testing.T) {
	ctx, _, _ := newContext(t)

	fn := filepath.Join(t.TempDir(), "test.shader")
	require.NoError(t, os.WriteFile(fn, []byte("#shader vertex\n"+goodVertex+"#shader fragment\n"+goodFragment), 0o644))

	prog, err := gpu.Build(ctx, shader.File{Filename: fn})
	require.NoError(t, err)
	require.NoError(t, prog.Release())

	_, err = gpu.Build(ctx, shader.File{Filename: filepath.Join(t.TempDir(), "missing.shader")})
	var re *shader.ResourceError
	assert.ErrorAs(t, err, &re)
}

func TestBuildFormatError(t *testing.T) {
	ctx, drv, log := newContext(t)

	_, err := gpu.Build(ctx, shader.Inline{Vertex: goodVertex})
	var fe *shader.FormatError
	require.ErrorAs(t, err, &fe)

	// nothing was sent to the driver
	assert.Empty(t, drv.Calls())
	assert.Equal(t, "source", log.Entries()[0].Tag)
}

func TestBuildCompileErrors(t *testing.T) {
	ctx, drv, log := newContext(t)

	// both stages fail. both are reported in the log but the vertex
	// failure is returned
	_, err := gpu.Build(ctx, shader.Inline{Vertex: badSyntax, Fragment: "void nothing() {}"})
	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, shader.Vertex, ce.Kind)

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.True(t, strings.HasPrefix(entries[0].Detail, "vertex: "))
	assert.True(t, strings.HasPrefix(entries[1].Detail, "fragment: "))
	assert.Contains(t, entries[1].Detail, "main")

	// fragment failure only. the vertex stage is released
	_, err = gpu.Build(ctx, shader.Inline{Vertex: goodVertex, Fragment: badSyntax})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, shader.Fragment, ce.Kind)
	assert.Equal(t, 0, drv.LiveShaders())
	assert.False(t, drv.Called("CreateProgram"))

	require.NoError(t, ctx.Destroy())
}

func TestRebuild(t *testing.T) {
	ctx, drv, _ := newContext(t)

	prog, err := gpu.Rebuild(ctx, nil, shader.Inline{Vertex: goodVertex, Fragment: goodFragment})
	require.NoError(t, err)

	// failed rebuild keeps the old program
	kept, err := gpu.Rebuild(ctx, prog, shader.Inline{Vertex: goodVertex, Fragment: badSyntax})
	require.Error(t, err)
	assert.Same(t, prog, kept)
	assert.True(t, prog.Linked())

	// successful rebuild releases the old program
	next, err := gpu.Rebuild(ctx, prog, shader.Embedded{FS: shaders.Resources, Name: shaders.Gradient})
	require.NoError(t, err)
	assert.NotSame(t, prog, next)
	assert.False(t, prog.Linked())
	assert.Equal(t, 1, drv.LivePrograms())

	require.NoError(t, next.Release())
	require.NoError(t, ctx.Destroy())
}

func TestErrorMessages(t *testing.T) {
	err := &gpu.CompileError{Kind: shader.Vertex, Log: "0:1(1): error\n"}
	assert.Equal(t, "gpu: compile: vertex: 0:1(1): error", err.Error())

	le := &gpu.LinkError{Log: "bad\n"}
	assert.Equal(t, "gpu: link: failed: bad", le.Error())

	le = &gpu.LinkError{Log: "bad\n", Linked: true}
	assert.Equal(t, "gpu: link: validation failed: bad", le.Error())

	le = &gpu.LinkError{Err: gpu.ErrMissingStage}
	assert.True(t, errors.Is(le, gpu.ErrMissingStage))
}
