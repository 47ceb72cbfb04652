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

// Package fakedriver is an in-memory implementation of gpu.Driver. It is
// intended for testing and does not render anything.
//
// Compilation succeeds if the source contains a main function and has
// balanced brackets. Linking succeeds if every input declared by the fragment
// stage is declared as an output by the vertex stage. Both steps produce
// diagnostic logs in a style similar to a real driver.
//
// Every call made to the driver is recorded and can be inspected with the
// Calls() and Called() functions. Failures can also be forced with the
// FailCreate, FailLink and FailValidate fields.
package fakedriver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jetsetilly/shaderpipe/shader"
)

type fakeShader struct {
	kind     shader.Kind
	text     string
	compiled bool
	log      string
}

type fakeProgram struct {
	attached  map[uint32]bool
	linked    bool
	validated bool
	log       string
}

// Driver implements the gpu.Driver interface.
type Driver struct {
	// force CreateShader() and CreateProgram() to fail
	FailCreate bool

	// force LinkProgram() to fail
	FailLink bool

	// force ValidateProgram() to fail
	FailValidate bool

	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	bound    uint32
	calls    []string
}

// New is the preferred method of initialisation for the Driver type.
func New() *Driver {
	return &Driver{
		shaders:  make(map[uint32]*fakeShader),
		programs: make(map[uint32]*fakeProgram),
	}
}

func (drv *Driver) record(call string, args ...any) {
	if len(args) > 0 {
		s := make([]string, len(args))
		for i, a := range args {
			s[i] = fmt.Sprint(a)
		}
		call = fmt.Sprintf("%s(%s)", call, strings.Join(s, ", "))
	}
	drv.calls = append(drv.calls, call)
}

// Calls returns the list of calls made to the driver, in order.
func (drv *Driver) Calls() []string {
	c := make([]string, len(drv.calls))
	copy(c, drv.calls)
	return c
}

// Called returns true if a function with the given name has been called.
func (drv *Driver) Called(name string) bool {
	for _, c := range drv.calls {
		if c == name || strings.HasPrefix(c, name+"(") {
			return true
		}
	}
	return false
}

// ResetCalls clears the list of recorded calls.
func (drv *Driver) ResetCalls() {
	drv.calls = drv.calls[:0]
}

// LiveShaders returns the number of shaders that have not been deleted.
func (drv *Driver) LiveShaders() int {
	return len(drv.shaders)
}

// LivePrograms returns the number of programs that have not been deleted.
func (drv *Driver) LivePrograms() int {
	return len(drv.programs)
}

// Bound returns the handle of the program most recently passed to
// UseProgram().
func (drv *Driver) Bound() uint32 {
	return drv.bound
}

func (drv *Driver) Version() string {
	return "fake driver"
}

func (drv *Driver) handle() uint32 {
	drv.next++
	return drv.next
}

func (drv *Driver) CreateShader(kind shader.Kind) (uint32, error) {
	drv.record("CreateShader", kind)
	if drv.FailCreate {
		return 0, errors.New("fakedriver: cannot create shader")
	}
	h := drv.handle()
	drv.shaders[h] = &fakeShader{kind: kind}
	return h, nil
}

func (drv *Driver) ShaderSource(h uint32, text string) {
	drv.record("ShaderSource", h)
	if s, ok := drv.shaders[h]; ok {
		s.text = text
	}
}

var mainFunc = regexp.MustCompile(`\bvoid\s+main\s*\(`)

func (drv *Driver) CompileShader(h uint32) {
	drv.record("CompileShader", h)
	s, ok := drv.shaders[h]
	if !ok {
		return
	}

	var log strings.Builder

	if !mainFunc.MatchString(s.text) {
		log.WriteString("0:1(1): error: no function with name 'main'\n")
	}

	for _, p := range []string{"()", "{}", "[]"} {
		if n := strings.Count(s.text, p[:1]) - strings.Count(s.text, p[1:]); n != 0 {
			fmt.Fprintf(&log, "0:%d(1): error: syntax error, unbalanced '%s'\n", strings.Count(s.text, "\n")+1, p)
		}
	}

	s.log = log.String()
	s.compiled = s.log == ""
}

func (drv *Driver) ShaderCompiled(h uint32) bool {
	drv.record("ShaderCompiled", h)
	if s, ok := drv.shaders[h]; ok {
		return s.compiled
	}
	return false
}

func (drv *Driver) ShaderInfoLog(h uint32) string {
	drv.record("ShaderInfoLog", h)
	if s, ok := drv.shaders[h]; ok {
		return s.log
	}
	return ""
}

func (drv *Driver) DeleteShader(h uint32) {
	drv.record("DeleteShader", h)
	delete(drv.shaders, h)
}

func (drv *Driver) CreateProgram() (uint32, error) {
	drv.record("CreateProgram")
	if drv.FailCreate {
		return 0, errors.New("fakedriver: cannot create program")
	}
	h := drv.handle()
	drv.programs[h] = &fakeProgram{attached: make(map[uint32]bool)}
	return h, nil
}

func (drv *Driver) AttachShader(p uint32, s uint32) {
	drv.record("AttachShader", p, s)
	if prog, ok := drv.programs[p]; ok {
		prog.attached[s] = true
	}
}

func (drv *Driver) DetachShader(p uint32, s uint32) {
	drv.record("DetachShader", p, s)
	if prog, ok := drv.programs[p]; ok {
		delete(prog.attached, s)
	}
}

var (
	fragmentInput = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	vertexOutput  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?out\s+\w+\s+(\w+)\s*;`)
)

func (drv *Driver) LinkProgram(p uint32) {
	drv.record("LinkProgram", p)
	prog, ok := drv.programs[p]
	if !ok {
		return
	}

	var log strings.Builder

	if drv.FailLink {
		log.WriteString("error: linking failed\n")
	}

	stages := make(map[shader.Kind]*fakeShader)
	for h := range prog.attached {
		if s, ok := drv.shaders[h]; ok && s.compiled {
			stages[s.kind] = s
		}
	}

	vert, hasVert := stages[shader.Vertex]
	frag, hasFrag := stages[shader.Fragment]
	if !hasVert {
		log.WriteString("error: no vertex shader attached\n")
	}
	if !hasFrag {
		log.WriteString("error: no fragment shader attached\n")
	}

	if hasVert && hasFrag {
		outputs := make(map[string]bool)
		for _, m := range vertexOutput.FindAllStringSubmatch(vert.text, -1) {
			outputs[m[1]] = true
		}
		for _, m := range fragmentInput.FindAllStringSubmatch(frag.text, -1) {
			if !outputs[m[1]] {
				fmt.Fprintf(&log, "error: fragment shader input '%s' has no matching vertex shader output\n", m[1])
			}
		}
	}

	prog.log = log.String()
	prog.linked = prog.log == ""
}

func (drv *Driver) ProgramLinked(p uint32) bool {
	drv.record("ProgramLinked", p)
	if prog, ok := drv.programs[p]; ok {
		return prog.linked
	}
	return false
}

func (drv *Driver) ValidateProgram(p uint32) {
	drv.record("ValidateProgram", p)
	prog, ok := drv.programs[p]
	if !ok {
		return
	}
	if drv.FailValidate {
		prog.log = prog.log + "error: validation failed, no vertex array object bound\n"
		prog.validated = false
		return
	}
	prog.validated = prog.linked
}

func (drv *Driver) ProgramValidated(p uint32) bool {
	drv.record("ProgramValidated", p)
	if prog, ok := drv.programs[p]; ok {
		return prog.validated
	}
	return false
}

func (drv *Driver) ProgramInfoLog(p uint32) string {
	drv.record("ProgramInfoLog", p)
	if prog, ok := drv.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (drv *Driver) UseProgram(p uint32) {
	drv.record("UseProgram", p)
	drv.bound = p
}

func (drv *Driver) DeleteProgram(p uint32) {
	drv.record("DeleteProgram", p)
	delete(drv.programs, p)
}
