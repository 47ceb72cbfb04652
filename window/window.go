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

// Package window creates an operating system window with a current OpenGL
// context. Two backends are available: SDL and GLFW. Both produce a window
// satisfying the Window interface.
//
// A window must be created, used and destroyed on the same goroutine and that
// goroutine must be locked to its OS thread. The main package does this with
// runtime.LockOSThread() in its init() function.
package window

import (
	"errors"
	"fmt"
	"strings"
)

// Window is the interface to a window with a current OpenGL context.
type Window interface {
	// SwapBuffers presents the most recently drawn frame
	SwapBuffers()

	// PollEvents processes pending window events. It should be called once
	// per frame
	PollEvents()

	// ShouldClose returns true once the user has asked for the window to be
	// closed
	ShouldClose() bool

	// Size returns the drawable size of the window in pixels
	Size() (int, int)

	// Destroy the window and the OpenGL context. Any GPU resources created
	// with the context must have been released already
	Destroy() error
}

// Backend names a windowing library.
type Backend string

// List of valid Backend values.
const (
	SDL  Backend = "sdl"
	GLFW Backend = "glfw"
)

// Backends lists the supported backends. The first entry is the default.
var Backends = []Backend{SDL, GLFW}

// ErrUnknownBackend is returned by ParseBackend() and New() for a backend name
// that is not recognised.
var ErrUnknownBackend = errors.New("unknown backend")

// ParseBackend returns the Backend for the name. The name is case
// insensitive and the empty string is the default backend.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Backends[0], nil
	}
	for _, b := range Backends {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("window: %w: %s", ErrUnknownBackend, name)
}

// Config describes the window and the OpenGL context to create.
type Config struct {
	Title  string
	Width  int
	Height int

	// OpenGL context version. The context is always a core profile context
	GLMajor int
	GLMinor int

	// synchronise buffer swaps with the display refresh
	VSync bool

	// create the window but do not show it. useful when only an OpenGL
	// context is required
	Hidden bool
}

// DefaultConfig returns a Config suitable for the built-in shaders. These
// use GLSL version 330 and so require an OpenGL 3.3 context.
func DefaultConfig() Config {
	return Config{
		Title:   "Shaderpipe",
		Width:   640,
		Height:  480,
		GLMajor: 3,
		GLMinor: 3,
		VSync:   true,
	}
}

// Validate the Config.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("window: invalid size: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.GLMajor < 3 || (cfg.GLMajor == 3 && cfg.GLMinor < 2) {
		return fmt.Errorf("window: OpenGL %d.%d is not supported: 3.2 or later is required", cfg.GLMajor, cfg.GLMinor)
	}
	return nil
}

// New creates a window using the named backend. The OpenGL context of the new
// window is current on return.
func New(backend Backend, cfg Config) (Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch backend {
	case SDL:
		return NewSDL(cfg)
	case GLFW:
		return NewGLFW(cfg)
	}

	return nil, fmt.Errorf("window: %w: %s", ErrUnknownBackend, backend)
}
