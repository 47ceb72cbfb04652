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

package window

import (
	"fmt"
	"runtime"

	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/veandco/go-sdl2/sdl"
)

type sdlWindow struct {
	window    *sdl.Window
	glContext sdl.GLContext
	close     bool
}

// NewSDL creates a window using the SDL library.
func NewSDL(cfg Config) (Window, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	setAttr := func(attr sdl.GLattr, value int) {
		if err == nil {
			err = sdl.GLSetAttribute(attr, value)
		}
	}
	setAttr(sdl.GL_CONTEXT_MAJOR_VERSION, cfg.GLMajor)
	setAttr(sdl.GL_CONTEXT_MINOR_VERSION, cfg.GLMinor)
	setAttr(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	setAttr(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	setAttr(sdl.GL_DOUBLEBUFFER, 1)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	} else {
		flags |= sdl.WINDOW_SHOWN
	}

	win := &sdlWindow{}

	win.window, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win.glContext, err = win.window.GLCreateContext()
	if err != nil {
		_ = win.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	err = win.window.GLMakeCurrent(win.glContext)
	if err != nil {
		_ = win.Destroy()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	swap := 0
	if cfg.VSync {
		swap = 1
	}
	if err := sdl.GLSetSwapInterval(swap); err != nil {
		logger.Logf(logger.Allow, "sdl", "swap interval: %v", err)
	}

	major, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	minor, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	logger.Logf(logger.Allow, "sdl", "using GL version %d.%d core", major, minor)

	return win, nil
}

func (win *sdlWindow) SwapBuffers() {
	win.window.GLSwap()
}

func (win *sdlWindow) PollEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.close = true
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_CLOSE {
				win.close = true
			}
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				win.close = true
			}
		}
	}
}

func (win *sdlWindow) ShouldClose() bool {
	return win.close
}

func (win *sdlWindow) Size() (int, int) {
	w, h := win.window.GLGetDrawableSize()
	return int(w), int(h)
}

func (win *sdlWindow) Destroy() error {
	defer sdl.Quit()

	if win.glContext != nil {
		sdl.GLDeleteContext(win.glContext)
		win.glContext = nil
	}

	if win.window != nil {
		err := win.window.Destroy()
		win.window = nil
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
	}

	return nil
}
