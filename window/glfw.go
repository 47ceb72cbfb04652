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

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jetsetilly/shaderpipe/logger"
)

type glfwWindow struct {
	window *glfw.Window
}

// NewGLFW creates a window using the GLFW library.
func NewGLFW(cfg Config) (Window, error) {
	runtime.LockOSThread()

	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}

	logger.Logf(logger.Allow, "glfw", "version %s", glfw.GetVersionString())

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: %w", err)
	}

	w.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	logger.Logf(logger.Allow, "glfw", "using GL version %d.%d core", cfg.GLMajor, cfg.GLMinor)

	return &glfwWindow{window: w}, nil
}

func (win *glfwWindow) SwapBuffers() {
	win.window.SwapBuffers()
}

func (win *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (win *glfwWindow) ShouldClose() bool {
	return win.window.ShouldClose()
}

func (win *glfwWindow) Size() (int, int) {
	return win.window.GetFramebufferSize()
}

func (win *glfwWindow) Destroy() error {
	if win.window != nil {
		win.window.Destroy()
		win.window = nil
	}
	glfw.Terminate()
	return nil
}
