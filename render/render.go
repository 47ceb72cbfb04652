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

// Package render draws with a linked gpu.Program. The Triangle type holds the
// vertex data for a single triangle and the Loop() function runs the frame
// loop for a window until the window is closed.
package render

import (
	"context"
	"errors"

	"github.com/jetsetilly/shaderpipe/gpu"
	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/window"
)

// Scene is drawn once per frame by Loop().
type Scene interface {
	Draw()
}

// Loop runs the frame loop: the program is bound once and then, for every
// frame, the scene is drawn, the window buffers are swapped and window events
// are polled.
//
// The loop ends when the window should close, when the context is cancelled or
// when maxFrames frames have been drawn. A maxFrames value of zero or less
// means there is no limit. The number of frames drawn is returned.
func Loop(ctx context.Context, win window.Window, prog *gpu.Program, scene Scene, maxFrames int) (int, error) {
	if !prog.Linked() {
		return 0, errors.New("render: program is not usable")
	}

	err := prog.Bind()
	if err != nil {
		return 0, err
	}

	var frames int
	for !win.ShouldClose() {
		if maxFrames > 0 && frames >= maxFrames {
			break
		}

		select {
		case <-ctx.Done():
			logger.Logf(logger.Allow, "render", "stopped after %d frames: %v", frames, ctx.Err())
			return frames, nil
		default:
		}

		scene.Draw()
		win.SwapBuffers()
		win.PollEvents()
		frames++
	}

	logger.Logf(logger.Allow, "render", "%d frames drawn", frames)

	return frames, nil
}
