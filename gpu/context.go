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

package gpu

import (
	"fmt"

	"github.com/jetsetilly/shaderpipe/assert"
	"github.com/jetsetilly/shaderpipe/logger"
)

// Context is the explicit handle to a driver's GPU context. It must be created
// on the goroutine that owns the current GPU context and can only be used
// from that goroutine.
type Context struct {
	drv   Driver
	owner uint64
	log   *logger.Logger

	// treat a program that links but fails validation as a link failure
	strictValidation bool

	// number of live (unreleased) resources
	liveStages   int
	livePrograms int

	destroyed bool
}

// Option is used to configure a Context on creation.
type Option func(*Context)

// WithLogger sets the logger used for diagnostics. The default is the central
// logger.
func WithLogger(log *logger.Logger) Option {
	return func(ctx *Context) {
		if log != nil {
			ctx.log = log
		}
	}
}

// WithStrictValidation sets whether a program that fails validation is
// considered to have failed. The default is true.
func WithStrictValidation(strict bool) Option {
	return func(ctx *Context) {
		ctx.strictValidation = strict
	}
}

// NewContext is the preferred method of initialisation for the Context type.
// The driver's GPU context must be current.
func NewContext(drv Driver, opts ...Option) (*Context, error) {
	if drv == nil {
		return nil, &ContextError{Err: ErrNoDriver}
	}

	ctx := &Context{
		drv:              drv,
		owner:            assert.GetGoRoutineID(),
		log:              logger.Central(),
		strictValidation: true,
	}

	for _, o := range opts {
		o(ctx)
	}

	ctx.log.Logf(logger.Allow, "gpu", "context created: %s", drv.Version())

	return ctx, nil
}

func (ctx *Context) String() string {
	return ctx.drv.Version()
}

// check that the context can be used by the caller.
func (ctx *Context) check() error {
	if !assert.SameGoRoutine(ctx.owner) {
		return &ContextError{Err: ErrWrongGoroutine}
	}
	if ctx.destroyed {
		return &ContextError{Err: ErrDestroyed}
	}
	return nil
}

// Live returns the number of compiled stages and programs that have not yet
// been released.
func (ctx *Context) Live() (stages int, programs int) {
	return ctx.liveStages, ctx.livePrograms
}

// Logger returns the logger used for diagnostics.
func (ctx *Context) Logger() *logger.Logger {
	return ctx.log
}

// Destroy marks the end of the context. It fails if any compiled stage or
// program created with the context has not been released. The driver's GPU
// context should be torn down only after Destroy() has succeeded.
func (ctx *Context) Destroy() error {
	if err := ctx.check(); err != nil {
		return err
	}
	if ctx.liveStages > 0 || ctx.livePrograms > 0 {
		return &ContextError{Err: fmt.Errorf("%w: %d stages, %d programs", ErrLiveResources, ctx.liveStages, ctx.livePrograms)}
	}
	ctx.destroyed = true
	ctx.log.Log(logger.Allow, "gpu", "context destroyed")
	return nil
}
