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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/jetsetilly/shaderpipe/config"
	"github.com/jetsetilly/shaderpipe/gpu"
	"github.com/jetsetilly/shaderpipe/gpu/gl32"
	"github.com/jetsetilly/shaderpipe/highlight"
	"github.com/jetsetilly/shaderpipe/logger"
	"github.com/jetsetilly/shaderpipe/modalflag"
	"github.com/jetsetilly/shaderpipe/render"
	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/jetsetilly/shaderpipe/shaders"
	"github.com/jetsetilly/shaderpipe/statsview"
	"github.com/jetsetilly/shaderpipe/version"
	"github.com/jetsetilly/shaderpipe/window"
)

// exit status values. zero is success
const (
	// the program could not be set up. bad arguments, bad configuration, no
	// window or no GPU context
	exitSetup = 10

	// the shader could not be loaded, compiled or linked
	exitShader = 20
)

// prefix for shader arguments that name one of the built-in resources
const builtinPrefix = "builtin:"

// #mainthread
func init() {
	// the OpenGL context is tied to the thread that created it. the main
	// function runs on the main thread for as long as it is locked
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "CHECK", "DUMP", "TRANSLATE", "CONFIG", "VERSION")

	cfgPath := md.AddString("config", config.Path(), "configuration file")
	echo := md.AddBool("echo", false, "echo log entries to the terminal")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %s\n", err)
		os.Exit(exitSetup)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("* error: %s\n", err)
		os.Exit(exitSetup)
	}

	logger.SetMaxEntries(cfg.Log.MaxEntries)
	if *echo || cfg.Log.Echo {
		logger.SetEcho(logger.NewColorizer(os.Stderr))
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, cfg, false)
	case "CHECK":
		err = run(md, cfg, true)
	case "DUMP":
		err = dump(md, cfg)
	case "TRANSLATE":
		err = translate(md, cfg)
	case "CONFIG":
		err = saveConfig(md, cfg, *cfgPath)
	case "VERSION":
		fmt.Fprintln(md.Output, version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(exitStatus(err))
	}
}

// exitStatus returns the exit status for the error returned by one of the
// mode functions.
func exitStatus(err error) int {
	var resourceErr *shader.ResourceError
	var formatErr *shader.FormatError
	var compileErr *gpu.CompileError
	var linkErr *gpu.LinkError

	switch {
	case errors.As(err, &resourceErr),
		errors.As(err, &formatErr),
		errors.As(err, &compileErr),
		errors.As(err, &linkErr):
		return exitShader
	}
	return exitSetup
}

// originFor returns the shader.Origin for the command line argument. An empty
// argument means the shader file named in the configuration or, if that is
// empty, the built-in basic shader.
//
// Arguments beginning with "builtin:" name a built-in resource. Files with the
// .wgsl extension are translated to GLSL using the glsl version.
func originFor(arg string, glsl string, cfg config.Config) (shader.Origin, error) {
	if arg == "" {
		arg = cfg.Shader.File
	}
	if arg == "" {
		return shader.Embedded{FS: shaders.Resources, Name: shaders.Basic}, nil
	}

	if glsl == "" {
		glsl = cfg.Shader.GLSLVersion
	}

	if name, ok := strings.CutPrefix(arg, builtinPrefix); ok {
		if !isWGSL(name) {
			return shader.Embedded{FS: shaders.Resources, Name: name}, nil
		}
		b, err := shaders.Resources.ReadFile(name)
		if err != nil {
			return nil, &shader.ResourceError{Name: arg, Err: err}
		}
		return shader.WGSL{Name: arg, Text: string(b), Version: glsl}, nil
	}

	if isWGSL(arg) {
		b, err := os.ReadFile(arg)
		if err != nil {
			return nil, &shader.ResourceError{Name: arg, Err: err}
		}
		return shader.WGSL{Name: arg, Text: string(b), Version: glsl}, nil
	}

	return shader.File{Filename: arg}, nil
}

func isWGSL(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wgsl")
}

// shaderArg returns the single optional argument naming the shader
func shaderArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", nil
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

// run builds the shader program and draws with it until the window is closed.
// in check mode the window is hidden and nothing is drawn. the program is
// built, diagnostics are reported and the function returns.
func run(md *modalflag.Modes, cfg config.Config, check bool) error {
	md.NewMode()

	backend := md.AddString("backend", cfg.Window.Backend, fmt.Sprintf("window backend (%s, %s)", window.SDL, window.GLFW))
	strict := md.AddBool("strict", cfg.Shader.StrictValidation, "treat program validation failure as an error")
	glsl := md.AddString("glsl", cfg.Shader.GLSLVersion, "GLSL version to use when translating WGSL")
	inline := md.AddBool("inline", false, "use the inline version of the built-in shader")
	var frames *int
	var stats *bool
	if !check {
		frames = md.AddInt("frames", 0, "stop after number of frames (0 is no limit)")
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.URL("")))
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	arg, err := shaderArg(md)
	if err != nil {
		return err
	}

	var origin shader.Origin
	if *inline {
		if arg != "" {
			return fmt.Errorf("shader file cannot be used with -inline")
		}
		origin = shader.Inline{Vertex: shaders.InlineVertex, Fragment: shaders.InlineFragment}
	} else {
		origin, err = originFor(arg, *glsl, cfg)
		if err != nil {
			return err
		}
	}

	bk, err := window.ParseBackend(*backend)
	if err != nil {
		return err
	}

	wcfg := cfg.WindowConfig()
	wcfg.Hidden = check

	win, err := window.New(bk, wcfg)
	if err != nil {
		return err
	}

	drv, err := gl32.New()
	if err != nil {
		_ = win.Destroy()
		return err
	}

	ctx, err := gpu.NewContext(drv, gpu.WithStrictValidation(*strict))
	if err != nil {
		_ = win.Destroy()
		return err
	}

	// the vertex array must be bound before the program is validated
	tri := render.NewTriangle()

	prog, err := gpu.Build(ctx, origin)
	if err != nil {
		report(md.Output, ctx.Logger())
		return shutdown(win, ctx, tri, nil, err)
	}

	if check {
		fmt.Fprintf(md.Output, "%s: program linked", origin)
		if !prog.Validated() {
			fmt.Fprintf(md.Output, " (not validated)")
		}
		fmt.Fprintln(md.Output)
		report(md.Output, ctx.Logger())
		return shutdown(win, ctx, tri, prog, nil)
	}

	if *stats {
		statsview.Launch(md.Output, "")
	}

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = render.Loop(sigctx, win, prog, tri, *frames)

	return shutdown(win, ctx, tri, prog, err)
}

// shutdown releases everything created by run() in the reverse order of
// creation. the returned error is the err argument if it is not nil.
// otherwise it is the first error encountered during shutdown.
func shutdown(win window.Window, ctx *gpu.Context, tri *render.Triangle, prog *gpu.Program, err error) error {
	keep := func(e error) {
		if e != nil {
			logger.Log(logger.Allow, "shutdown", e)
			if err == nil {
				err = e
			}
		}
	}

	if prog != nil {
		keep(prog.Release())
	}
	tri.Destroy()
	keep(ctx.Destroy())
	keep(win.Destroy())

	return err
}

// diagnostic tags that are reported to the user when a build fails
var diagnosticTags = []string{"source", "compile", "link"}

// report writes the diagnostic entries in the log to the io.Writer. nothing
// is written if the log is already being echoed.
func report(output io.Writer, log *logger.Logger) {
	if log.Echoing() {
		return
	}
	w := logger.NewColorizer(output)
	for _, e := range log.Entries() {
		if slices.Contains(diagnosticTags, e.Tag) {
			_, _ = io.WriteString(w, e.String())
		}
	}
}

// dump writes the shader source to the output, with highlighting.
func dump(md *modalflag.Modes, cfg config.Config) error {
	md.NewMode()

	style := md.AddString("style", highlight.DefaultStyle, "highlighting style")
	plain := md.AddBool("plain", false, "do not highlight")
	glsl := md.AddString("glsl", cfg.Shader.GLSLVersion, "GLSL version to use when translating WGSL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	arg, err := shaderArg(md)
	if err != nil {
		return err
	}

	origin, err := originFor(arg, *glsl, cfg)
	if err != nil {
		return err
	}

	src, err := origin.Source()
	if err != nil {
		return err
	}

	formatter := highlight.Plain
	if !*plain {
		formatter = highlight.FormatterFor(md.Output)
	}

	return highlight.NewHighlighter(formatter, *style).Source(md.Output, src)
}

// translate WGSL to a combined GLSL resource.
func translate(md *modalflag.Modes, cfg config.Config) error {
	md.NewMode()

	glsl := md.AddString("glsl", cfg.Shader.GLSLVersion, fmt.Sprintf("GLSL version (%s)", strings.Join(shader.GLSLVersions(), ", ")))
	out := md.AddString("out", "", "write to file rather than the terminal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var arg string
	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("WGSL file required for %s mode", md)
	case 1:
		arg = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	origin, err := originFor(arg, *glsl, cfg)
	if err != nil {
		return err
	}
	if _, ok := origin.(shader.WGSL); !ok {
		return fmt.Errorf("%s is not a WGSL file", arg)
	}

	src, err := origin.Source()
	if err != nil {
		return err
	}

	if *out == "" {
		return shader.Format(md.Output, src)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	err = shader.Format(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// saveConfig writes the configuration to the path. flags override the values
// in the configuration.
func saveConfig(md *modalflag.Modes, cfg config.Config, path string) error {
	md.NewMode()

	backend := md.AddString("backend", cfg.Window.Backend, "window backend")
	strict := md.AddBool("strict", cfg.Shader.StrictValidation, "treat program validation failure as an error")
	file := md.AddString("shader", cfg.Shader.File, "default shader file")
	echo := md.AddBool("echo", cfg.Log.Echo, "echo log entries to the terminal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	cfg.Window.Backend = *backend
	cfg.Shader.StrictValidation = *strict
	cfg.Shader.File = *file
	cfg.Log.Echo = *echo

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "configuration written to %s\n", path)

	return nil
}
