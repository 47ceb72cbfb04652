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

// Package config handles the shaderpipe configuration file. The file is TOML
// and is found with paths.ResourcePath(). A missing file is not an error: the
// default values are used instead.
//
// Values in the configuration file can be overridden on the command line.
// See the main package for the flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jetsetilly/shaderpipe/paths"
	"github.com/jetsetilly/shaderpipe/shader"
	"github.com/jetsetilly/shaderpipe/window"
	"github.com/pelletier/go-toml/v2"
)

// Filename is the name of the configuration file in the resource directory.
const Filename = "config.toml"

// Window settings.
type Window struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Backend string `toml:"backend"`
	GLMajor int    `toml:"gl_major"`
	GLMinor int    `toml:"gl_minor"`
	VSync   bool   `toml:"vsync"`
}

// Shader settings.
type Shader struct {
	// combined resource to use if none is given on the command line. an
	// empty string means the built-in resource
	File string `toml:"file"`

	// a program that links but fails validation is treated as a failure
	StrictValidation bool `toml:"strict_validation"`

	// GLSL version to produce when translating WGSL
	GLSLVersion string `toml:"glsl_version"`
}

// Log settings.
type Log struct {
	// echo log entries to the terminal as they are made
	Echo bool `toml:"echo"`

	// maximum number of entries kept by the log
	MaxEntries int `toml:"max_entries"`
}

// Config is the complete configuration.
type Config struct {
	Window Window `toml:"window"`
	Shader Shader `toml:"shader"`
	Log    Log    `toml:"log"`
}

// Default returns the default configuration.
func Default() Config {
	w := window.DefaultConfig()
	return Config{
		Window: Window{
			Title:   w.Title,
			Width:   w.Width,
			Height:  w.Height,
			Backend: string(window.Backends[0]),
			GLMajor: w.GLMajor,
			GLMinor: w.GLMinor,
			VSync:   w.VSync,
		},
		Shader: Shader{
			StrictValidation: true,
			GLSLVersion:      shader.DefaultGLSLVersion,
		},
		Log: Log{
			MaxEntries: 256,
		},
	}
}

// Path returns the path of the configuration file.
func Path() string {
	return paths.ResourcePath(Filename)
}

// Load the configuration file at the path. If the file does not exist the
// default configuration is returned without error. Values missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read the configuration from an io.Reader. Unknown keys are an error.
func Read(r io.Reader) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(&cfg)
	if err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config: line %d, column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save the configuration to the path. Any missing directories are created.
func (cfg Config) Save(path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	err = cfg.Write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("config: %w", cerr)
	}

	return err
}

// Write the configuration as TOML to the io.Writer.
func (cfg Config) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate the configuration.
func (cfg Config) Validate() error {
	if _, err := window.ParseBackend(cfg.Window.Backend); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.WindowConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Log.MaxEntries <= 0 {
		return fmt.Errorf("config: log: max_entries must be greater than zero")
	}
	if !slices.Contains(shader.GLSLVersions(), cfg.Shader.GLSLVersion) {
		return fmt.Errorf("config: shader: unsupported glsl_version: %s (use one of %s)",
			cfg.Shader.GLSLVersion, strings.Join(shader.GLSLVersions(), ", "))
	}
	return nil
}

// WindowConfig returns the window settings as a window.Config.
func (cfg Config) WindowConfig() window.Config {
	return window.Config{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		GLMajor: cfg.Window.GLMajor,
		GLMinor: cfg.Window.GLMinor,
		VSync:   cfg.Window.VSync,
	}
}
