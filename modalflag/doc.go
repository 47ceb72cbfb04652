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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and allows a different set of flags for
// each mode.
//
// Arguments are given to NewArgs() and then Parse() is called with no
// arguments. Flags for a mode are added before the call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "check")
//	echo := md.AddBool("echo", false, "echo log entries")
//	_, _ = md.Parse()
//
// After parsing, Mode() returns the selected mode. A mode is selected by the
// first argument after the flags. If the argument is not the name of a mode
// then the first mode in the list is selected and the argument is left for
// the mode to handle. Mode comparisons are case insensitive and Mode() always
// returns the upper case name.
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		frames := md.AddInt("frames", 0, "number of frames")
//		p, err := md.Parse()
//		...
//	}
//
// NewMode() starts a new set of flags for the arguments that remain. Modes
// can be nested as deep as required and Path() returns every mode selected so
// far.
//
// Parse() returns ParseHelp if the -help flag was given, in which case the
// help message has already been written to the Output field.
package modalflag
