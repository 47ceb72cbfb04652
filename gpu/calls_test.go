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
	"fmt"
	"strings"
)

// callf formats a call in the same way as the fakedriver records it
func callf(name string, args ...uint32) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(s, ", "))
}
