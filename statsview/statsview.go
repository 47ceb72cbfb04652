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

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/shaderpipe/logger"
)

// Address is the default address of the stats server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// URL returns the address of the statistics page for the server address.
func URL(addr string) string {
	if addr == "" {
		addr = Address
	}
	return fmt.Sprintf("http://%s%s", addr, path)
}

// Launch a new goroutine running the stats server at the address. An empty
// address means the default Address. The URL of the statistics page is
// written to output.
func Launch(output io.Writer, addr string) {
	if addr == "" {
		addr = Address
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Logf(logger.Allow, "statsview", "stats server at %s", addr)
	fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
}
