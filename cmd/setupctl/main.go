// Command setupctl runs the setup viewer pipeline from a terminal: list the catalog,
// resolve a selection, convert a setup file and place values in their ranges.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}
