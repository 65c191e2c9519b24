// automatonx is the command line editor for automaton specifications.
package main

import (
	"os"

	"github.com/comalice/automatonx/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
