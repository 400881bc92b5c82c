// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/orimarko/sonar-java/repl"
)

func main() {
	fmt.Println("symexec trace REPL — paste a function, then a blank line to run it. Ctrl-D to exit.")
	repl.Start(os.Stdin, os.Stdout)
}
