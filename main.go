// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/orimarko/sonar-java/internal/driver"
)

// main is a thin wrapper delegating to the shared driver package, kept at
// the module root so `go run .` works.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sonar-java <file.java>")
		os.Exit(1)
	}

	if err := driver.AnalyzeFile(os.Args[1]); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}
