// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/orimarko/sonar-java/internal/driver"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: symexec <file.java>")
		os.Exit(1)
	}

	if err := driver.AnalyzeFile(os.Args[1]); err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
}
