// Command marklog previews marklog output: it renders sample events with
// any theme or template, explains how a template is parsed and prints the
// effective configuration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
