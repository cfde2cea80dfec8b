// main package for the audiogen command.
package main

import (
	"fmt"
	"os"

	"github.com/heomin86/obsidian-audio-generator/internal/cli"
)

func main() {
	err := cli.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audiogen exited with error: %v\n", err)
		os.Exit(1)
	}
}
