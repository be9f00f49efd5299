// Command sortviz animates sorting algorithms step by step.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortviz/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
