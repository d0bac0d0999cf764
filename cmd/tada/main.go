package main

import (
	"os"

	"github.com/idilsaglam/tada/internal/cli"
)

func main() {
	// Flags and subcommands are parsed by the cobra tree in internal/cli.
	os.Exit(cli.Run(os.Args[1:], cli.DefaultEnv()))
}
