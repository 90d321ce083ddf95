package main

import (
	"fmt"
	"os"

	"github.com/roach88/matapex/internal/cli"
)

// Version is set at build time
var Version = "dev"

func main() {
	cmd := cli.NewRootCommand()
	cmd.Version = Version
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
