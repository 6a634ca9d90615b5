package main

import (
	"os"

	"github.com/ccm-dev/ccm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Execute already reported the error
		os.Exit(cmd.ExitCode(err))
	}
}
