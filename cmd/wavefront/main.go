package main

import (
	"os"

	"github.com/pdrpinto/wavefront/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	findCmd := cmd.NewFindCommand()
	rootCmd.AddCommand(findCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
