package main

import (
	"os"

	"github.com/arthur-debert/punkt/cmd/punkt"
)

func main() {
	rootCmd := punkt.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		punkt.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
