package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/punkt/cmd/punkt"
	"github.com/arthur-debert/punkt/internal/version"
)

func main() {
	rootCmd := punkt.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PUNKT",
		Section: "1",
		Source:  "punkt " + version.Version,
		Manual:  "punkt manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
