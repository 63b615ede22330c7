package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/promptfill/cmd/promptfill"
	"github.com/arthur-debert/promptfill/internal/version"
)

func main() {
	rootCmd := promptfill.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "PROMPTFILL",
		Section: "1",
		Source:  "promptfill " + version.Version,
		Manual:  "promptfill manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
