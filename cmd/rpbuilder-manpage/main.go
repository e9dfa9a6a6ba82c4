package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/craftec/rpbuilder/internal/cli"
	"github.com/craftec/rpbuilder/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RPBUILDER",
		Section: "1",
		Source:  "rpbuilder " + version.Version,
		Manual:  "rpbuilder manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
