package main

import (
	"os"

	"github.com/craftec/rpbuilder/internal/cli"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	err := rootCmd.Execute()
	logging.Close()
	if err != nil {
		if !cli.IsReported(err) {
			ui.NewConsole(os.Stdout, os.Stderr, ui.FormatAuto).Error(err)
		}
		os.Exit(1)
	}
}
