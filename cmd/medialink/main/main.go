package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/medialink/cmd/medialink"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/ui/output/styles"
)

func main() {
	rootCmd := medialink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(errors.ExitCode(err))
	}
}
