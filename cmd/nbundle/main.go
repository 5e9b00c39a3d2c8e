// Package main is the entry point for the nbundle CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nbundle/cli/internal/cmdtypes"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *cmdtypes.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cmdtypes.ExitCodeFromError(err))
	}
}
