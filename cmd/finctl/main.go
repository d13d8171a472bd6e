// Package main is the entry point for the finctl CLI.
package main

import (
	"os"

	"github.com/kasflow/backend/cmd/finctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
