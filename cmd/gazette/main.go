// ABOUTME: Entry point for gazette CLI
// ABOUTME: Loads an optional .env and executes the root command

package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rhajizada/gazette-cli/internal/render"
)

func main() {
	// A .env in the working directory can supply GAZETTE_* overrides
	// during development; absence is not an error.
	_ = godotenv.Load()

	if err := Execute(); err != nil {
		render.Failure("%v", err)
		os.Exit(1)
	}
}
