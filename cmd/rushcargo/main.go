package main

import (
	"os"

	"github.com/jask/rushcargo/cmd/rushcargo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
