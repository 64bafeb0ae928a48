package main

import (
	"os"

	"github.com/statboard/statboard/cmd/statboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
