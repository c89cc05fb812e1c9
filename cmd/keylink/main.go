package main

import (
	"os"

	"keylink/cmd/keylink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
