package main

import (
	"os"

	"ristkey/cmd/ristkey/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
