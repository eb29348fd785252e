package main

import (
	"os"

	"github.com/alllucky/server/cmd/lucky/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
