package main

import (
	"os"

	"github.com/Carmen-Shannon/glix/cmd/glix/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
