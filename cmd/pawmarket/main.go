package main

import (
	"os"

	"github.com/pawmarket/api/cmd/pawmarket/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
