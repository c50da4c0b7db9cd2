package main

import (
	"os"

	"github.com/diogo/ragchat/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
