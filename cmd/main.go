// Package main runs the bank command line interface.
package main

import (
	"os"

	"github.com/go-petr/pet-bank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
