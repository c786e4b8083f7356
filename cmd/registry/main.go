package main

import (
	"os"

	"github.com/pilacorp/go-userregistry-sdk/cmd/registry/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
