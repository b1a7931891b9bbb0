package main

import (
	"os"

	"github.com/jakeswenson/vector/cmd/vector/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
