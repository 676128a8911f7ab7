package main

import (
	"os"

	"github.com/polishedai/polished/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
