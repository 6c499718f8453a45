package main

import (
	"os"

	"github.com/dayekim/devprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
