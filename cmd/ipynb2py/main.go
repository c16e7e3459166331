package main

import (
	"os"

	"github.com/bethropolis/consolidate/internal/cmd"
)

func main() {
	if err := cmd.NewConvertCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
