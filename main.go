package main

import (
	"os"

	"github.com/sherine-k/consultation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
