package main

import (
	"os"

	"github.com/learnpath/learnpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
