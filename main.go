package main

import (
	"os"

	"github.com/kyco/deadlockdev/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
