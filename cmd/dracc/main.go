package main

import (
	"os"

	"drac/cmd/dracc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
