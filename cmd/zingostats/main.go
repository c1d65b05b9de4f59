package main

import (
	"os"

	"github.com/MajjiR/zingoStats/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
