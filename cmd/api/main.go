package main

import (
	"os"

	"github.com/crackit360/crackit360-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
