package main

import (
	"os"

	"github.com/jwulff/strata/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
