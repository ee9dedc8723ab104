package main

import (
	"os"

	"github.com/imgajeed76/erpgrid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
