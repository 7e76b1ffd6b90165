// Package main is the entry point for the pinya CLI binary.
package main

import (
	"os"

	cli "pinya-planner/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
