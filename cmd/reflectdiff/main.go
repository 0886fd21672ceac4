// Package main is the entry point for the reflectdiff CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/reflectdiff/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
