package main

import (
	"os"

	"github.com/crunchworks/create2crunch/internal/launcher"
)

func main() {
	os.Exit(launcher.Run(os.Args[1:], os.Stdout, os.Stderr))
}
