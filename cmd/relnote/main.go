package main

import (
	"os"

	"github.com/ariel-frischer/relnote/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
