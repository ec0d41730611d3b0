package main

import (
	"os"

	"github.com/ozil111/Compare-File-Tool/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
