package main

import (
	"os"

	"github.com/clambin/plex-watch-history/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdout, os.Stderr))
}
