package main

import (
	"os"

	"medrec/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
