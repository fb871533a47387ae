package main

import (
	"os"

	"tfocus/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
