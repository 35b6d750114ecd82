package main

import (
	"os"

	"plant-irrigation-api/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
