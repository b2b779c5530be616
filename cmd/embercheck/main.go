package main

import (
	"fmt"
	"os"

	"github.com/embercheck/embercheck/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "embercheck:", err)
		os.Exit(1)
	}
}
