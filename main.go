package main

import (
	"fmt"
	"os"

	"github.com/openkraft/csvcheck/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csvcheck:", err)
		os.Exit(1)
	}
}
