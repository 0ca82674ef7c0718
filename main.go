// Package main provides the entrypoint for line-alert-relay.
package main

import (
	"os"

	"github.com/isometry/line-alert-relay/cmd"
)

func main() {
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
