// Package main provides the brain command: a client for a second brain
// bookmarking service, usable from the shell or through a local web UI.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
