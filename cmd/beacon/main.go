// Command beacon is an interactive launcher: it resolves free-text queries
// against installed commands, keyword plugins, and a live bookmark index,
// ranks the results by past usage, and opens whatever the user picks.
package main

import "github.com/runger/beacon/internal/cmd"

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.Execute(version)
}
