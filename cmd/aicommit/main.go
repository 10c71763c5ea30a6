/*
aicommit - generate Conventional Commits messages for staged changes with an LLM
*/
package main

import (
	"os"

	"github.com/huimingz/aicommit/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
