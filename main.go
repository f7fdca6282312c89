// Package main is the entry point for the soccerboard CLI.
package main

import (
	"os"

	"github.com/huangsam/soccerboard/cmd"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	iocache.CloseCaching()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
