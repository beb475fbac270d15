// Package main is the entry point for the salesight CLI.
package main

import (
	"github.com/huangsam/salesight/cmd"
	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseCaching()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
