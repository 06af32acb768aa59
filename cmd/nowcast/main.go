// main is the entry point for the nowcast CLI.
package main

import (
	"os"

	"github.com/huangsam/nowcast/cmd"
	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Cannot stop profiling", perr)
	}
	if err != nil {
		contract.LogWarn("Command failed", err)
		iocache.CloseCaching()
		os.Exit(1)
	}
}
