// Command pulse is the entry point for the pulse CLI.
package main

import (
	"github.com/streampulse/pulse/cmd"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	defer iocache.CloseStores()

	err := cmd.Execute()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Cannot stop profiling", perr)
	}
	if err != nil {
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
