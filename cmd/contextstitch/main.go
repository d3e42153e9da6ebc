package main

import (
	"fmt"
	"os"

	"github.com/contextstitch/contextstitch/internal/cli"
	"github.com/contextstitch/contextstitch/internal/utils"
)

// main is the entry point for the contextstitch command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		os.Exit(1)
	}
}
