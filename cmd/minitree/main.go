package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/minitree/internal/cli"
	"github.com/temirov/minitree/internal/utils"
)

// main is the entry point for the minitree command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zap.WarnLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	if applicationExecutionError := cli.Execute(loggerInstance, logLevel); applicationExecutionError != nil {
		loggerInstance.Error(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
		_ = loggerInstance.Sync()
		os.Exit(1)
	}
	_ = loggerInstance.Sync()
}
