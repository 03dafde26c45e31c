package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/minitree/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write config.yaml with the default tree settings.
The file is written to the working directory unless --global is set, in which
case it goes to ~/.minitree/config.yaml.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write the global configuration file"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initWrittenMessageFormat  = "configuration written to %s\n"
)

func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  force,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initWrittenMessageFormat, destinationPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &writeGlobal, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, "", false, initForceFlagDescription)
	return initCommand
}
