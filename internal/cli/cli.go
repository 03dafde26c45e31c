// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/minitree/internal/config"
	"github.com/temirov/minitree/internal/explorer"
	"github.com/temirov/minitree/internal/output"
	"github.com/temirov/minitree/internal/services/clipboard"
	"github.com/temirov/minitree/internal/utils"
)

const (
	levelsFlagName      = "levels"
	levelsFlagShorthand = "l"
	styleFlagName       = "style"
	styleFlagShorthand  = "s"
	formatFlagName      = "format"
	hiddenFlagName      = "hidden"
	hiddenFlagShorthand = "H"
	hideDevFlagName     = "hide-dev"
	hideDevShorthand    = "d"
	tabFlagName         = "tab"
	tabFlagShorthand    = "t"
	excludeFlagName     = "exclude"
	excludeShorthand    = "e"
	includeFlagName     = "include"
	includeShorthand    = "i"
	colorFlagName       = "color"
	copyFlagName        = "copy"
	configFlagName      = "config"
	verboseFlagName     = "verbose"
	verboseShorthand    = "v"
	versionFlagName     = "version"

	defaultPath      = "."
	versionTemplate  = "minitree version: %s\n"
	rootUse          = "minitree [path]"
	rootShort        = "list directory contents in a tree-like format"
	rootLong         = `minitree walks a directory and prints one line per entry, parents before children.
Entries are shown as an indented tree of names (--style name), as the path walked
from the argument (--style relative), or as canonical absolute paths (--style absolute).
Hidden entries are skipped unless --hidden is set; --hide-dev skips %s.
Defaults may be stored in config.yaml, see "minitree init".`
	rootExample = `  # Two levels of the current directory
  minitree -l 2

  # Rust sources only, skipping build output
  minitree --hide-dev -i '\.rs$' ./crates

  # Absolute paths of everything except logs
  minitree -s absolute -e '\.log$' /var/app`

	levelsFlagDescription  = "number of levels to explore, 0 explores everything"
	styleFlagDescription   = "entry style: name, relative or absolute"
	hiddenFlagDescription  = "show hidden entries"
	hideDevFlagDescription = "hide development directories and files"
	tabFlagDescription     = "number of spaces used to indent each level"
	excludeFlagDescription = "skip entries whose name matches this regular expression"
	includeFlagDescription = "show only entries matching this regular expression"
	colorFlagDescription   = "highlight directories: auto, always or never"
	copyFlagDescription    = "copy the rendered tree to the clipboard"
	configFlagDescription  = "path to a configuration file"
	verboseFlagDescription = "increase logging verbosity (repeatable)"
	versionFlagDescription = "display application version"

	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorLoadConfigurationFmt   = "load configuration: %w"
	errorCopyFormat             = "copy output to clipboard: %w"
)

// Dependencies are the collaborators the commands run with.
type Dependencies struct {
	Logger    *zap.Logger
	LogLevel  zap.AtomicLevel
	Clipboard clipboard.Copier
}

// Execute runs the minitree application with os.Args.
func Execute(logger *zap.Logger, logLevel zap.AtomicLevel) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCommand := createRootCommand(Dependencies{
		Logger:    logger,
		LogLevel:  logLevel,
		Clipboard: clipboard.NewService(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// treeOptions stores the values of the tree flags.
type treeOptions struct {
	levels          int
	style           string
	hidden          bool
	hideDevelopment bool
	tab             int
	exclude         string
	include         string
	color           string
	copyOutput      bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.LogLevel == (zap.AtomicLevel{}) {
		dependencies.LogLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}

	var options treeOptions
	var showVersion bool
	var verbosity int
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShort,
		Long:          fmt.Sprintf(rootLong, strings.Join(explorer.DevelopmentNames(), ", ")),
		Example:       rootExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			dependencies.LogLevel.SetLevel(utils.LevelForVerbosity(verbosity))
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			root := defaultPath
			if len(arguments) == 1 {
				root = arguments[0]
			}
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError)
			}
			applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: configurationPath,
			})
			if loadError != nil {
				return fmt.Errorf(errorLoadConfigurationFmt, loadError)
			}
			options.applyConfiguration(command, applicationConfiguration.Tree)
			return runTree(command, dependencies, root, options)
		},
	}

	rootFlags := rootCommand.Flags()
	rootFlags.IntVarP(&options.levels, levelsFlagName, levelsFlagShorthand, 0, levelsFlagDescription)
	rootFlags.StringVarP(&options.style, styleFlagName, styleFlagShorthand, string(explorer.StyleName), styleFlagDescription)
	registerBooleanFlag(rootFlags, &options.hidden, hiddenFlagName, hiddenFlagShorthand, false, hiddenFlagDescription)
	registerBooleanFlag(rootFlags, &options.hideDevelopment, hideDevFlagName, hideDevShorthand, false, hideDevFlagDescription)
	rootFlags.IntVarP(&options.tab, tabFlagName, tabFlagShorthand, explorer.DefaultIndentation, tabFlagDescription)
	rootFlags.StringVarP(&options.exclude, excludeFlagName, excludeShorthand, "", excludeFlagDescription)
	rootFlags.StringVarP(&options.include, includeFlagName, includeShorthand, "", includeFlagDescription)
	rootFlags.StringVar(&options.color, colorFlagName, string(output.ColorAuto), colorFlagDescription)
	registerBooleanFlag(rootFlags, &options.copyOutput, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(rootFlags, &showVersion, versionFlagName, "", false, versionFlagDescription)

	rootCommand.PersistentFlags().CountVarP(&verbosity, verboseFlagName, verboseShorthand, verboseFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)

	rootCommand.SetGlobalNormalizationFunc(normalizeFlagAliases)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// normalizeFlagAliases accepts --format as the original spelling of --style.
func normalizeFlagAliases(flagSet *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == formatFlagName {
		name = styleFlagName
	}
	return pflag.NormalizedName(name)
}

// applyConfiguration fills every flag the user did not set from the configuration file.
func (options *treeOptions) applyConfiguration(command *cobra.Command, configuration config.TreeConfiguration) {
	flags := command.Flags()
	if !flags.Changed(levelsFlagName) && configuration.Levels != nil {
		options.levels = *configuration.Levels
	}
	if !flags.Changed(styleFlagName) && configuration.Style != "" {
		options.style = configuration.Style
	}
	if !flags.Changed(hiddenFlagName) && configuration.Hidden != nil {
		options.hidden = *configuration.Hidden
	}
	if !flags.Changed(hideDevFlagName) && configuration.HideDevelopment != nil {
		options.hideDevelopment = *configuration.HideDevelopment
	}
	if !flags.Changed(tabFlagName) && configuration.Tab != nil {
		options.tab = *configuration.Tab
	}
	if !flags.Changed(excludeFlagName) && configuration.Exclude != "" {
		options.exclude = configuration.Exclude
	}
	if !flags.Changed(includeFlagName) && configuration.Include != "" {
		options.include = configuration.Include
	}
	if !flags.Changed(colorFlagName) && configuration.Color != "" {
		options.color = configuration.Color
	}
	if !flags.Changed(copyFlagName) && configuration.Copy != nil {
		options.copyOutput = *configuration.Copy
	}
}

// runTree validates the configuration, streams the walk into the renderer and copies the result on request.
func runTree(command *cobra.Command, dependencies Dependencies, root string, options treeOptions) (err error) {
	logger := dependencies.Logger
	explorerConfiguration, configurationError := explorer.NewConfiguration(explorer.Options{
		Root:               root,
		MaxDepth:           options.levels,
		Style:              options.style,
		ShowHidden:         options.hidden,
		ExcludeDevelopment: options.hideDevelopment,
		Indentation:        options.tab,
		ExcludePattern:     options.exclude,
		IncludePattern:     options.include,
	})
	if configurationError != nil {
		return configurationError
	}
	colorMode, colorModeError := output.ParseColorMode(options.color)
	if colorModeError != nil {
		return colorModeError
	}
	logger.Debug("exploring",
		zap.String("root", explorerConfiguration.Root()),
		zap.Int("levels", explorerConfiguration.MaxDepth()),
		zap.String("style", string(explorerConfiguration.Style())),
		zap.Bool("hidden", explorerConfiguration.ShowHidden()),
		zap.Bool("hideDev", explorerConfiguration.ExcludeDevelopment()),
		zap.Int("tab", explorerConfiguration.Indentation()),
		zap.String("exclude", explorerConfiguration.ExcludePattern()),
		zap.String("include", explorerConfiguration.IncludePattern()),
	)

	stdout := command.OutOrStdout()
	renderer := output.NewLineRenderer(stdout, output.LineRendererOptions{
		Colorize: output.ShouldColorize(colorMode, stdout),
		Capture:  options.copyOutput,
	})
	defer func() {
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	treeExplorer := explorer.New(explorerConfiguration)
	producer := func(streamCtx context.Context, entries chan<- explorer.Entry) error {
		return treeExplorer.Explore(streamCtx, func(entry explorer.Entry) error {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case entries <- entry:
				return nil
			}
		})
	}
	if streamErr := dispatchStream(command.Context(), producer, renderer.Handle); streamErr != nil {
		return streamErr
	}
	logger.Info("explored", zap.String("root", explorerConfiguration.Root()), zap.Int("entries", renderer.Entries()))

	if options.copyOutput {
		if copyErr := dependencies.Clipboard.Copy(renderer.Captured()); copyErr != nil {
			return fmt.Errorf(errorCopyFormat, copyErr)
		}
		logger.Info("copied output to clipboard", zap.Int("entries", renderer.Entries()))
	}
	return nil
}
