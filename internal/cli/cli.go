// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/contextstitch/contextstitch/internal/config"
	"github.com/contextstitch/contextstitch/internal/services/clipboard"
	"github.com/contextstitch/contextstitch/internal/stitch"
	"github.com/contextstitch/contextstitch/internal/tokenizer"
	"github.com/contextstitch/contextstitch/internal/utils"
)

const (
	rootUse              = "contextstitch"
	rootShortDescription = "stitch a repository into a single context document"
	rootLongDescription  = `contextstitch walks a directory tree and produces one Markdown or plain-text
document containing the folder tree and every visible file's content, sized
for tools with bounded input windows.`
	// rootUsageExample demonstrates common invocations.
	rootUsageExample = `  # Stitch the current directory into an auto-named Markdown file
  contextstitch

  # Plain-text document on stdout, honoring the node preset
  contextstitch --format txt --preset node --stdout`

	rootFlagName           = "root"
	outputFlagName         = "output"
	stdoutFlagName         = "stdout"
	formatFlagName         = "format"
	gitignoreFlagName      = "gitignore"
	noGitignoreFlagName    = "no-gitignore"
	presetFlagName         = "preset"
	ignoreFlagName         = "ignore"
	includeHiddenFlagName  = "include-hidden"
	maxFileSizeFlagName    = "max-file-size"
	followSymlinksFlagName = "follow-symlinks"
	absolutePathsFlagName  = "absolute-paths"
	encodingFlagName       = "encoding"
	quietFlagName          = "quiet"
	copyFlagName           = "copy"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	configFlagName         = "config"
	versionFlagName        = "version"

	rootFlagDescription           = "root directory to stitch"
	outputFlagDescription         = "output file path (default: auto-named)"
	stdoutFlagDescription         = "write the document to stdout instead of a file"
	formatFlagDescription         = "output format (md or txt)"
	gitignoreFlagDescription      = "path to a .gitignore to respect"
	noGitignoreFlagDescription    = "do not respect .gitignore even if present"
	presetFlagDescription         = "ignore preset (node or python)"
	ignoreFlagDescription         = "extra ignore pattern (repeatable)"
	includeHiddenFlagDescription  = "include dotfiles and dot-directories"
	maxFileSizeFlagDescription    = "skip files larger than SIZE (e.g. 500k, 2m)"
	followSymlinksFlagDescription = "follow symlinks"
	absolutePathsFlagDescription  = "render absolute paths instead of root-relative ones"
	encodingFlagDescription       = "text encoding for file contents"
	quietFlagDescription          = "suppress the confirmation and error echo"
	copyFlagDescription           = "copy the document to the system clipboard"
	tokensFlagDescription         = "include a token count in the document header"
	modelFlagDescription          = "tokenizer model used for token counting"
	configFlagDescription         = "explicit configuration file path"
	versionFlagDescription        = "display application version"

	versionTemplate = "contextstitch version: %s\n"

	defaultRootPath        = "."
	defaultFormatName      = string(stitch.FormatMarkdown)
	defaultMaxFileSizeText = "1m"

	// invalidFormatMessageFormat reports an unsupported --format value.
	invalidFormatMessageFormat = "invalid format value %q (must be md or txt)"
	// writeOutputMessageFormat reports a failed output write.
	writeOutputMessageFormat = "writing %s: %v"
	// clipboardMessageFormat reports a failed clipboard copy.
	clipboardMessageFormat = "copying to clipboard: %v"
	// wroteOutputMessageFormat confirms the written output path.
	wroteOutputMessageFormat = "Wrote %s"
	// errorEchoFormat echoes a fatal error to stderr.
	errorEchoFormat = "error: %v\n"

	outputFileNamePrefix = "contextstitch-"
	outputFilePermission = 0o644
)

// stitchFlags carries every flag value for the root command.
type stitchFlags struct {
	rootPath         string
	outputPath       string
	writeToStdout    bool
	formatName       string
	gitignorePath    string
	disableGitignore bool
	presetName       string
	ignorePatterns   []string
	includeHidden    bool
	maxFileSizeText  string
	followSymlinks   bool
	absolutePaths    bool
	encodingName     string
	quiet            bool
	copyToClipboard  bool
	tokensEnabled    bool
	tokenModelName   string
	configFilePath   string
}

// Execute runs the contextstitch application. The returned error has already
// been echoed to stderr unless quiet was requested; the caller only decides
// the exit code.
func Execute(loggerInstance *zap.Logger) error {
	flags := &stitchFlags{}
	rootCommand := createRootCommand(loggerInstance, flags)
	executionError := rootCommand.Execute()
	if executionError != nil && !flags.quiet {
		fmt.Fprintf(os.Stderr, errorEchoFormat, executionError)
	}
	return executionError
}

// createRootCommand builds the root Cobra command carrying the full flag
// surface.
func createRootCommand(loggerInstance *zap.Logger, flags *stitchFlags) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return runStitch(command, flags, loggerInstance)
		},
	}

	commandFlags := rootCommand.Flags()
	commandFlags.StringVar(&flags.rootPath, rootFlagName, defaultRootPath, rootFlagDescription)
	commandFlags.StringVar(&flags.outputPath, outputFlagName, "", outputFlagDescription)
	commandFlags.BoolVar(&flags.writeToStdout, stdoutFlagName, false, stdoutFlagDescription)
	commandFlags.StringVar(&flags.formatName, formatFlagName, defaultFormatName, formatFlagDescription)
	commandFlags.StringVar(&flags.gitignorePath, gitignoreFlagName, "", gitignoreFlagDescription)
	commandFlags.BoolVar(&flags.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	commandFlags.StringVar(&flags.presetName, presetFlagName, "", presetFlagDescription)
	commandFlags.StringArrayVar(&flags.ignorePatterns, ignoreFlagName, nil, ignoreFlagDescription)
	commandFlags.BoolVar(&flags.includeHidden, includeHiddenFlagName, false, includeHiddenFlagDescription)
	commandFlags.StringVar(&flags.maxFileSizeText, maxFileSizeFlagName, defaultMaxFileSizeText, maxFileSizeFlagDescription)
	commandFlags.BoolVar(&flags.followSymlinks, followSymlinksFlagName, false, followSymlinksFlagDescription)
	commandFlags.BoolVar(&flags.absolutePaths, absolutePathsFlagName, false, absolutePathsFlagDescription)
	commandFlags.StringVar(&flags.encodingName, encodingFlagName, stitch.DefaultEncodingName, encodingFlagDescription)
	commandFlags.BoolVar(&flags.quiet, quietFlagName, false, quietFlagDescription)
	commandFlags.BoolVar(&flags.copyToClipboard, copyFlagName, false, copyFlagDescription)
	commandFlags.BoolVar(&flags.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	commandFlags.StringVar(&flags.tokenModelName, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	commandFlags.StringVar(&flags.configFilePath, configFlagName, "", configFlagDescription)
	commandFlags.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// runStitch resolves configuration defaults, builds the engine options, runs
// the engine, and delivers the document.
func runStitch(command *cobra.Command, flags *stitchFlags, loggerInstance *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf("determine working directory: %w", workingDirectoryError)
	}
	fileConfiguration, configurationError := config.Load(workingDirectory, flags.configFilePath)
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(command, flags, fileConfiguration)

	formatName := strings.ToLower(flags.formatName)
	if formatName != string(stitch.FormatMarkdown) && formatName != string(stitch.FormatText) {
		return fmt.Errorf(invalidFormatMessageFormat, flags.formatName)
	}
	documentFormat := stitch.Format(formatName)

	maxFileSizeBytes, sizeError := stitch.ParseSize(flags.maxFileSizeText, stitch.DefaultMaxFileSize)
	if sizeError != nil {
		return sizeError
	}

	var tokenCounter tokenizer.Counter
	if flags.tokensEnabled {
		createdCounter, _, counterError := tokenizer.NewCounter(flags.tokenModelName)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
	}

	engineOptions := stitch.Options{
		Root:           flags.rootPath,
		Format:         documentFormat,
		GitignorePath:  flags.gitignorePath,
		UseGitignore:   !flags.disableGitignore,
		Preset:         flags.presetName,
		ExtraIgnores:   flags.ignorePatterns,
		IncludeHidden:  flags.includeHidden,
		MaxFileSize:    maxFileSizeBytes,
		FollowSymlinks: flags.followSymlinks,
		AbsolutePaths:  flags.absolutePaths,
		Encoding:       flags.encodingName,
		Quiet:          flags.quiet,
		TokenCounter:   tokenCounter,
		TokenModel:     flags.tokenModelName,
	}

	stitcherInstance, constructionError := stitch.New(engineOptions)
	if constructionError != nil {
		return constructionError
	}
	document, buildError := stitcherInstance.Build()
	if buildError != nil {
		return buildError
	}

	if deliveryError := deliverDocument(document, flags, documentFormat, loggerInstance); deliveryError != nil {
		return deliveryError
	}

	if flags.copyToClipboard {
		if clipboardError := clipboard.NewService().Copy(document); clipboardError != nil {
			return fmt.Errorf(clipboardMessageFormat, clipboardError)
		}
	}
	return nil
}

// applyConfigurationDefaults overrides flag values from the configuration
// file wherever the flag was not set explicitly on the command line.
func applyConfigurationDefaults(command *cobra.Command, flags *stitchFlags, fileConfiguration config.FileConfiguration) {
	commandFlags := command.Flags()
	if !commandFlags.Changed(formatFlagName) && fileConfiguration.Format != "" {
		flags.formatName = fileConfiguration.Format
	}
	if !commandFlags.Changed(presetFlagName) && fileConfiguration.Preset != "" {
		flags.presetName = fileConfiguration.Preset
	}
	if !commandFlags.Changed(ignoreFlagName) && len(fileConfiguration.Ignore) > 0 {
		flags.ignorePatterns = append([]string{}, fileConfiguration.Ignore...)
	}
	if !commandFlags.Changed(includeHiddenFlagName) && fileConfiguration.IncludeHidden != nil {
		flags.includeHidden = *fileConfiguration.IncludeHidden
	}
	if !commandFlags.Changed(maxFileSizeFlagName) && fileConfiguration.MaxFileSize != "" {
		flags.maxFileSizeText = fileConfiguration.MaxFileSize
	}
	if !commandFlags.Changed(followSymlinksFlagName) && fileConfiguration.FollowSymlinks != nil {
		flags.followSymlinks = *fileConfiguration.FollowSymlinks
	}
	if !commandFlags.Changed(absolutePathsFlagName) && fileConfiguration.AbsolutePaths != nil {
		flags.absolutePaths = *fileConfiguration.AbsolutePaths
	}
	if !commandFlags.Changed(encodingFlagName) && fileConfiguration.Encoding != "" {
		flags.encodingName = fileConfiguration.Encoding
	}
	if !commandFlags.Changed(quietFlagName) && fileConfiguration.Quiet != nil {
		flags.quiet = *fileConfiguration.Quiet
	}
	if !commandFlags.Changed(copyFlagName) && fileConfiguration.Copy != nil {
		flags.copyToClipboard = *fileConfiguration.Copy
	}
	if !commandFlags.Changed(tokensFlagName) && fileConfiguration.Tokens.Enabled != nil {
		flags.tokensEnabled = *fileConfiguration.Tokens.Enabled
	}
	if !commandFlags.Changed(modelFlagName) && fileConfiguration.Tokens.Model != "" {
		flags.tokenModelName = fileConfiguration.Tokens.Model
	}
}

// deliverDocument writes the document to stdout or to the output file,
// logging the confirmation for file output unless quiet is set. --stdout
// takes effect over --output.
func deliverDocument(document string, flags *stitchFlags, documentFormat stitch.Format, loggerInstance *zap.Logger) error {
	if flags.writeToStdout {
		_, writeError := os.Stdout.WriteString(document)
		return writeError
	}
	outputPath := flags.outputPath
	if outputPath == "" {
		outputPath = defaultOutputFileName(documentFormat, time.Now())
	}
	if writeError := os.WriteFile(outputPath, []byte(document), outputFilePermission); writeError != nil {
		return fmt.Errorf(writeOutputMessageFormat, outputPath, writeError)
	}
	if !flags.quiet {
		loggerInstance.Info(fmt.Sprintf(wroteOutputMessageFormat, outputPath))
	}
	return nil
}

// defaultOutputFileName builds the auto-generated timestamped output name
// with the extension matching the document format.
func defaultOutputFileName(documentFormat stitch.Format, generationTime time.Time) string {
	return fmt.Sprintf("%s%d.%s", outputFileNamePrefix, generationTime.Unix(), documentFormat)
}
