// Package cmd wires the next-codemod command-line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SebassNoob/next-codemod/internal/codemod"
	"github.com/SebassNoob/next-codemod/internal/config"
	"github.com/SebassNoob/next-codemod/internal/display"
	"github.com/SebassNoob/next-codemod/internal/engine"
	"github.com/SebassNoob/next-codemod/internal/gitutil"
	"github.com/SebassNoob/next-codemod/internal/logging"
	"github.com/SebassNoob/next-codemod/internal/packagemanager"
	"github.com/SebassNoob/next-codemod/internal/prompt"
	"github.com/SebassNoob/next-codemod/internal/registry"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for next-codemod
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next-codemod [transform] [path]",
		Short: "Apply Next.js codemod transforms to a codebase",
		Long: `next-codemod applies named, versioned code transforms to a set of files
by driving the jscodeshift rewrite engine, and chains the documented
follow-up package actions when a transform actually changed something.

Both arguments are optional: a missing transform or path is resolved
through an interactive prompt.

Examples:
  # Pick a transform and path interactively
  next-codemod

  # Apply one transform to a directory
  next-codemod built-in-next-font ./src

  # Report intended changes without writing them
  next-codemod new-link ./pages --dry

  # Expand a glob and forward extra engine arguments
  next-codemod next-image-to-legacy-image "pages/*.tsx" --jscodeshift=--parser=tsx`,
		Version: Version,
		Args:    cobra.MaximumNArgs(2),
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE:         runCodemod,
	}

	cmd.Flags().Bool("dry", false, "Report intended changes without writing them to disk")
	cmd.Flags().Bool("print", false, "Print transformed sources to stdout")
	cmd.Flags().Bool("force", false, "Run even when the git working tree is dirty")
	cmd.Flags().Bool("run-in-band", false, "Run the engine serially instead of in worker processes")
	cmd.Flags().Bool("verbose", false, "Show detailed engine and diagnostic output")
	cmd.Flags().StringArray("jscodeshift", nil, "Argument passed through to jscodeshift verbatim (repeatable)")
	cmd.Flags().String("config", "", "Path to config file (default: "+config.DefaultFile+")")

	cmd.AddCommand(NewListCommand())

	return cmd
}

// runCodemod implements the root command logic
func runCodemod(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultFile
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logging.Setup(cfg.LogLevel, verbose)

	reg, err := registry.Load()
	if err != nil {
		return err
	}

	transformDir, err := cfg.ResolveTransformDir()
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	var name, path string
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}

	dry, _ := cmd.Flags().GetBool("dry")
	printSources, _ := cmd.Flags().GetBool("print")
	force, _ := cmd.Flags().GetBool("force")
	runInBand, _ := cmd.Flags().GetBool("run-in-band")
	engineArgs, _ := cmd.Flags().GetStringArray("jscodeshift")

	orch := &codemod.Orchestrator{
		Registry:     reg,
		Prompter:     prompt.NewTerminal(),
		Engine:       engine.New(),
		Packages:     packagemanager.New(workDir, packagemanager.Kind(cfg.PackageManager), nil),
		Tree:         gitutil.NewChecker(workDir),
		Out:          display.New(os.Stdout),
		Binary:       engine.ResolveBinary(cfg.JscodeshiftPath, workDir),
		TransformDir: transformDir,
		WorkDir:      workDir,
	}

	return orch.Run(cmd.Context(), name, path, codemod.Options{
		Dry:        dry,
		Print:      printSources,
		RunInBand:  runInBand,
		Verbose:    verbose,
		Force:      force,
		EngineArgs: engineArgs,
	})
}
