package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	repoPath     string
	question     string
	generalMode  bool
	sectionsFile string
)

var rootCmd = &cobra.Command{
	Use:   "a11y-cli",
	Short: "a11y-cli is the command-line interface for A11y Warden.",
	Long: `A CLI for composing accessibility review prompts from local changes and
sending them to a running A11y Warden relay.

Patches are read from the files given as arguments, or from the HEAD commit
of a local Git repository with --repo.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&repoPath, "repo", "r", "", "Collect patches from the HEAD commit of this Git repository")
	flags.StringVarP(&question, "question", "q", "", "Additional question or request for the reviewer")
	flags.BoolVar(&generalMode, "general", false, "Use the general patch analysis prompt instead of the accessibility review")
	flags.StringVar(&sectionsFile, "sections", "prompt-sections.yml", "YAML file overriding the built-in prompt sections")

	if err := viper.BindPFlag("PROMPT_SECTIONS_FILE", flags.Lookup("sections")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("A11Y")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
