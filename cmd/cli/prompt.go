package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/a11y-warden/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [files...]",
	Short: "Print the prompt that would be sent for the given changes",
	Long: `Print the composed review prompt without calling any service.

Examples:
  a11y-cli prompt src/Button.jsx src/Modal.jsx
  a11y-cli prompt --repo . --question "Focus on keyboard navigation"
  a11y-cli prompt --general --question "Summarize" src/app.go`,
	RunE: runPrompt,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	patches, err := collectPatches(cmd.Context(), repoPath, args)
	if err != nil {
		return err
	}

	loaded, err := prompt.LoadReference(viper.GetString("PROMPT_SECTIONS_FILE"))
	if err != nil {
		return err
	}
	if loaded.Source == prompt.SourceFile {
		dimColor.Fprintf(cmd.ErrOrStderr(), "using prompt sections from %s\n", loaded.Path)
	}

	text, err := prompt.NewComposer(loaded.Reference).Build(selectedProfile(), patches, question)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
