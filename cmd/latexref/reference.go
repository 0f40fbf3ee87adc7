package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"latexref/internal/llm"
	"latexref/internal/reference"
)

func newReferenceCmd(a *app) *cobra.Command {
	var (
		input       string
		model       string
		temperature float32
		outDir      string
		subject     string
	)

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Ask a chat model to organize the macro list into a markdown reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("model") {
				cfg.LLMModelName = model
			}
			if flags.Changed("temperature") {
				cfg.LLMTemperature = temperature
			}
			if flags.Changed("out-dir") {
				cfg.ReferenceDir = outDir
			}
			if !flags.Changed("input") {
				input = cfg.OutputPath
			}

			if err := cfg.ValidateReference(); err != nil {
				return err
			}

			client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
			generator := reference.NewGenerator(client, reference.Options{
				Model:       cfg.LLMModelName,
				Temperature: cfg.LLMTemperature,
				OutputDir:   cfg.ReferenceDir,
				Subject:     subject,
			})

			path, err := generator.Generate(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Writing %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "macro list to read (defaults to MACROS_OUTPUT)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "chat model (overrides LLM_MODEL)")
	cmd.Flags().Float32Var(&temperature, "temperature", 0.5, "sampling temperature (overrides LLM_TEMPERATURE)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the reference (overrides REFERENCE_DIR)")
	cmd.Flags().StringVar(&subject, "subject", reference.DefaultSubject, "course the macros come from")

	return cmd
}
