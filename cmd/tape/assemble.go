package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tapedevice/tape/internal/asm"
)

func newAssembleCmd(log *zap.SugaredLogger) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "assemble <source.tapeasm>",
		Short: "Assemble source into a tape binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			model, err := asm.Parse(string(src))
			if err != nil {
				log.Errorw("assembly failed", "file", args[0], "error", err)
				return err
			}
			blob, _, err := asm.Generate(model)
			if err != nil {
				log.Errorw("code generation failed", "file", args[0], "error", err)
				return err
			}
			if output == "" {
				output = args[0] + ".tape"
			}
			if err := os.WriteFile(output, blob, 0o644); err != nil {
				return err
			}
			log.Infow("assembled", "input", args[0], "output", output, "bytes", len(blob))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output tape file (default: <input>.tape)")
	return cmd
}
