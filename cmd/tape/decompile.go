package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tapedevice/tape/internal/decomp"
	"github.com/tapedevice/tape/internal/tape"
)

func newDecompileCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompile <program.tape>",
		Short: "Print a best-effort disassembly of a tape program's ops block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tp, err := tape.Decode(blob)
			if err != nil {
				log.Errorw("failed to decode tape file", "file", args[0], "error", err)
				return err
			}
			listing, err := decomp.Decompile(tp.Ops)
			if err != nil {
				return err
			}
			fmt.Print(listing)
			return nil
		},
	}
	return cmd
}
