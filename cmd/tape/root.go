package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(log *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:   "tape",
		Short: "Assemble and run tape device programs",
	}
	root.AddCommand(newAssembleCmd(log))
	root.AddCommand(newRunCmd(log))
	root.AddCommand(newDebugCmd(log))
	root.AddCommand(newDecompileCmd(log))
	return root
}
