package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tapedevice/tape/internal/host"
	"github.com/tapedevice/tape/internal/tape"
	"github.com/tapedevice/tape/internal/vm"
)

func newRunCmd(log *zap.SugaredLogger) *cobra.Command {
	var filePaths []string
	cmd := &cobra.Command{
		Use:   "run <program.tape>",
		Short: "Run an assembled tape program to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, printer, err := loadEngine(args[0], filePaths)
			if err != nil {
				return err
			}
			defer printer.Flush()
			engine.Keyboard = newBlockingKeyboard(bufio.NewReader(os.Stdin))

			for !engine.Halted {
				res := engine.Step()
				switch res.Kind {
				case vm.StepError:
					printer.Flush()
					log.Errorw("program fault", "error", res.Err)
					return res.Err
				case vm.StepHalt:
					printer.Flush()
					return nil
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&filePaths, "file", nil, "candidate file paths available to fopen, in index order")
	return cmd
}

// loadEngine reads a tape binary, lays it into a fresh Engine's memory and
// wires up terminal-backed devices.
func loadEngine(path string, filePaths []string) (*vm.Engine, *host.TerminalPrinter, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	tp, err := tape.Decode(blob)
	if err != nil {
		return nil, nil, err
	}
	engine := vm.New()
	engine.Load(append(append([]byte{}, tp.Ops...), tp.StringsData...))

	printer := host.NewTerminalPrinter(os.Stdout, os.Stderr)
	engine.Printer = printer
	if len(filePaths) > 0 {
		engine.File = host.NewPlainFile(filePaths)
	}
	return engine, printer, nil
}
