package main

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tapedevice/tape/internal/vm"
)

// debugState is the JSON snapshot printed after each step in debug mode.
type debugState struct {
	PC       uint16 `json:"pc"`
	ACC      byte   `json:"acc"`
	D0       byte   `json:"d0"`
	D1       byte   `json:"d1"`
	D2       byte   `json:"d2"`
	D3       byte   `json:"d3"`
	A0       uint16 `json:"a0"`
	A1       uint16 `json:"a1"`
	SP       uint16 `json:"sp"`
	FP       uint16 `json:"fp"`
	Overflow bool   `json:"overflow"`
	Halted   bool   `json:"halted"`
	Step     string `json:"step"`
}

func snapshot(e *vm.Engine, kind string) debugState {
	return debugState{
		PC: e.PC, ACC: e.Reg.ACC, D0: e.Reg.D0, D1: e.Reg.D1, D2: e.Reg.D2, D3: e.Reg.D3,
		A0: e.Reg.A0, A1: e.Reg.A1, SP: e.Reg.SP, FP: e.Reg.FP,
		Overflow: e.Reg.Overflow, Halted: e.Halted, Step: kind,
	}
}

func newDebugCmd(log *zap.SugaredLogger) *cobra.Command {
	var filePaths []string
	var breakpoints []int
	cmd := &cobra.Command{
		Use:   "debug <program.tape>",
		Short: "Single-step a tape program, printing JSON register state after each step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, printer, err := loadEngine(args[0], filePaths)
			if err != nil {
				return err
			}
			defer printer.Flush()
			engine.Keyboard = newBlockingKeyboard(bufio.NewReader(os.Stdin))
			for _, bp := range breakpoints {
				engine.Breakpoints[uint16(bp)] = true
			}

			enc := json.NewEncoder(os.Stdout)
			for !engine.Halted {
				if engine.Breakpoints[engine.PC] {
					enc.Encode(snapshot(engine, "breakpoint"))
					return nil
				}
				res := engine.Step()
				switch res.Kind {
				case vm.StepError:
					printer.Flush()
					log.Errorw("program fault", "error", res.Err)
					return res.Err
				case vm.StepHalt:
					enc.Encode(snapshot(engine, "halt"))
					printer.Flush()
					return nil
				default:
					enc.Encode(snapshot(engine, "ok"))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&filePaths, "file", nil, "candidate file paths available to fopen, in index order")
	cmd.Flags().IntSliceVar(&breakpoints, "break", nil, "pc address(es) to stop at")
	return cmd
}
