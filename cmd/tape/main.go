// Command tape assembles and runs programs for the tape device virtual
// machine: a fixed-ISA 8/16-bit CPU with 64KiB of memory, file I/O and
// cooperative keyboard input.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tape: failed to start logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := newRootCmd(sugar).Execute(); err != nil {
		sugar.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
