package cli

import (
	"fmt"

	"github.com/fcoury/msxgo/msx"
	"github.com/spf13/cobra"
)

var (
	runMaxSteps  int
	runTrace     bool
	runSlotIndex int
)

var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "load a ROM image into slot 0 (by default) and run it",
	Args:  cobra.MinimumNArgs(1),
	Run:   runMachine,
}

func init() {
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "stop after this many instructions (0 = run until HALT)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "print an internal-state trace line per instruction")
	runCmd.Flags().IntVar(&runSlotIndex, "slot", 0, "slot to load the ROM into")
}

func runMachine(cmd *cobra.Command, args []string) {
	romPath := args[0]

	m := msx.NewEmpty()
	if err := m.LoadROMFile(runSlotIndex, romPath); err != nil {
		fmt.Println(err)
		return
	}
	for i := 1; i < 4; i++ {
		if i == runSlotIndex {
			continue
		}
		_ = m.LoadRAM(i)
	}
	m.Reset()

	dbg := msx.NewDebug(m)

	for steps := 0; runMaxSteps == 0 || steps < runMaxSteps; steps++ {
		if m.Halted() {
			fmt.Println("halted at", m.Instruction().String())
			break
		}
		if runTrace {
			fmt.Println(dbg.Snapshot().String())
		}
		if err := m.Step(); err != nil {
			fmt.Println(err)
			break
		}
	}
}
