package cli

import (
	"fmt"

	"github.com/fcoury/msxgo/msx"
	"github.com/spf13/cobra"
)

var disasmSlotIndex int

var disasmCmd = &cobra.Command{
	Use:   "disasm path/to/rom",
	Short: "load a ROM image and print a forward disassembly from reset",
	Args:  cobra.MinimumNArgs(1),
	Run:   runDisasm,
}

func init() {
	disasmCmd.Flags().IntVar(&disasmSlotIndex, "slot", 0, "slot to load the ROM into")
}

func runDisasm(cmd *cobra.Command, args []string) {
	m := msx.NewEmpty()
	if err := m.LoadROMFile(disasmSlotIndex, args[0]); err != nil {
		fmt.Println(err)
		return
	}
	m.Reset()

	for _, entry := range m.Program() {
		fmt.Println(entry.String())
	}
}
