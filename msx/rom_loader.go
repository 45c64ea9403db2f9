// rom_loader.go - ROM image loading from the host filesystem.
//
// Grounded on the error-returning, no-partial-population style of the
// teacher's file_io.go (sanitizePath plus explicit ok/err returns rather
// than panics), adapted here to a plain os.ReadFile call since loading a
// ROM image needs no sandboxed path restriction the way host-accessible
// guest file I/O does.

package msx

import (
	"fmt"
	"os"
)

// LoadROMFile reads path and loads it into slot idx as a ROM image. The
// slot is left untouched if the read or the size check fails.
func (m *Machine) LoadROMFile(idx int, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("msx: reading rom %q: %w", path, err)
	}
	if err := m.LoadROM(idx, data); err != nil {
		return fmt.Errorf("msx: loading rom %q into slot %d: %w", path, idx, err)
	}
	return nil
}
