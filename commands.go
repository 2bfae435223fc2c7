package spinand

import (
	"fmt"
	"strings"
)

// SPI NAND command set (generic ONFI-style):
//   - [W25N01GV|8.1 Instruction Set Table 1]
//   - [GD5F1GQ4|7. Commands Description]
const (
	cmdReset           = 0xFF
	cmdGetFeature      = 0x0F // +1 byte register address
	cmdSetFeature      = 0x1F // +1 byte register address, +1 byte value
	cmdReadID          = 0x9F // +1 dummy byte
	cmdPageRead        = 0x13 // +3 byte row address, page array -> cache
	cmdReadCache       = 0x03 // +2 byte column address, +1 dummy
	cmdReadCacheFast   = 0x0B
	cmdWriteEnable     = 0x06
	cmdWriteDisable    = 0x04
	cmdProgramLoad     = 0x02 // +2 byte column address, resets cache
	cmdRandomDataInput = 0x84 // +2 byte column address, preserves cache
	cmdProgramExecute  = 0x10 // +3 byte row address, cache -> page array
	cmdBlockErase      = 0xD8 // +3 byte row address (block * pages per block)
)

// Feature register addresses for Get Feature / Set Feature.
const (
	regStatus    = 0xC0
	regBlockLock = 0xA0
)

// StatusRegister represents the status feature register (0xC0).
//
//	Bits| [W25N01GV|7.3 Status Register]
//	----+-----------------------------------------
//	6:4 | ECC status (encoding varies by vendor)
//	3   | E-FAIL: Erase failure
//	2   | P-FAIL: Program failure
//	1   | WEL: Write Enable Latch
//	0   | BUSY: Operation In Progress
type StatusRegister byte

func (sr StatusRegister) Busy() bool         { return sr&(1<<0) != 0 }
func (sr StatusRegister) WriteEnabled() bool { return sr&(1<<1) != 0 }
func (sr StatusRegister) ProgramFail() bool  { return sr&(1<<2) != 0 }
func (sr StatusRegister) EraseFail() bool    { return sr&(1<<3) != 0 }

func (sr StatusRegister) String() string {
	b := fmt.Sprintf("%08b", byte(sr))
	s := []string{}
	if sr.EraseFail() {
		s = append(s, "E-FAIL")
	}
	if sr.ProgramFail() {
		s = append(s, "P-FAIL")
	}
	if sr.WriteEnabled() {
		s = append(s, "WEL")
	}
	if sr.Busy() {
		s = append(s, "BUSY")
	}
	if len(s) == 0 {
		return b
	}
	return b + " " + strings.Join(s, ",")
}

// rowAddr packs the 3-byte big-endian row address (linear page index)
// following cmd.
func rowAddr(cmd byte, page uint32) []byte {
	return []byte{cmd, byte(page >> 16), byte(page >> 8), byte(page)}
}

// colAddr packs the 2-byte big-endian column address following cmd.
func colAddr(cmd byte, col uint16) []byte {
	return []byte{cmd, byte(col >> 8), byte(col)}
}
