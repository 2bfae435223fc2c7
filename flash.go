package spinand

import (
	"fmt"
)

// InitFlash resets the chip, waits for the reset to finish and clears block
// protection by zeroing the block-lock feature register.
func (d *Device) InitFlash() error {
	if err := nandOp(d.conn, []byte{cmdReset}, nil); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if _, err := waitBusy(d.conn, d.timeout); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	// Global unlock: every supported vendor ships with the block
	// protection bits set after power-up.
	if err := nandOp(d.conn, []byte{cmdSetFeature, regBlockLock, 0x00}, nil); err != nil {
		return fmt.Errorf("block unlock: %w", err)
	}
	return nil
}

// ReleaseFlash gives up the device. The chip needs no shutdown sequence.
func (d *Device) ReleaseFlash() error { return nil }

// ReadPage loads one page into the chip cache, decodes the vendor's ECC
// status, then copies up to len(data) bytes of the data region and len(spare)
// bytes of the spare region out of the cache. A zero-length slice skips that
// region. On an uncorrectable page it returns an *ECCError and the buffers
// must not be trusted.
func (d *Device) ReadPage(block, page uint32, data, spare []byte) (ECCResult, error) {
	if err := d.checkBlock(block); err != nil {
		return ECCOK, err
	}
	row := d.rowOf(block, page)

	if err := nandOp(d.conn, rowAddr(cmdPageRead, row), nil); err != nil {
		return ECCOK, fmt.Errorf("page read: %w", err)
	}
	status, err := waitBusy(d.conn, d.timeout)
	if err != nil {
		return ECCOK, fmt.Errorf("page read: %w", err)
	}

	res := ECCOK
	if d.geo.ECCOption == ECCHardwareAuto {
		var uncorrectable bool
		res, uncorrectable = d.profile.ecc.decode(status)
		if uncorrectable {
			return ECCOK, &ECCError{Block: block, Page: page, Status: status}
		}
	}

	if len(data) > 0 {
		cmd := append(colAddr(cmdReadCache, 0), 0) // trailing dummy byte
		if err := nandOp(d.conn, cmd, data); err != nil {
			return res, fmt.Errorf("read cache: %w", err)
		}
	}
	if len(spare) > 0 {
		cmd := append(colAddr(cmdReadCache, uint16(d.geo.PageDataSize)), 0)
		if err := nandOp(d.conn, cmd, spare); err != nil {
			return res, fmt.Errorf("read cache (spare): %w", err)
		}
	}
	return res, nil
}

// WritePage programs one page: data at column 0, spare at the start of the
// out-of-band region, committed by a single program-execute cycle. When both
// are given the spare is loaded with random-data-input so the just-loaded
// data survives in the cache; a spare-only write uses program-load, which
// resets the cache to all 0xFF first.
//
// The chip can only clear bits (1 -> 0). A set program-fail bit is reported
// as a *BadBlockError.
func (d *Device) WritePage(block, page uint32, data, spare []byte) error {
	if err := d.checkBlock(block); err != nil {
		return err
	}
	row := d.rowOf(block, page)

	if err := writeEnable(d.conn); err != nil {
		return fmt.Errorf("write enable: %w", err)
	}

	if len(data) > 0 {
		if err := nandOpData(d.conn, colAddr(cmdProgramLoad, 0), data); err != nil {
			return fmt.Errorf("program load: %w", err)
		}
	}
	if len(spare) > 0 {
		cmd := byte(cmdProgramLoad)
		if len(data) > 0 {
			cmd = cmdRandomDataInput
		}
		col := colAddr(cmd, uint16(d.geo.PageDataSize))
		if err := nandOpData(d.conn, col, spare); err != nil {
			return fmt.Errorf("program load (spare): %w", err)
		}
	}

	if err := nandOp(d.conn, rowAddr(cmdProgramExecute, row), nil); err != nil {
		return fmt.Errorf("program execute: %w", err)
	}
	status, err := waitBusy(d.conn, d.timeout)
	if err != nil {
		return fmt.Errorf("program execute: %w", err)
	}
	if status.ProgramFail() {
		return &BadBlockError{Op: "program", Block: block, Status: status}
	}
	return nil
}

// EraseBlock erases one block back to all 0xFF. A set erase-fail bit is
// reported as a *BadBlockError.
func (d *Device) EraseBlock(block uint32) error {
	if err := d.checkBlock(block); err != nil {
		return err
	}
	row := d.rowOf(block, 0)

	if err := writeEnable(d.conn); err != nil {
		return fmt.Errorf("write enable: %w", err)
	}
	if err := nandOp(d.conn, rowAddr(cmdBlockErase, row), nil); err != nil {
		return fmt.Errorf("block erase: %w", err)
	}
	status, err := waitBusy(d.conn, d.timeout)
	if err != nil {
		return fmt.Errorf("block erase: %w", err)
	}
	if status.EraseFail() {
		return &BadBlockError{Op: "erase", Block: block, Status: status}
	}
	return nil
}
