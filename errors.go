package spinand

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a chip stays busy past the operation deadline.
// It is distinct from transport errors so callers can tell a slow chip from a
// dead bus.
var ErrTimeout = errors.New("spinand: busy-wait timeout")

// ECCError reports a page whose data exceeded the chip's on-die ECC
// correction capability. The page contents must not be trusted.
type ECCError struct {
	Block  uint32
	Page   uint32
	Status StatusRegister
}

func (e *ECCError) Error() string {
	return fmt.Sprintf("uncorrectable ECC error at block %d page %d (status %08b)",
		e.Block, e.Page, byte(e.Status))
}

// BadBlockError reports a program or erase operation the chip flagged as
// failed. The block should be retired by the layer above; retrying in place
// will not help.
type BadBlockError struct {
	Op     string // "program" or "erase"
	Block  uint32
	Status StatusRegister
}

func (e *BadBlockError) Error() string {
	return fmt.Sprintf("%s failed at block %d (status %08b): bad block",
		e.Op, e.Block, byte(e.Status))
}

// IsBadBlock returns true if err indicates a program/erase failure that
// should retire the block.
func IsBadBlock(err error) bool {
	var bbe *BadBlockError
	return errors.As(err, &bbe)
}

// IsUncorrectable returns true if err indicates an uncorrectable ECC error.
func IsUncorrectable(err error) bool {
	var ee *ECCError
	return errors.As(err, &ee)
}
