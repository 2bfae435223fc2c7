package spinand

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/spi"
)

// ECCOption selects who is responsible for error correction.
type ECCOption int

const (
	ECCNone         ECCOption = iota // no correction, raw array access
	ECCHardwareAuto                  // on-die ECC, decoded from the status register
)

// LayoutOption marks how the spare region is laid out for the filesystem
// above. The driver itself is layout-agnostic; the value is carried for the
// storage engine.
type LayoutOption int

const (
	LayoutUFFS LayoutOption = iota
)

// Geometry describes one chip's addressable shape. It is fixed at
// identification time and immutable for the device's lifetime.
type Geometry struct {
	PageDataSize  int // bytes per page, data region
	SpareSize     int // out-of-band bytes per page
	PagesPerBlock int
	TotalBlocks   int
	ECCOption     ECCOption
	LayoutOption  LayoutOption

	// BlockStatusOffset is the byte offset of the factory bad-block
	// marker within the spare region.
	BlockStatusOffset int
}

// PageSize returns the full cache footprint of one page (data + spare).
func (g Geometry) PageSize() int { return g.PageDataSize + g.SpareSize }

// FlashOps is the operation surface a storage engine drives this layer
// through. A nil spare (or data) slice skips that phase of the transfer.
//
// Calls must be serialized per device by the caller: the chip's write-enable
// latch and page cache are single-threaded hardware state.
type FlashOps interface {
	// InitFlash resets the chip and clears block protection. Called by
	// the storage engine at mount time, not at identification time.
	InitFlash() error
	// ReadPage stages a page into the chip cache and copies out up to
	// len(data) data bytes and len(spare) spare bytes.
	ReadPage(block, page uint32, data, spare []byte) (ECCResult, error)
	// WritePage programs data at column 0 and spare at the start of the
	// out-of-band region in one program cycle. NAND programming only
	// clears bits; the page must be erased for arbitrary contents.
	WritePage(block, page uint32, data, spare []byte) error
	// EraseBlock erases a whole block back to all 0xFF.
	EraseBlock(block uint32) error
	// ReleaseFlash gives up the device. No bus traffic is issued.
	ReleaseFlash() error
}

// Device is one identified SPI NAND chip on a bus.
type Device struct {
	conn    spi.Conn
	profile chipProfile
	geo     Geometry
	devID   byte
	timeout time.Duration
}

var _ FlashOps = (*Device)(nil)

// Identify reads the manufacturer id from the chip on c, selects the
// matching vendor profile (or the generic ONFI fallback) and returns a
// device descriptor. It issues no reset or unlock; call InitFlash before the
// first program or erase.
func Identify(c spi.Conn) (*Device, error) {
	if c == nil {
		return nil, errors.New("spinand: nil SPI connection")
	}

	id := make([]byte, 2)
	if err := nandOp(c, []byte{cmdReadID, 0x00}, id); err != nil {
		return nil, fmt.Errorf("read id: %w", err)
	}

	p := profileLookup(id[0])
	return &Device{
		conn:    c,
		profile: p,
		geo:     p.geo,
		devID:   id[1],
		timeout: nandTimeout,
	}, nil
}

// Geometry returns the chip's shape.
func (d *Device) Geometry() Geometry { return d.geo }

// Vendor returns which chip family the device was matched to.
func (d *Device) Vendor() Vendor { return d.profile.vendor }

// Name returns the matched profile's human-readable name.
func (d *Device) Name() string { return d.profile.name }

// ID returns the manufacturer id and the (informational) device id byte.
func (d *Device) ID() (mfr, dev byte) { return d.profile.mfrID, d.devID }

// ReadStatus reads the status feature register.
func (d *Device) ReadStatus() (StatusRegister, error) {
	status := make([]byte, 1)
	if err := nandOp(d.conn, []byte{cmdGetFeature, regStatus}, status); err != nil {
		return 0, err
	}
	return StatusRegister(status[0]), nil
}

// SetTimeout overrides the default busy-wait deadline for this device.
func (d *Device) SetTimeout(t time.Duration) { d.timeout = t }

func (d *Device) checkBlock(block uint32) error {
	if block >= uint32(d.geo.TotalBlocks) {
		return fmt.Errorf("spinand: block %d out of range (%d blocks)", block, d.geo.TotalBlocks)
	}
	return nil
}

func (d *Device) rowOf(block, page uint32) uint32 {
	return block*uint32(d.geo.PagesPerBlock) + page
}
