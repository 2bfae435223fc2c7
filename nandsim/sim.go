// Package nandsim models a single SPI NAND chip in software. It implements
// periph.io's spi.Conn, so it plugs into the spinand driver (or any other
// consumer of the wire protocol) in place of a physical bus. The model
// reproduces real NAND semantics: programming only clears bits, erase
// returns a whole block to 0xFF, data passes through a chip-side page cache,
// and program/erase take effect only while the write-enable latch is set.
//
// One Chip is one simulated die; create more instances for more chips. The
// zero operation-in-flight contract of the driver applies here too: a Chip
// performs no locking of its own.
package nandsim

import (
	conn "periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi"
)

// Command opcodes understood by the model. These mirror the wire protocol
// only; package nandsim does not depend on the driver.
const (
	cmdReset           = 0xFF
	cmdGetFeature      = 0x0F
	cmdSetFeature      = 0x1F
	cmdReadID          = 0x9F
	cmdPageRead        = 0x13
	cmdReadCache       = 0x03
	cmdWriteEnable     = 0x06
	cmdProgramLoad     = 0x02
	cmdRandomDataInput = 0x84
	cmdProgramExecute  = 0x10
	cmdBlockErase      = 0xD8
)

const (
	regStatus    = 0xC0
	regBlockLock = 0xA0
)

// Status register bits.
const (
	srBusy        = 1 << 0
	srWEL         = 1 << 1
	srProgramFail = 1 << 2
	srEraseFail   = 1 << 3
	srECCMask     = 0x70
)

// Config sizes a simulated chip. Zero fields take the common
// 2048/64/64/1024 geometry, manufacturer id 0xEF and device id 0xAA.
type Config struct {
	PageDataSize  int
	SpareSize     int
	PagesPerBlock int
	TotalBlocks   int

	MfrID byte
	DevID byte

	// PageBudget caps how many distinct pages may hold programmed data
	// at once; exceeding it makes program-execute report a program
	// failure, the same observable a real chip gives for a page it
	// cannot program. Zero means unlimited.
	PageBudget int
}

type page struct {
	data   []byte
	spare  []byte
	erased bool
}

// Chip is one simulated SPI NAND die behind an spi.Conn.
type Chip struct {
	cfg Config

	// Sparse array: a block has an entry only once one of its pages was
	// programmed; a page has backing storage only once programmed. A
	// missing page reads as all 0xFF, which is exactly the erased state.
	blocks    map[uint32][]*page
	allocated int

	cache     []byte
	status    byte
	writeEn   bool
	dataInput bool
	col       int
	blockLock byte
	eccStatus byte
}

var _ spi.Conn = (*Chip)(nil)

// New creates a chip in its power-on state with an empty (all erased) array.
func New(cfg Config) *Chip {
	if cfg.PageDataSize == 0 {
		cfg.PageDataSize = 2048
	}
	if cfg.SpareSize == 0 {
		cfg.SpareSize = 64
	}
	if cfg.PagesPerBlock == 0 {
		cfg.PagesPerBlock = 64
	}
	if cfg.TotalBlocks == 0 {
		cfg.TotalBlocks = 1024
	}
	if cfg.MfrID == 0 {
		cfg.MfrID = 0xEF
	}
	if cfg.DevID == 0 {
		cfg.DevID = 0xAA
	}

	c := &Chip{
		cfg:    cfg,
		blocks: make(map[uint32][]*page),
		cache:  make([]byte, cfg.PageDataSize+cfg.SpareSize),
	}
	c.resetSession()
	return c
}

func (c *Chip) String() string { return "nandsim" }

// Duplex reports half-duplex: a transfer clocks the command bytes out first,
// then the response bytes in, like a real SPI NAND on a single data line.
func (c *Chip) Duplex() conn.Duplex { return conn.Half }

// Tx performs one chip-select-framed transfer: w is the command (or data
// phase) bytes, r receives the response.
func (c *Chip) Tx(w, r []byte) error {
	c.transfer(w, r)
	return nil
}

// TxPackets performs a sequence of transfers. KeepCS needs no special
// handling here: the command that opens a data phase leaves the model
// expecting data, whether or not chip select stays asserted in between.
func (c *Chip) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		c.transfer(pkt.W, pkt.R)
	}
	return nil
}

// SetECCStatus sets the vendor ECC bits (mask 0x70) reported in the status
// register after each subsequent page-read, until changed again or the chip
// is reset. The default is zero: every read decodes as clean.
func (c *Chip) SetECCStatus(bits byte) {
	c.eccStatus = bits & srECCMask
}

// Erased reports whether a page currently reads as erased (all 0xFF). Pages
// that were never programmed, or whose block was erased since, count as
// erased without holding any backing storage.
func (c *Chip) Erased(block, pageIdx uint32) bool {
	p := c.lookup(block, int(pageIdx))
	if p == nil {
		return true
	}
	return p.erased
}

// resetSession restores the post-reset state: cache, status register,
// latches and the command phase. Programmed page storage survives; a reset
// does not erase the array.
func (c *Chip) resetSession() {
	for i := range c.cache {
		c.cache[i] = 0xFF
	}
	c.status = 0
	c.writeEn = false
	c.dataInput = false
	c.col = 0
	c.blockLock = 0
	c.eccStatus = 0
}

func (c *Chip) transfer(w, r []byte) {
	if len(w) == 0 && len(r) == 0 {
		return
	}

	// Data phase following program-load / random-data-input: the bytes
	// land in the page cache at the stored column, clipped to the cache.
	if c.dataInput {
		if len(w) > 0 {
			if c.col < len(c.cache) {
				n := copy(c.cache[c.col:], w)
				c.col += n
			}
			c.dataInput = false
		}
		return
	}

	if len(w) == 0 {
		return
	}

	switch w[0] {
	case cmdReset:
		c.resetSession()

	case cmdGetFeature:
		if len(w) >= 2 && len(r) > 0 {
			switch w[1] {
			case regStatus:
				r[0] = c.status
			case regBlockLock:
				r[0] = c.blockLock
			}
		}

	case cmdSetFeature:
		if len(w) >= 3 && w[1] == regBlockLock {
			c.blockLock = w[2]
		}

	case cmdReadID:
		if len(r) >= 2 {
			r[0] = c.cfg.MfrID
			r[1] = c.cfg.DevID
		}

	case cmdWriteEnable:
		c.writeEn = true
		c.status |= srWEL

	case cmdPageRead:
		if len(w) >= 4 {
			c.pageRead(rowOf(w))
		}

	case cmdReadCache:
		if len(w) >= 4 && len(r) > 0 {
			col := int(w[1])<<8 | int(w[2])
			if col < len(c.cache) {
				copy(r, c.cache[col:])
			}
		}

	case cmdProgramLoad:
		if len(w) >= 3 {
			c.col = int(w[1])<<8 | int(w[2])
			for i := range c.cache {
				c.cache[i] = 0xFF
			}
			c.dataInput = true
		}

	case cmdRandomDataInput:
		if len(w) >= 3 {
			c.col = int(w[1])<<8 | int(w[2])
			c.dataInput = true
		}

	case cmdProgramExecute:
		if c.writeEn && len(w) >= 4 {
			c.programExecute(rowOf(w))
			c.writeEn = false
			c.status &^= srWEL
		}

	case cmdBlockErase:
		if c.writeEn && len(w) >= 4 {
			c.blockErase(rowOf(w))
			c.writeEn = false
			c.status &^= srWEL
		}

	default:
		// Unrecognized opcodes are ignored, as permissive hardware is.
	}
}

func rowOf(w []byte) uint32 {
	return uint32(w[1])<<16 | uint32(w[2])<<8 | uint32(w[3])
}

func (c *Chip) pageRead(row uint32) {
	block := row / uint32(c.cfg.PagesPerBlock)
	idx := int(row % uint32(c.cfg.PagesPerBlock))

	p := c.lookup(block, idx)
	if p == nil {
		// Never programmed, or out of range: the cache reads erased.
		for i := range c.cache {
			c.cache[i] = 0xFF
		}
	} else {
		copy(c.cache, p.data)
		copy(c.cache[c.cfg.PageDataSize:], p.spare)
	}

	c.status = c.status&^srECCMask | c.eccStatus
}

func (c *Chip) lookup(block uint32, idx int) *page {
	if block >= uint32(c.cfg.TotalBlocks) || idx >= c.cfg.PagesPerBlock {
		return nil
	}
	pages, ok := c.blocks[block]
	if !ok {
		return nil
	}
	return pages[idx]
}

// allocPage returns the backing storage for a page, creating it in the
// erased state on first program. It returns nil out of range or when the
// page budget is exhausted.
func (c *Chip) allocPage(block uint32, idx int) *page {
	if block >= uint32(c.cfg.TotalBlocks) || idx >= c.cfg.PagesPerBlock {
		return nil
	}
	pages, ok := c.blocks[block]
	if !ok {
		pages = make([]*page, c.cfg.PagesPerBlock)
		c.blocks[block] = pages
	}
	if pages[idx] == nil {
		if c.cfg.PageBudget > 0 && c.allocated >= c.cfg.PageBudget {
			return nil
		}
		p := &page{
			data:   make([]byte, c.cfg.PageDataSize),
			spare:  make([]byte, c.cfg.SpareSize),
			erased: true,
		}
		for i := range p.data {
			p.data[i] = 0xFF
		}
		for i := range p.spare {
			p.spare[i] = 0xFF
		}
		pages[idx] = p
		c.allocated++
	}
	return pages[idx]
}

func (c *Chip) programExecute(row uint32) {
	block := row / uint32(c.cfg.PagesPerBlock)
	idx := int(row % uint32(c.cfg.PagesPerBlock))

	// The fail bit reflects the outcome of this operation, not history.
	c.status &^= srProgramFail

	p := c.allocPage(block, idx)
	if p == nil {
		c.status |= srProgramFail
		return
	}

	// NAND programming can only clear bits: new = old AND cache.
	for i := range p.data {
		p.data[i] &= c.cache[i]
	}
	for i := range p.spare {
		p.spare[i] &= c.cache[c.cfg.PageDataSize+i]
	}
	p.erased = false
}

func (c *Chip) blockErase(row uint32) {
	block := row / uint32(c.cfg.PagesPerBlock)
	c.status &^= srEraseFail
	if block >= uint32(c.cfg.TotalBlocks) {
		c.status |= srEraseFail
		return
	}
	if pages, ok := c.blocks[block]; ok {
		for i, p := range pages {
			if p != nil {
				pages[i] = nil
				c.allocated--
			}
		}
		delete(c.blocks, block)
	}
}
