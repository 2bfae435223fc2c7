package spinand

// Vendor identifies which chip family's quirks a device was matched to.
type Vendor int

const (
	VendorGeneric Vendor = iota // ONFI-style fallback for unknown ids
	VendorWinbond
	VendorGigaDevice
	VendorMicron
	VendorAlliance
	VendorZetta
	VendorXTX
)

func (v Vendor) String() string {
	switch v {
	case VendorGeneric:
		return "Generic"
	case VendorWinbond:
		return "Winbond"
	case VendorGigaDevice:
		return "GigaDevice"
	case VendorMicron:
		return "Micron"
	case VendorAlliance:
		return "Alliance"
	case VendorZetta:
		return "Zetta"
	case VendorXTX:
		return "XTX"
	}
	return "Unknown"
}

// ECCResult reports the outcome of on-die error correction for a page read
// that succeeded. Corrected reads return the repaired data; callers may use
// the signal to schedule a rewrite before the page degrades further.
type ECCResult int

const (
	ECCOK ECCResult = iota
	ECCCorrected
)

func (r ECCResult) String() string {
	if r == ECCCorrected {
		return "corrected"
	}
	return "ok"
}

// eccParams describes where a vendor keeps the ECC status field in the
// status register and which encoding means the correction capability was
// exceeded. Every supported vendor follows the same three-way scheme: zero
// means clean, the uncorrectable value means the page is lost, anything else
// means bits were flipped but corrected.
type eccParams struct {
	mask          byte
	shift         uint
	uncorrectable byte
}

// decode maps a post-read status byte to the read outcome. The second return
// is true for an uncorrectable page.
func (p eccParams) decode(sr StatusRegister) (ECCResult, bool) {
	field := (byte(sr) & p.mask) >> p.shift
	switch {
	case field == p.uncorrectable:
		return ECCOK, true
	case field != 0:
		return ECCCorrected, false
	}
	return ECCOK, false
}

// Per-vendor ECC status layouts.
var (
	// [ONFI]/[W25N01GV|7.3]: bits 5:4, 00 clean, 01 corrected,
	// 10 uncorrectable, 11 corrected (more than one bit).
	eccONFI = eccParams{mask: 0x30, shift: 4, uncorrectable: 2}

	// [GD5F1GQ4]: bits 6:4, 111 uncorrectable, 001-110 corrected.
	eccGigaDevice = eccParams{mask: 0x70, shift: 4, uncorrectable: 7}

	// [MT29F1G01]: bits 6:4, 000 clean, 001 1-3 bits corrected,
	// 011 corrected with rewrite recommended, 010 uncorrectable.
	// Note the uncorrectable encoding sits between two corrected ones;
	// some MT29F datasheet revisions disagree on the 011/010 split, so
	// verify against the exact part before trusting this on new silicon.
	eccMicron = eccParams{mask: 0x70, shift: 4, uncorrectable: 2}
)

// chipProfile is one entry of the driver registry: everything that differs
// between supported chip families. Page read, write and erase share a single
// implementation parameterized by this.
type chipProfile struct {
	vendor Vendor
	name   string
	mfrID  byte
	geo    Geometry
	ecc    eccParams
}

func defaultGeometry(totalBlocks int) Geometry {
	return Geometry{
		PageDataSize:  2048,
		SpareSize:     64,
		PagesPerBlock: 64,
		TotalBlocks:   totalBlocks,
		ECCOption:     ECCHardwareAuto,
		LayoutOption:  LayoutUFFS,
	}
}

// profiles is the driver registry, matched against the manufacturer id byte
// in order; first match wins.
var profiles = []chipProfile{
	{vendor: VendorWinbond, name: "Winbond W25N series", mfrID: 0xEF,
		geo: defaultGeometry(1024), ecc: eccONFI},
	{vendor: VendorGigaDevice, name: "GigaDevice GD5F series", mfrID: 0xC8,
		geo: defaultGeometry(1024), ecc: eccGigaDevice},
	{vendor: VendorMicron, name: "Micron MT29F series", mfrID: 0x2C,
		geo: defaultGeometry(1024), ecc: eccMicron},
	// [AS5F34G04SND] describes the same 2-bit layout as Winbond, but the
	// datasheet wording on 10 vs 11 is loose; kept on the ONFI mapping.
	{vendor: VendorAlliance, name: "Alliance AS5F series", mfrID: 0x52,
		geo: defaultGeometry(1024), ecc: eccONFI},
	{vendor: VendorZetta, name: "Zetta ZD35 series", mfrID: 0xBA,
		geo: defaultGeometry(1024), ecc: eccONFI},
	{vendor: VendorXTX, name: "XTX XT26G series", mfrID: 0x0B,
		geo: defaultGeometry(128), ecc: eccONFI},
}

// The fallback for unidentified chips: ONFI-style geometry, but no ECC
// interpretation, since the status bit layout cannot be known.
var genericProfile = chipProfile{
	vendor: VendorGeneric,
	name:   "Generic SPI NAND",
	geo:    genericGeometry(),
	ecc:    eccONFI,
}

func genericGeometry() Geometry {
	g := defaultGeometry(1024)
	g.ECCOption = ECCNone
	return g
}

// profileLookup finds the registry entry for a manufacturer id, falling back
// to the generic ONFI profile for unknown chips.
func profileLookup(mfrID byte) chipProfile {
	for _, p := range profiles {
		if p.mfrID == mfrID {
			return p
		}
	}
	p := genericProfile
	p.mfrID = mfrID
	return p
}
