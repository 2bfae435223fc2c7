package spinand

import "testing"

type eccOutcome int

const (
	outcomeOK eccOutcome = iota
	outcomeCorrected
	outcomeUncorrectable
)

// TestECCDecodeTable sweeps every ECC field value of every vendor layout and
// checks the three-way classification is exactly the datasheet mapping, with
// no overlap between outcomes.
func TestECCDecodeTable(t *testing.T) {
	tests := []struct {
		name string
		ecc  eccParams
		want map[byte]eccOutcome
	}{
		{
			name: "ONFI",
			ecc:  eccONFI,
			want: map[byte]eccOutcome{
				0: outcomeOK,
				1: outcomeCorrected,
				2: outcomeUncorrectable,
				3: outcomeCorrected,
			},
		},
		{
			name: "GigaDevice",
			ecc:  eccGigaDevice,
			want: map[byte]eccOutcome{
				0: outcomeOK,
				1: outcomeCorrected,
				2: outcomeCorrected,
				3: outcomeCorrected,
				4: outcomeCorrected,
				5: outcomeCorrected,
				6: outcomeCorrected,
				7: outcomeUncorrectable,
			},
		},
		{
			name: "Micron",
			ecc:  eccMicron,
			want: map[byte]eccOutcome{
				0: outcomeOK,
				1: outcomeCorrected,
				2: outcomeUncorrectable,
				3: outcomeCorrected,
				4: outcomeCorrected,
				5: outcomeCorrected,
				6: outcomeCorrected,
				7: outcomeCorrected,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for field, want := range tt.want {
				// Place the field in the register and salt the
				// other bits to prove the mask isolates it.
				status := StatusRegister(field<<tt.ecc.shift | ^tt.ecc.mask&0x8F)
				res, uncorrectable := tt.ecc.decode(status)

				got := outcomeOK
				switch {
				case uncorrectable:
					got = outcomeUncorrectable
				case res == ECCCorrected:
					got = outcomeCorrected
				}
				if got != want {
					t.Errorf("field %03b: outcome %v, want %v", field, got, want)
				}
			}
		})
	}
}

func TestProfileLookup(t *testing.T) {
	tests := []struct {
		mfrID byte
		want  Vendor
	}{
		{0xEF, VendorWinbond},
		{0xC8, VendorGigaDevice},
		{0x2C, VendorMicron},
		{0x52, VendorAlliance},
		{0xBA, VendorZetta},
		{0x0B, VendorXTX},
		{0x42, VendorGeneric},
		{0x00, VendorGeneric},
	}
	for _, tt := range tests {
		p := profileLookup(tt.mfrID)
		if p.vendor != tt.want {
			t.Errorf("profileLookup(%#02x) = %v, want %v", tt.mfrID, p.vendor, tt.want)
		}
		if p.mfrID != tt.mfrID {
			t.Errorf("profileLookup(%#02x) kept mfr id %#02x", tt.mfrID, p.mfrID)
		}
		if p.geo.PageDataSize == 0 || p.geo.TotalBlocks == 0 {
			t.Errorf("profileLookup(%#02x): empty geometry", tt.mfrID)
		}
	}
}
