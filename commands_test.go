package spinand

import "testing"

func TestStatusRegisterBits(t *testing.T) {
	tests := []struct {
		sr   StatusRegister
		want string
	}{
		{0x00, "00000000"},
		{0x01, "00000001 BUSY"},
		{0x02, "00000010 WEL"},
		{0x04, "00000100 P-FAIL"},
		{0x08, "00001000 E-FAIL"},
		{0x0F, "00001111 E-FAIL,P-FAIL,WEL,BUSY"},
	}
	for _, tt := range tests {
		if got := tt.sr.String(); got != tt.want {
			t.Errorf("StatusRegister(%#02x).String() = %q, want %q", byte(tt.sr), got, tt.want)
		}
	}

	sr := StatusRegister(0x0F)
	if !sr.Busy() || !sr.WriteEnabled() || !sr.ProgramFail() || !sr.EraseFail() {
		t.Error("accessors disagree with bit layout")
	}
}

func TestAddressPacking(t *testing.T) {
	if got := rowAddr(cmdPageRead, 0x012345); got[0] != 0x13 ||
		got[1] != 0x01 || got[2] != 0x23 || got[3] != 0x45 {
		t.Errorf("rowAddr = %x", got)
	}
	if got := colAddr(cmdReadCache, 0x0800); got[0] != 0x03 ||
		got[1] != 0x08 || got[2] != 0x00 {
		t.Errorf("colAddr = %x", got)
	}
}
