package spinand

import (
	"time"

	"periph.io/x/conn/v3/spi"
)

// Operation deadline for busy-wait polling. SPI NAND page program and block
// erase both complete well under this on healthy silicon.
const nandTimeout = 500 * time.Millisecond

const pollInterval = time.Millisecond

// nandOp issues one half-duplex exchange: the tx bytes (command, address,
// write payload) go out, then len(rx) response bytes are clocked in. It never
// inspects the payload; transport failures come back as-is.
func nandOp(c spi.Conn, tx, rx []byte) error {
	if len(tx) == 0 && len(rx) == 0 {
		return nil
	}
	return c.Tx(tx, rx)
}

// nandOpData issues a command phase followed by a data phase with chip select
// held asserted in between, as program-load and random-data-input require.
func nandOpData(c spi.Conn, cmd, data []byte) error {
	return c.TxPackets([]spi.Packet{
		{W: cmd, KeepCS: true},
		{W: data},
	})
}

// waitBusy polls the status register until the busy bit clears or timeout
// elapses. On success it returns the last-seen status so the caller can
// inspect the ECC and fail bits of the operation that just completed.
func waitBusy(c spi.Conn, timeout time.Duration) (StatusRegister, error) {
	cmd := []byte{cmdGetFeature, regStatus}
	status := make([]byte, 1)

	// Fast path: most operations against fast chips (and the simulator)
	// are already done on the first poll.
	if err := c.Tx(cmd, status); err != nil {
		return 0, err
	}
	if sr := StatusRegister(status[0]); !sr.Busy() {
		return sr, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timer.C:
			return StatusRegister(status[0]), ErrTimeout
		case <-ticker.C:
			if err := c.Tx(cmd, status); err != nil {
				return 0, err
			}
			if sr := StatusRegister(status[0]); !sr.Busy() {
				return sr, nil
			}
		}
	}
}

// writeEnable sets the write-enable latch. The chip clears it again on its
// own once the next program or erase completes.
func writeEnable(c spi.Conn) error {
	return nandOp(c, []byte{cmdWriteEnable}, nil)
}
