package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/ftdi"

	"github.com/cennian/spinand"
)

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
	nandtool <command> [arguments]

Commands:
	info	 identify the chip and print its geometry
	read	 read a page
	write	 write a page
	erase	 erase a block
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
	}

	switch cmd := flag.Arg(0); cmd {
	case "info":
		infoCommand()
	case "read":
		readCommand(flag.Args()[1:])
	case "write":
		writeCommand(flag.Args()[1:])
	case "erase":
		eraseCommand(flag.Args()[1:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n", cmd)
		usage()
	}
}

func openFT2232H() (*ftdi.FT232H, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host initialization failed: %w", err)
	}

	const (
		vendorID  = 0x0403 // FTDI
		productID = 0x6010 // FT2232H
	)

	info := ftdi.Info{}
	for _, dev := range ftdi.All() {
		dev.Info(&info)
		if info.VenID != vendorID || info.DevID != productID {
			continue
		}
		if ft, ok := dev.(*ftdi.FT232H); ok {
			return ft, nil
		}
	}

	return nil, errors.New("not found")
}

// openDevice connects to the chip over an FT2232H SPI port and identifies it.
func openDevice() (*spinand.Device, error) {
	ft, err := openFT2232H()
	if err != nil {
		return nil, fmt.Errorf("failed to open FT2232H device: %w", err)
	}

	sp, err := ft.SPI()
	if err != nil {
		return nil, fmt.Errorf("failed to get SPI port: %w", err)
	}

	// SPI NAND parts support mode 0 and mode 3 [W25N01GV|6.1]; the MPSSE
	// engine only does mode 0 and mode 2.
	const clk = 10 * physic.MegaHertz
	conn, err := sp.Connect(clk, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	d, err := spinand.Identify(conn)
	if err != nil {
		return nil, fmt.Errorf("chip identification failed: %w", err)
	}
	if err := d.InitFlash(); err != nil {
		return nil, fmt.Errorf("chip init failed: %w", err)
	}
	return d, nil
}
