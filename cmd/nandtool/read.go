package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/cennian/spinand"
)

func readCommand(args []string) {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	var (
		block   uint
		page    uint
		spare   bool
		outFile string
	)
	fs.UintVar(&block, "b", 0, "block index")
	fs.UintVar(&page, "p", 0, "page index within the block")
	fs.BoolVar(&spare, "spare", false, "also dump the spare region")
	fs.StringVar(&outFile, "o", "", "output file (default: hexdump)")
	fs.Parse(args)

	d, err := openDevice()
	if err != nil {
		fatalf("%v", err)
	}
	defer d.ReleaseFlash()

	g := d.Geometry()
	data := make([]byte, g.PageDataSize)
	var oob []byte
	if spare {
		oob = make([]byte, g.SpareSize)
	}

	res, err := d.ReadPage(uint32(block), uint32(page), data, oob)
	if err != nil {
		if spinand.IsUncorrectable(err) {
			fatalf("page is unreadable: %v", err)
		}
		fatalf("read failed: %v", err)
	}
	if res == spinand.ECCCorrected {
		fmt.Fprintln(os.Stderr, "note: ECC corrected bit errors on this page")
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, append(data, oob...), 0644); err != nil {
			fatalf("write file failed: %v", err)
		}
		return
	}
	fmt.Print(hex.Dump(data))
	if spare {
		fmt.Println("spare:")
		fmt.Print(hex.Dump(oob))
	}
}
