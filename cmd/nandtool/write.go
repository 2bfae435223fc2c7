package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cennian/spinand"
)

func writeCommand(args []string) {
	fs := flag.NewFlagSet("write", flag.ExitOnError)
	var (
		block uint
		page  uint
	)
	fs.UintVar(&block, "b", 0, "block index")
	fs.UintVar(&page, "p", 0, "page index within the block")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatalf("usage: nandtool write [-b block] [-p page] <file>")
	}
	payload, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	d, err := openDevice()
	if err != nil {
		fatalf("%v", err)
	}
	defer d.ReleaseFlash()

	g := d.Geometry()
	if len(payload) > g.PageDataSize+g.SpareSize {
		fatalf("image is %d bytes, page holds %d+%d", len(payload), g.PageDataSize, g.SpareSize)
	}

	// Bytes past the data region go to the spare region.
	data := payload
	var spare []byte
	if len(payload) > g.PageDataSize {
		data = payload[:g.PageDataSize]
		spare = payload[g.PageDataSize:]
	}

	if err := d.WritePage(uint32(block), uint32(page), data, spare); err != nil {
		if spinand.IsBadBlock(err) {
			fatalf("write failed, block %d should be retired: %v", block, err)
		}
		fatalf("write failed: %v", err)
	}
	fmt.Printf("wrote %d bytes to block %d page %d\n", len(payload), block, page)
}
