package main

import (
	"flag"
	"fmt"

	"github.com/cennian/spinand"
)

func eraseCommand(args []string) {
	fs := flag.NewFlagSet("erase", flag.ExitOnError)
	var block uint
	fs.UintVar(&block, "b", 0, "block index")
	fs.Parse(args)

	d, err := openDevice()
	if err != nil {
		fatalf("%v", err)
	}
	defer d.ReleaseFlash()

	if err := d.EraseBlock(uint32(block)); err != nil {
		if spinand.IsBadBlock(err) {
			fatalf("erase failed, block %d should be retired: %v", block, err)
		}
		fatalf("erase failed: %v", err)
	}
	fmt.Printf("erased block %d\n", block)
}
