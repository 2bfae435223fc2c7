package main

import (
	"fmt"
)

func infoCommand() {
	d, err := openDevice()
	if err != nil {
		fatalf("%v", err)
	}
	defer d.ReleaseFlash()

	mfr, dev := d.ID()
	g := d.Geometry()

	fmt.Printf("Vendor:          %s (%s)\n", d.Vendor(), d.Name())
	fmt.Printf("Manufacturer ID: %#02x\n", mfr)
	fmt.Printf("Device ID:       %#02x\n", dev)
	fmt.Printf("Page data size:  %d\n", g.PageDataSize)
	fmt.Printf("Spare size:      %d\n", g.SpareSize)
	fmt.Printf("Pages per block: %d\n", g.PagesPerBlock)
	fmt.Printf("Total blocks:    %d\n", g.TotalBlocks)
	fmt.Printf("Capacity:        %d MiB\n",
		g.PageDataSize*g.PagesPerBlock*g.TotalBlocks>>20)

	sr, err := d.ReadStatus()
	if err != nil {
		fatalf("read status failed: %v", err)
	}
	fmt.Printf("Status:          %s\n", sr)
}
