// Package spinand drives serial (SPI) NAND flash chips behind a
// periph.io spi.Conn, exposing the page read / page write / block erase
// operations a flash filesystem needs, plus manufacturer-id based chip
// identification. The companion package nandsim models one chip's command
// set in software and plugs in as the spi.Conn for host-side testing.
//
// # References:
//
// SPI NAND datasheets
//   - [W25N01GV]: Winbond W25N01GV 1G-bit Serial SLC NAND (https://www.winbond.com/resource-files/w25n01gv%20revl%20050918%20unsecured.pdf)
//   - [GD5F1GQ4]: GigaDevice GD5F1GQ4 SPI NAND (https://www.gigadevice.com/product/flash/product-series/spi-nand-flash)
//   - [MT29F1G01]: Micron MT29F1G01 Serial NAND (https://www.micron.com/products/nand-flash/serial-nand)
//   - [AS5F34G04SND]: Alliance Memory AS5F 4G-bit SPI NAND
//   - [XT26G08D]: XTX XT26G08D SPI NAND
//
// Standards
//   - [ONFI]: Open NAND Flash Interface Specification (https://onfi.org/specs.html)
package spinand
