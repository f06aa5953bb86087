package tft

import "time"

// ILI9488 is the 320x480 controller. Over spi it is driven at 16 bits / pixel
// like the ILI9341 so the same pixel path serves both.
var ILI9488 = Model{
	Name:   "ili9488",
	Width:  320,
	Height: 480,
	Init: []InitStep{
		{Cmd: CMD_SWRESET, Delay: 150 * time.Millisecond},
		{Cmd: CMD_PWCTRL1, Data: []uint8{
			0x17,  // VREG1OUT:  5.0000
			0x15}}, // VREG2OUT: -4.8750
		{Cmd: CMD_PWCTRL2, Data: []uint8{0x41}}, // VGH: VCI x 6  VGL: -VCI x 4
		{Cmd: CMD_VMCTRL1, Data: []uint8{
			0x00,  // nVM
			0x12,  // VCM_REG:    -1.71875
			0x80}}, // VCM_REG_EN: true
		{Cmd: CMD_PIXFMT, Data: []uint8{0x55}}, // DPI/DBI: 16 bits / pixel
		{Cmd: CMD_FRMCTRL1, Data: []uint8{
			0xa0,  // FRS: 60.76  DIVA: 0
			0x11}}, // RTNA: 17 clocks
		{Cmd: CMD_INVCTRL, Data: []uint8{0x02}}, // DINV: 2 dot inversion
		{Cmd: CMD_DISCTRL, Data: []uint8{
			0x02,  // PT: AGND
			0x22,  // SS: S960 -> S1  ISC: 5 frames
			0x3b}}, // NL: 8 * (3b + 1) = 480 lines
		{Cmd: CMD_ETMOD, Data: []uint8{0xc6}}, // EPF: 11 (db5 -> r0,g0,b0)
		{Cmd: CMD_ADJCTRL3, Data: []uint8{0xa9, 0x51, 0x2c, 0x82}},
		{Cmd: CMD_SLPOUT, Delay: 120 * time.Millisecond},
		{Cmd: CMD_IDMOFF},
		{Cmd: CMD_DISON, Delay: 100 * time.Millisecond},
	},
}

// Models lists the supported controllers by name.
var Models = map[string]Model{
	ILI9341.Name: ILI9341,
	ILI9488.Name: ILI9488,
}
