package tft

import "time"

// ILI9341 command set (datasheet pp. 83-88), the subset used by the driver
// and its init tables.
const (
	CMD_NOP     uint8 = 0x00 // No Operation
	CMD_SWRESET uint8 = 0x01 // Software Reset

	CMD_SLPOUT uint8 = 0x11 // Sleep Out
	CMD_NORON  uint8 = 0x13 // Normal Display Mode ON
	CMD_INVOFF uint8 = 0x20 // Display Inversion OFF
	CMD_INVON  uint8 = 0x21 // Display Inversion ON
	CMD_GAMSET uint8 = 0x26 // Gamma Set
	CMD_DISOFF uint8 = 0x28 // Display OFF
	CMD_DISON  uint8 = 0x29 // Display ON

	CMD_CASET    uint8 = 0x2a // Column Address Set
	CMD_PASET    uint8 = 0x2b // Page (row) Address Set
	CMD_RAMWR    uint8 = 0x2c // Memory Write
	CMD_VSCRDEF  uint8 = 0x33 // Vertical Scrolling Definition
	CMD_MADCTRL  uint8 = 0x36 // Memory Access Control
	CMD_VSCRSADD uint8 = 0x37 // Vertical Scrolling Start Address
	CMD_IDMOFF   uint8 = 0x38 // Idle Mode OFF
	CMD_PIXFMT   uint8 = 0x3a // COLMOD: Interface Pixel Format

	CMD_IFMODE   uint8 = 0xb0 // RGB Interface Signal Control
	CMD_FRMCTRL1 uint8 = 0xb1 // Frame Rate Control (Normal Mode)
	CMD_INVCTRL  uint8 = 0xb4 // Display Inversion Control
	CMD_DISCTRL  uint8 = 0xb6 // Display Function Control
	CMD_ETMOD    uint8 = 0xb7 // Entry Mode Set

	CMD_PWCTRL1      uint8 = 0xc0 // Power Control 1
	CMD_PWCTRL2      uint8 = 0xc1 // Power Control 2
	CMD_PWCTRL3      uint8 = 0xc2 // Power Control 3 (ILI9488)
	CMD_VMCTRL1      uint8 = 0xc5 // VCOM Control 1
	CMD_VMCTRL2      uint8 = 0xc7 // VCOM Control 2
	CMD_PWCTRLA      uint8 = 0xcb // Power Control A
	CMD_PWCTRLB      uint8 = 0xcf // Power Control B
	CMD_GAMCTRLP     uint8 = 0xe0 // Positive Gamma Control
	CMD_GAMCTRLN     uint8 = 0xe1 // Negative Gamma Control
	CMD_TIMCTRLA_INT uint8 = 0xe8 // Driver Timing Control A
	CMD_TIMCTRLB     uint8 = 0xea // Driver Timing Control B
	CMD_PWSEQCTRL    uint8 = 0xed // Power on Sequence Control
	CMD_GAM3CTRL     uint8 = 0xf2 // Enable 3 Gamma Control
	CMD_ADJCTRL3     uint8 = 0xf7 // Pump Ratio Control (ILI9341) / Adjust Control 3 (ILI9488)
)

const (
	MADCTRL_MY  uint8 = 0x80 // Row Address Order         1 = address bottom to top
	MADCTRL_MX  uint8 = 0x40 // Column Address Order      1 = address right to left
	MADCTRL_MV  uint8 = 0x20 // Row/Column Exchange       1 = swap axes
	MADCTRL_ML  uint8 = 0x10 // Vertical Refresh Order    1 = refresh bottom to top
	MADCTRL_BGR uint8 = 0x08 // RGB-BGR Order             1 = Blue-Green-Red pixel order
	MADCTRL_MH  uint8 = 0x04 // Horizontal Refresh Order  1 = refresh right to left
)

// ILI9341 is the 240x320 controller, 16 bits / pixel over 4-wire spi.
var ILI9341 = Model{
	Name:   "ili9341",
	Width:  240,
	Height: 320,
	Init: []InitStep{
		{Cmd: CMD_SWRESET, Delay: 1000 * time.Millisecond},
		{Cmd: CMD_PWCTRLA, Data: []uint8{0x39, 0x2c, 0x00, 0x34, 0x02}},
		{Cmd: CMD_PWCTRLB, Data: []uint8{0x00, 0xc1, 0x30}},
		{Cmd: CMD_TIMCTRLA_INT, Data: []uint8{0x85, 0x00, 0x78}},
		{Cmd: CMD_TIMCTRLB, Data: []uint8{0x00, 0x00}},
		{Cmd: CMD_PWSEQCTRL, Data: []uint8{0x64, 0x03, 0x12, 0x81}},
		{Cmd: CMD_ADJCTRL3, Data: []uint8{0x20}},          // DDVDH = 2 x VCI
		{Cmd: CMD_PWCTRL1, Data: []uint8{0x23}},           // GVDD 4.60V
		{Cmd: CMD_PWCTRL2, Data: []uint8{0x10}},           // SAP / BT
		{Cmd: CMD_VMCTRL1, Data: []uint8{0x3e, 0x28}},     // VMH 5.850V, VML -1.500V
		{Cmd: CMD_VMCTRL2, Data: []uint8{0x86}},           // VMF: VMH-58, VML-58
		{Cmd: CMD_PIXFMT, Data: []uint8{0x55}},            // DPI/DBI: 16 bits / pixel
		{Cmd: CMD_FRMCTRL1, Data: []uint8{0x00, 0x18}},    // 79Hz
		{Cmd: CMD_DISCTRL, Data: []uint8{0x08, 0x82, 0x27}}, // 320 lines
		{Cmd: CMD_GAM3CTRL, Data: []uint8{0x00}},
		{Cmd: CMD_GAMSET, Data: []uint8{0x01}}, // gamma curve 1
		{Cmd: CMD_GAMCTRLP, Data: []uint8{0x0f, 0x31, 0x2b, 0x0c, 0x0e, 0x08, 0x4e, 0xf1, 0x37, 0x07, 0x10, 0x03, 0x0e, 0x09, 0x00}},
		{Cmd: CMD_GAMCTRLN, Data: []uint8{0x00, 0x0e, 0x14, 0x03, 0x11, 0x07, 0x31, 0xc1, 0x48, 0x08, 0x0f, 0x0c, 0x31, 0x36, 0x0f}},
		{Cmd: CMD_SLPOUT, Delay: 120 * time.Millisecond},
		{Cmd: CMD_DISON},
	},
}
